package session

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
	"github.com/computeruseprotocol/go-sdk/internal/platform/darwinax"
	"github.com/computeruseprotocol/go-sdk/internal/platform/linuxatspi"
	"github.com/computeruseprotocol/go-sdk/internal/platform/web"
	"github.com/computeruseprotocol/go-sdk/internal/platform/windowsuia"
)

// Environment fallbacks for the web adapter.
const (
	EnvCDPPort = "CUP_CDP_PORT"
	EnvCDPHost = "CUP_CDP_HOST"
)

// Config selects and parameterizes the platform adapter for a session.
type Config struct {
	Platform string // windows | macos | linux | web; empty = detect
	CDPHost  string
	CDPPort  int
}

// NewAdapter constructs the platform adapter for the config.
func NewAdapter(cfg Config) (platform.Adapter, error) {
	tag := cfg.Platform
	if tag == "" {
		tag = detectPlatform()
	}
	switch tag {
	case model.PlatformWindows:
		return windowsuia.New(), nil
	case model.PlatformMacOS:
		return darwinax.New(), nil
	case model.PlatformLinux:
		return linuxatspi.New(), nil
	case model.PlatformWeb:
		host := cfg.CDPHost
		if host == "" {
			host = os.Getenv(EnvCDPHost)
		}
		port := cfg.CDPPort
		if port == 0 {
			port, _ = strconv.Atoi(os.Getenv(EnvCDPPort))
		}
		return web.New(host, port), nil
	}
	return nil, cuperr.New(cuperr.PlatformUnsupported, "no adapter for platform %q", tag)
}

// NewFromConfig creates a session with the adapter the config selects.
func NewFromConfig(cfg Config) (*Session, error) {
	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}
	return New(adapter), nil
}

func detectPlatform() string {
	switch runtime.GOOS {
	case "windows":
		return model.PlatformWindows
	case "darwin":
		return model.PlatformMacOS
	case "linux":
		return model.PlatformLinux
	}
	return runtime.GOOS
}

var (
	defaultMu      sync.Mutex
	defaultSession *Session
)

// Default lazily creates a process-wide session for the detected
// platform. Explicit sessions are independent of it; it exists as a
// convenience for single-session callers.
func Default() (*Session, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSession == nil {
		s, err := NewFromConfig(Config{})
		if err != nil {
			return nil, err
		}
		defaultSession = s
	}
	return defaultSession, nil
}
