// Package web captures page accessibility trees over the Chrome
// DevTools Protocol and dispatches input through the Input and DOM
// domains.
package web

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// Defaults for the DevTools endpoint.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 9222
)

// Adapter is the CDP platform backend.
type Adapter struct {
	host string
	port int

	mu        sync.Mutex
	conns     map[string]*cdpConn
	lastTools []model.ToolDescriptor
}

// New creates the web adapter. Zero host/port take the defaults.
func New(host string, port int) *Adapter {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	return &Adapter{host: host, port: port, conns: make(map[string]*cdpConn)}
}

// Platform returns the canonical platform tag.
func (a *Adapter) Platform() string { return model.PlatformWeb }

// Initialize verifies the DevTools endpoint is reachable. Idempotent.
func (a *Adapter) Initialize(ctx context.Context) error {
	_, err := discoverTargets(ctx, a.host, a.port)
	return err
}

// conn returns a pooled connection for the websocket URL.
func (a *Adapter) conn(ctx context.Context, wsURL string) (*cdpConn, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.conns[wsURL]; ok {
		return c, nil
	}
	c, err := dial(ctx, wsURL)
	if err != nil {
		return nil, err
	}
	a.conns[wsURL] = c
	return c, nil
}

// dropConn removes a connection that went bad.
func (a *Adapter) dropConn(wsURL string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.conns[wsURL]; ok {
		delete(a.conns, wsURL)
		go c.Close()
	}
}

// ScreenInfo evaluates screen geometry in the first page.
func (a *Adapter) ScreenInfo(ctx context.Context) (platform.ScreenInfo, error) {
	pages, err := discoverTargets(ctx, a.host, a.port)
	if err != nil {
		return platform.ScreenInfo{}, err
	}
	if len(pages) == 0 {
		return platform.ScreenInfo{}, cuperr.New(cuperr.PlatformUnavailable, "no open page targets at %s:%d", a.host, a.port)
	}
	c, err := a.conn(ctx, pages[0].WebSocketDebuggerURL)
	if err != nil {
		return platform.ScreenInfo{}, err
	}
	var reply struct {
		Result struct {
			Value struct {
				W     int     `json:"w"`
				H     int     `json:"h"`
				Scale float64 `json:"scale"`
			} `json:"value"`
		} `json:"result"`
	}
	err = c.Call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    "({w: screen.width, h: screen.height, scale: window.devicePixelRatio})",
		"returnByValue": true,
	}, &reply)
	if err != nil {
		return platform.ScreenInfo{}, err
	}
	v := reply.Result.Value
	if v.Scale == 0 {
		v.Scale = 1
	}
	return platform.ScreenInfo{W: v.W, H: v.H, Scale: v.Scale}, nil
}

func targetMetadata(t pageTarget) platform.WindowMetadata {
	return platform.WindowMetadata{
		Handle: t.WebSocketDebuggerURL,
		Title:  t.Title,
		URL:    t.URL,
	}
}

// ForegroundWindow returns the first page target; DevTools orders the
// list most-recently-active first.
func (a *Adapter) ForegroundWindow(ctx context.Context) (platform.WindowMetadata, error) {
	pages, err := discoverTargets(ctx, a.host, a.port)
	if err != nil {
		return platform.WindowMetadata{}, err
	}
	if len(pages) == 0 {
		return platform.WindowMetadata{}, cuperr.New(cuperr.PlatformUnavailable, "no open page targets at %s:%d", a.host, a.port)
	}
	return targetMetadata(pages[0]), nil
}

// AllWindows returns every page target.
func (a *Adapter) AllWindows(ctx context.Context) ([]platform.WindowMetadata, error) {
	pages, err := discoverTargets(ctx, a.host, a.port)
	if err != nil {
		return nil, err
	}
	out := make([]platform.WindowMetadata, len(pages))
	for i, t := range pages {
		out[i] = targetMetadata(t)
	}
	return out, nil
}

// WindowList returns page records without touching any page.
func (a *Adapter) WindowList(ctx context.Context) ([]model.WindowInfo, error) {
	pages, err := discoverTargets(ctx, a.host, a.port)
	if err != nil {
		return nil, err
	}
	out := make([]model.WindowInfo, len(pages))
	for i, t := range pages {
		out[i] = model.WindowInfo{
			Title:      t.Title,
			URL:        t.URL,
			Foreground: i == 0,
		}
	}
	return out, nil
}

// DesktopWindow returns nil; pages have no desktop surface.
func (a *Adapter) DesktopWindow(ctx context.Context) (*platform.WindowMetadata, error) {
	return nil, nil
}

// Tools returns the model-context tools found during the last capture.
func (a *Adapter) Tools(ctx context.Context) []model.ToolDescriptor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastTools
}

func (a *Adapter) setTools(tools []model.ToolDescriptor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastTools = tools
}

// modelContextScript enumerates tools pages expose via
// navigator.modelContext.
const modelContextScript = `(() => {
  const mc = navigator.modelContext;
  if (!mc || typeof mc.listTools !== "function") return [];
  try {
    return mc.listTools().map(t => ({
      name: String(t.name || ""),
      description: t.description ? String(t.description) : undefined,
      parameters: t.inputSchema || t.parameters,
    }));
  } catch (e) { return []; }
})()`

func (a *Adapter) fetchTools(ctx context.Context, c *cdpConn) []model.ToolDescriptor {
	var reply struct {
		Result struct {
			Value json.RawMessage `json:"value"`
		} `json:"result"`
	}
	err := c.Call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    modelContextScript,
		"returnByValue": true,
	}, &reply)
	if err != nil || len(reply.Result.Value) == 0 {
		return nil
	}
	var tools []model.ToolDescriptor
	if json.Unmarshal(reply.Result.Value, &tools) != nil {
		return nil
	}
	return tools
}
