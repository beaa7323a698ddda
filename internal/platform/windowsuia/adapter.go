// Package windowsuia captures the Windows UI Automation tree through
// PowerShell helpers invoked with -EncodedCommand, and dispatches input
// via SendInput-level win32 calls from the same helpers.
package windowsuia

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os/exec"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// Chromium/Electron accessibility trees initialize lazily; a capture
// smaller than this, or showing browser chrome without a Document role,
// triggers one foreground-and-recapture round.
const lazyTreeThreshold = 30

// Adapter is the UI Automation platform backend.
type Adapter struct {
	initialized bool
}

// New creates the Windows adapter.
func New() *Adapter { return &Adapter{} }

// Platform returns the canonical platform tag.
func (a *Adapter) Platform() string { return model.PlatformWindows }

// Initialize verifies powershell is available. Idempotent.
func (a *Adapter) Initialize(ctx context.Context) error {
	if a.initialized {
		return nil
	}
	if err := platform.LookHelper("powershell"); err != nil {
		return err
	}
	a.initialized = true
	return nil
}

// runScript executes a PowerShell script via -EncodedCommand with a JSON
// args blob in the environment.
func (a *Adapter) runScript(ctx context.Context, timeout time.Duration, script string, args any) ([]byte, error) {
	blob := "{}"
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "encode helper args: %v", err)
		}
		blob = string(data)
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(cctx, "powershell",
		"-NoProfile", "-OutputFormat", "Text",
		"-EncodedCommand", encodePowerShell(script))
	cmd.Env = append(cmd.Environ(), "CUP_ARGS="+blob)

	out, err := cmd.Output()
	if err != nil {
		if cctx.Err() == context.DeadlineExceeded {
			return nil, cuperr.New(cuperr.PlatformTimeout, "powershell helper timed out after %s", timeout)
		}
		return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "powershell helper failed: %v", err)
	}
	text := strings.TrimSpace(string(out))
	if msg, ok := strings.CutPrefix(text, "ERROR:"); ok {
		return nil, scriptError(msg)
	}
	return []byte(text), nil
}

func scriptError(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "no longer exists"), strings.Contains(lower, "no longer resolves"):
		return cuperr.New(cuperr.StaleSnapshot, "%s; take a new snapshot", msg)
	case strings.Contains(lower, "access is denied"):
		return cuperr.New(cuperr.PlatformPermission, "%s", msg)
	}
	return cuperr.New(cuperr.PlatformFailure, "%s", msg)
}

// encodePowerShell base64-encodes a script as UTF-16LE, the encoding
// -EncodedCommand requires.
func encodePowerShell(script string) string {
	codes := utf16.Encode([]rune(script))
	buf := make([]byte, len(codes)*2)
	for i, c := range codes {
		buf[i*2] = byte(c)
		buf[i*2+1] = byte(c >> 8)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// windowRow mirrors one entry of the window-list helper output.
type windowRow struct {
	HWND  int64  `json:"hwnd"`
	Title string `json:"title"`
	PID   int    `json:"pid"`
	FG    bool   `json:"fg"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
}

type desktopState struct {
	ScreenW int         `json:"screenW"`
	ScreenH int         `json:"screenH"`
	Windows []windowRow `json:"windows"`
}

func (a *Adapter) desktopState(ctx context.Context) (*desktopState, error) {
	out, err := a.runScript(ctx, platform.DefaultTimeout, uiaWindowsScript, nil)
	if err != nil {
		return nil, err
	}
	var state desktopState
	if err := json.Unmarshal(out, &state); err != nil {
		return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "decode window list: %v", err)
	}
	return &state, nil
}

// ScreenInfo reads primary display metrics.
func (a *Adapter) ScreenInfo(ctx context.Context) (platform.ScreenInfo, error) {
	state, err := a.desktopState(ctx)
	if err != nil {
		return platform.ScreenInfo{}, err
	}
	return platform.ScreenInfo{W: state.ScreenW, H: state.ScreenH, Scale: 1}, nil
}

func rowMetadata(r windowRow) platform.WindowMetadata {
	return platform.WindowMetadata{Handle: r.HWND, Title: r.Title, PID: r.PID}
}

// ForegroundWindow returns the active window.
func (a *Adapter) ForegroundWindow(ctx context.Context) (platform.WindowMetadata, error) {
	state, err := a.desktopState(ctx)
	if err != nil {
		return platform.WindowMetadata{}, err
	}
	for _, r := range state.Windows {
		if r.FG {
			return rowMetadata(r), nil
		}
	}
	if len(state.Windows) > 0 {
		return rowMetadata(state.Windows[0]), nil
	}
	return platform.WindowMetadata{}, cuperr.New(cuperr.PlatformFailure, "no visible windows")
}

// AllWindows returns every visible titled window.
func (a *Adapter) AllWindows(ctx context.Context) ([]platform.WindowMetadata, error) {
	state, err := a.desktopState(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]platform.WindowMetadata, len(state.Windows))
	for i, r := range state.Windows {
		out[i] = rowMetadata(r)
	}
	return out, nil
}

// WindowList returns window records without walking any subtree.
func (a *Adapter) WindowList(ctx context.Context) ([]model.WindowInfo, error) {
	state, err := a.desktopState(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.WindowInfo, len(state.Windows))
	for i, r := range state.Windows {
		info := model.WindowInfo{Title: r.Title, PID: r.PID, Foreground: r.FG}
		if r.W > 0 && r.H > 0 {
			info.Bounds = &model.Bounds{X: r.X, Y: r.Y, W: r.W, H: r.H}
		}
		out[i] = info
	}
	return out, nil
}

// DesktopWindow returns the shell desktop window when present.
func (a *Adapter) DesktopWindow(ctx context.Context) (*platform.WindowMetadata, error) {
	state, err := a.desktopState(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range state.Windows {
		if r.Title == "Program Manager" {
			meta := rowMetadata(r)
			return &meta, nil
		}
	}
	return nil, nil
}

// Tools returns nil; page tools exist only on the web adapter.
func (a *Adapter) Tools(ctx context.Context) []model.ToolDescriptor { return nil }
