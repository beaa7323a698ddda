// Package darwinax captures the macOS accessibility tree through a
// lazily compiled Swift helper, with osascript handling application
// activation. The helper binary is cached process-wide; compilation is
// crash-safe (temp file plus atomic rename) and a binary that fails its
// startup probe is deleted and recompiled.
package darwinax

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

const helperName = "cup-ax"

// Adapter is the AXUIElement platform backend.
type Adapter struct {
	cache      *platform.HelperCache
	helperPath string
}

// New creates the macOS adapter.
func New() *Adapter {
	return &Adapter{cache: platform.NewHelperCache("cup-helpers")}
}

// Platform returns the canonical platform tag.
func (a *Adapter) Platform() string { return model.PlatformMacOS }

// Initialize compiles (or reuses) the Swift helper. Idempotent.
func (a *Adapter) Initialize(ctx context.Context) error {
	if a.helperPath != "" {
		return nil
	}
	if err := platform.LookHelper("swiftc"); err != nil {
		return err
	}
	path, err := a.cache.Ensure(ctx, helperName, axHelperSource, compileHelper)
	if err != nil {
		return err
	}
	if !a.cache.Probe(ctx, path, "ping") {
		// Corrupt cached binary: recompile once.
		a.cache.Invalidate(helperName, axHelperSource)
		path, err = a.cache.Ensure(ctx, helperName, axHelperSource, compileHelper)
		if err != nil {
			return err
		}
	}
	a.helperPath = path
	return nil
}

func compileHelper(ctx context.Context, dst string) error {
	src := dst + ".swift"
	if err := os.WriteFile(src, []byte(axHelperSource), 0o644); err != nil {
		return cuperr.Wrap(cuperr.PlatformFailure, err, "write helper source: %v", err)
	}
	defer os.Remove(src)
	_, err := platform.RunOutput(ctx, platform.CompileTimeout, "swiftc", "-O", "-o", dst, src)
	return err
}

// run invokes the helper with positional arguments.
func (a *Adapter) run(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	if a.helperPath == "" {
		if err := a.Initialize(ctx); err != nil {
			return nil, err
		}
	}
	out, err := platform.RunOutput(ctx, timeout, a.helperPath, args...)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "permission denied") || strings.Contains(msg, "not trusted"):
			return nil, cuperr.Wrap(cuperr.PlatformPermission, err,
				"accessibility access denied; grant it in System Settings > Privacy & Security > Accessibility")
		case strings.Contains(msg, "no longer resolves"):
			return nil, cuperr.Wrap(cuperr.StaleSnapshot, err, "element no longer exists; take a new snapshot")
		}
		return nil, err
	}
	return out, nil
}

// appRow mirrors one entry of the helper's windows command.
type appRow struct {
	PID      int    `json:"pid"`
	Name     string `json:"name"`
	BundleID string `json:"bundleId"`
	Active   bool   `json:"active"`
}

func (a *Adapter) apps(ctx context.Context) ([]appRow, error) {
	out, err := a.run(ctx, platform.DefaultTimeout, "windows")
	if err != nil {
		return nil, err
	}
	var rows []appRow
	if err := json.Unmarshal(out, &rows); err != nil {
		return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "decode app list: %v", err)
	}
	return rows, nil
}

// ScreenInfo reads main display geometry from the helper.
func (a *Adapter) ScreenInfo(ctx context.Context) (platform.ScreenInfo, error) {
	out, err := a.run(ctx, platform.DefaultTimeout, "screen")
	if err != nil {
		return platform.ScreenInfo{}, err
	}
	var info struct {
		W     int     `json:"w"`
		H     int     `json:"h"`
		Scale float64 `json:"scale"`
	}
	if err := json.Unmarshal(out, &info); err != nil {
		return platform.ScreenInfo{}, cuperr.Wrap(cuperr.PlatformFailure, err, "decode screen info: %v", err)
	}
	return platform.ScreenInfo{W: info.W, H: info.H, Scale: info.Scale}, nil
}

func rowMetadata(r appRow) platform.WindowMetadata {
	return platform.WindowMetadata{Handle: r.PID, Title: r.Name, PID: r.PID, BundleID: r.BundleID}
}

// ForegroundWindow returns the active application.
func (a *Adapter) ForegroundWindow(ctx context.Context) (platform.WindowMetadata, error) {
	rows, err := a.apps(ctx)
	if err != nil {
		return platform.WindowMetadata{}, err
	}
	for _, r := range rows {
		if r.Active {
			return rowMetadata(r), nil
		}
	}
	if len(rows) > 0 {
		return rowMetadata(rows[0]), nil
	}
	return platform.WindowMetadata{}, cuperr.New(cuperr.PlatformFailure, "no running applications")
}

// AllWindows returns every regular running application.
func (a *Adapter) AllWindows(ctx context.Context) ([]platform.WindowMetadata, error) {
	rows, err := a.apps(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]platform.WindowMetadata, len(rows))
	for i, r := range rows {
		out[i] = rowMetadata(r)
	}
	return out, nil
}

// WindowList returns application records without walking any subtree.
func (a *Adapter) WindowList(ctx context.Context) ([]model.WindowInfo, error) {
	rows, err := a.apps(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.WindowInfo, len(rows))
	for i, r := range rows {
		out[i] = model.WindowInfo{
			Title:      r.Name,
			PID:        r.PID,
			BundleID:   r.BundleID,
			Foreground: r.Active,
		}
	}
	return out, nil
}

// DesktopWindow returns nil; the Finder desktop is not captured.
func (a *Adapter) DesktopWindow(ctx context.Context) (*platform.WindowMetadata, error) {
	return nil, nil
}

// Tools returns nil; page tools exist only on the web adapter.
func (a *Adapter) Tools(ctx context.Context) []model.ToolDescriptor { return nil }

// activateApp raises an application via osascript, for captures that
// need the target frontmost.
func (a *Adapter) activateApp(ctx context.Context, pid int) error {
	jxa := fmt.Sprintf(
		`const se = Application("System Events");`+
			`const procs = se.processes.whose({unixId: %d});`+
			`if (procs.length > 0) { procs[0].frontmost = true; }`, pid)
	_, err := platform.RunOutput(ctx, platform.DefaultTimeout, "osascript", "-l", "JavaScript", "-e", jxa)
	return err
}
