// Package linuxatspi captures the Linux accessibility tree from the
// AT-SPI2 registry over D-Bus (via gdbus) and dispatches input through
// xdotool.
package linuxatspi

import (
	"context"
	"strconv"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// Adapter is the AT-SPI2 platform backend.
type Adapter struct {
	initialized bool
}

// New creates the Linux adapter.
func New() *Adapter { return &Adapter{} }

// Platform returns the canonical platform tag.
func (a *Adapter) Platform() string { return model.PlatformLinux }

// Initialize verifies the required helpers are present. Idempotent.
func (a *Adapter) Initialize(ctx context.Context) error {
	if a.initialized {
		return nil
	}
	if err := platform.LookHelper("gdbus"); err != nil {
		return err
	}
	if err := platform.LookHelper("xdotool"); err != nil {
		return err
	}
	a.initialized = true
	return nil
}

// ScreenInfo reads display geometry from xdotool.
func (a *Adapter) ScreenInfo(ctx context.Context) (platform.ScreenInfo, error) {
	out, err := platform.RunOutput(ctx, platform.DefaultTimeout, "xdotool", "getdisplaygeometry")
	if err != nil {
		return platform.ScreenInfo{}, err
	}
	fields := strings.Fields(string(out))
	if len(fields) != 2 {
		return platform.ScreenInfo{}, cuperr.New(cuperr.PlatformFailure, "unexpected xdotool geometry output %q", string(out))
	}
	w, _ := strconv.Atoi(fields[0])
	h, _ := strconv.Atoi(fields[1])
	return platform.ScreenInfo{W: w, H: h, Scale: 1}, nil
}

// applications lists the registry root's children.
func (a *Adapter) applications(ctx context.Context) ([]obj, error) {
	return a.children(ctx, obj{bus: registryBus, path: rootPath})
}

// appWindows lists the top-level frames of one application with their
// titles and active state.
func (a *Adapter) appWindows(ctx context.Context, app obj) []windowEntry {
	frames, err := a.children(ctx, app)
	if err != nil {
		return nil
	}
	appName := a.stringProperty(ctx, app, ifaceAccessible, "Name")
	var out []windowEntry
	for _, frame := range frames {
		role, err := a.roleName(ctx, frame)
		if err != nil {
			continue
		}
		switch role {
		case "frame", "window", "dialog":
		default:
			continue
		}
		mask := a.stateMask(ctx, frame)
		if mask&(1<<platform.ATSPIStateShowing) == 0 {
			continue
		}
		title := a.stringProperty(ctx, frame, ifaceAccessible, "Name")
		if title == "" {
			title = appName
		}
		out = append(out, windowEntry{
			target: frame,
			title:  title,
			app:    appName,
			active: mask&(1<<platform.ATSPIStateActive) != 0,
		})
	}
	return out
}

type windowEntry struct {
	target obj
	title  string
	app    string
	active bool
}

func (w windowEntry) metadata() platform.WindowMetadata {
	return platform.WindowMetadata{
		Handle: w.target,
		Title:  w.title,
	}
}

// allWindowEntries enumerates every showing top-level frame.
func (a *Adapter) allWindowEntries(ctx context.Context) ([]windowEntry, error) {
	apps, err := a.applications(ctx)
	if err != nil {
		return nil, err
	}
	var out []windowEntry
	for _, app := range apps {
		out = append(out, a.appWindows(ctx, app)...)
	}
	return out, nil
}

// ForegroundWindow returns the active frame.
func (a *Adapter) ForegroundWindow(ctx context.Context) (platform.WindowMetadata, error) {
	entries, err := a.allWindowEntries(ctx)
	if err != nil {
		return platform.WindowMetadata{}, err
	}
	for _, e := range entries {
		if e.active {
			return e.metadata(), nil
		}
	}
	if len(entries) > 0 {
		return entries[0].metadata(), nil
	}
	return platform.WindowMetadata{}, cuperr.New(cuperr.PlatformFailure, "no showing window on the accessibility bus")
}

// AllWindows returns every showing frame.
func (a *Adapter) AllWindows(ctx context.Context) ([]platform.WindowMetadata, error) {
	entries, err := a.allWindowEntries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]platform.WindowMetadata, len(entries))
	for i, e := range entries {
		out[i] = e.metadata()
	}
	return out, nil
}

// WindowList returns window records without walking any subtree.
func (a *Adapter) WindowList(ctx context.Context) ([]model.WindowInfo, error) {
	entries, err := a.allWindowEntries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.WindowInfo, 0, len(entries))
	for _, e := range entries {
		info := model.WindowInfo{Title: e.title, Foreground: e.active}
		if x, y, w, h, err := a.extents(ctx, e.target); err == nil && w > 0 && h > 0 {
			info.Bounds = &model.Bounds{X: x, Y: y, W: w, H: h}
		}
		out = append(out, info)
	}
	return out, nil
}

// DesktopWindow returns nil: AT-SPI exposes no desktop surface.
func (a *Adapter) DesktopWindow(ctx context.Context) (*platform.WindowMetadata, error) {
	return nil, nil
}

// Tools returns nil; page tools exist only on the web adapter.
func (a *Adapter) Tools(ctx context.Context) []model.ToolDescriptor { return nil }
