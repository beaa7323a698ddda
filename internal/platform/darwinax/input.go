package darwinax

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// macOS virtual key codes from Carbon's Events.h.
var keyCodes = map[string]uint16{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"enter": 0x24, "tab": 0x30, "space": 0x31,
	"delete": 0x33, "backspace": 0x33, "escape": 0x35,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
	"home": 0x73, "end": 0x77, "pageup": 0x74, "pagedown": 0x79,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
}

// CGEventFlags modifier masks.
const (
	flagShift = 0x00020000
	flagCtrl  = 0x00040000
	flagAlt   = 0x00080000
	flagMeta  = 0x00100000
)

// scrollLines is how many line units one scroll action moves.
const scrollLines = 5

// Perform executes an action against a captured AX reference.
func (a *Adapter) Perform(ctx context.Context, ref platform.NativeRef, action string, params platform.ActionParams) error {
	if ref.Kind != platform.RefMac || ref.Mac == nil {
		return cuperr.New(cuperr.InvalidParams, "reference is not an AX element")
	}
	pid := ref.Mac.PID
	path := joinPath(ref.Mac.Path)

	switch action {
	case model.ActionClick:
		return a.axAction(ctx, pid, path, "AXPress")
	case model.ActionToggle, model.ActionSelect:
		return a.axAction(ctx, pid, path, "AXPress")
	case model.ActionExpand, model.ActionCollapse:
		// AXExpanded is a settable attribute, not an action; press works
		// for disclosure triangles and falls back to the menu action.
		if err := a.axAction(ctx, pid, path, "AXPress"); err == nil {
			return nil
		}
		return a.axAction(ctx, pid, path, "AXShowMenu")
	case model.ActionDismiss:
		return a.axAction(ctx, pid, path, "AXCancel")
	case model.ActionIncrement:
		return a.axAction(ctx, pid, path, "AXIncrement")
	case model.ActionDecrement:
		return a.axAction(ctx, pid, path, "AXDecrement")
	case model.ActionFocus:
		_, err := a.run(ctx, platform.DefaultTimeout, "focus", itoa(pid), path)
		return err
	case model.ActionSetValue:
		_, err := a.run(ctx, platform.DefaultTimeout, "setvalue", itoa(pid), path, params.Value)
		return err
	case model.ActionType:
		if _, err := a.run(ctx, platform.DefaultTimeout, "focus", itoa(pid), path); err != nil {
			return err
		}
		_, err := a.run(ctx, platform.DefaultTimeout, "type", params.Value)
		return err
	case model.ActionDoubleClick, model.ActionRightClick, model.ActionLongPress, model.ActionScroll:
		return a.pointerAction(ctx, pid, path, action, params)
	}
	return cuperr.New(cuperr.PlatformFailure, "action %q has no AX handler", action)
}

func (a *Adapter) axAction(ctx context.Context, pid int, path, name string) error {
	_, err := a.run(ctx, platform.DefaultTimeout, "action", itoa(pid), path, name)
	return err
}

// pointerAction re-reads the element's bounds and drives the pointer.
func (a *Adapter) pointerAction(ctx context.Context, pid int, path, action string, params platform.ActionParams) error {
	x, y, err := a.elementCenter(ctx, pid, path)
	if err != nil {
		return err
	}
	switch action {
	case model.ActionDoubleClick:
		_, err = a.run(ctx, platform.DefaultTimeout, "click", x, y, "left", "2")
	case model.ActionRightClick, model.ActionLongPress:
		_, err = a.run(ctx, platform.DefaultTimeout, "click", x, y, "right", "1")
	case model.ActionScroll:
		dx, dy := 0, 0
		switch params.Direction {
		case "up":
			dy = scrollLines
		case "down":
			dy = -scrollLines
		case "left":
			dx = scrollLines
		case "right":
			dx = -scrollLines
		}
		_, err = a.run(ctx, platform.DefaultTimeout, "scroll", x, y, itoa(dx), itoa(dy))
	}
	return err
}

// elementCenter re-walks to the element and returns its center point.
// It recaptures the application's whole tree in one helper call and
// matches the node by its child index path.
func (a *Adapter) elementCenter(ctx context.Context, pid int, path string) (string, string, error) {
	nodes, err := a.captureApp(ctx, pid, 0)
	if err != nil {
		return "", "", err
	}
	for _, n := range nodes {
		if joinPath(n.Path) == path {
			if n.X == nil || n.Y == nil || n.W == nil || n.H == nil {
				return "", "", cuperr.New(cuperr.PlatformFailure, "element has no bounds")
			}
			return itoa(*n.X + *n.W/2), itoa(*n.Y + *n.H/2), nil
		}
	}
	return "", "", cuperr.New(cuperr.StaleSnapshot, "element no longer exists; take a new snapshot")
}

// PressKeys dispatches a key combo through the helper.
func (a *Adapter) PressKeys(ctx context.Context, modifiers, keys []string) error {
	var flags uint64
	for _, m := range modifiers {
		switch m {
		case "shift":
			flags |= flagShift
		case "ctrl":
			flags |= flagCtrl
		case "alt":
			flags |= flagAlt
		case "meta":
			flags |= flagMeta
		}
	}
	for _, k := range keys {
		code, ok := keyCodes[k]
		if !ok {
			return cuperr.New(cuperr.InvalidParams, "unknown key %q", k)
		}
		if _, err := a.run(ctx, platform.DefaultTimeout, "keys",
			strconv.FormatUint(flags, 10), strconv.Itoa(int(code))); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func itoa(v int) string { return fmt.Sprintf("%d", v) }
