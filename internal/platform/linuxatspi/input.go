package linuxatspi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// xdotool mouse buttons.
const (
	buttonLeft       = "1"
	buttonRight      = "3"
	scrollUpButton   = "4"
	scrollDownButton = "5"
	scrollLeftButton = "6"
	scrollRightButton = "7"
)

// scrollClicks is how many wheel events one scroll action emits.
const scrollClicks = 3

// Perform executes a native action against a captured reference.
func (a *Adapter) Perform(ctx context.Context, ref platform.NativeRef, action string, params platform.ActionParams) error {
	if ref.Kind != platform.RefATSPI || ref.ATSPI == nil {
		return cuperr.New(cuperr.InvalidParams, "reference is not an AT-SPI object")
	}
	target := obj{bus: ref.ATSPI.BusName, path: ref.ATSPI.ObjectPath}

	switch action {
	case model.ActionClick:
		return a.clickAt(ctx, target, buttonLeft, 1)
	case model.ActionDoubleClick:
		return a.clickAt(ctx, target, buttonLeft, 2)
	case model.ActionRightClick, model.ActionLongPress:
		return a.clickAt(ctx, target, buttonRight, 1)
	case model.ActionToggle, model.ActionExpand, model.ActionCollapse,
		model.ActionSelect, model.ActionDismiss:
		return a.doAction(ctx, target)
	case model.ActionFocus:
		return a.grabFocus(ctx, target)
	case model.ActionType:
		if err := a.grabFocus(ctx, target); err != nil {
			return err
		}
		_, err := platform.RunOutput(ctx, platform.DefaultTimeout, "xdotool", "type", "--delay", "12", "--", params.Value)
		return err
	case model.ActionSetValue:
		return a.setValue(ctx, target, params.Value)
	case model.ActionScroll:
		return a.scroll(ctx, target, params.Direction)
	case model.ActionIncrement, model.ActionDecrement:
		return a.step(ctx, target, action)
	}
	return cuperr.New(cuperr.PlatformFailure, "action %q has no AT-SPI handler", action)
}

// clickAt moves the pointer to the element center and clicks.
func (a *Adapter) clickAt(ctx context.Context, target obj, button string, repeat int) error {
	x, y, w, h, err := a.extents(ctx, target)
	if err != nil {
		return staleOr(err)
	}
	cx := strconv.Itoa(x + w/2)
	cy := strconv.Itoa(y + h/2)
	if _, err := platform.RunOutput(ctx, platform.DefaultTimeout, "xdotool", "mousemove", cx, cy); err != nil {
		return err
	}
	args := []string{"click"}
	if repeat > 1 {
		args = append(args, "--repeat", strconv.Itoa(repeat))
	}
	args = append(args, button)
	_, err = platform.RunOutput(ctx, platform.DefaultTimeout, "xdotool", args...)
	return err
}

// doAction invokes the element's first AT-SPI action.
func (a *Adapter) doAction(ctx context.Context, target obj) error {
	_, err := a.call(ctx, platform.DefaultTimeout, target, ifaceAction+".DoAction", "0")
	return staleOr(err)
}

func (a *Adapter) grabFocus(ctx context.Context, target obj) error {
	_, err := a.call(ctx, platform.DefaultTimeout, target, ifaceComponent+".GrabFocus")
	return staleOr(err)
}

// setValue writes through EditableText, falling back to the Value
// interface for numeric elements.
func (a *Adapter) setValue(ctx context.Context, target obj, value string) error {
	if _, err := a.call(ctx, platform.DefaultTimeout, target, ifaceEditableText+".SetTextContents", gvString(value)); err == nil {
		return nil
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		_, serr := a.call(ctx, platform.DefaultTimeout, target,
			ifaceProperties+".Set", ifaceValue, "CurrentValue", "<"+value+">")
		return staleOr(serr)
	}
	return cuperr.New(cuperr.PlatformFailure, "element accepts neither text nor numeric value")
}

func (a *Adapter) scroll(ctx context.Context, target obj, direction string) error {
	x, y, w, h, err := a.extents(ctx, target)
	if err != nil {
		return staleOr(err)
	}
	cx := strconv.Itoa(x + w/2)
	cy := strconv.Itoa(y + h/2)
	if _, err := platform.RunOutput(ctx, platform.DefaultTimeout, "xdotool", "mousemove", cx, cy); err != nil {
		return err
	}
	button := map[string]string{
		"up":    scrollUpButton,
		"down":  scrollDownButton,
		"left":  scrollLeftButton,
		"right": scrollRightButton,
	}[direction]
	_, err = platform.RunOutput(ctx, platform.DefaultTimeout, "xdotool",
		"click", "--repeat", strconv.Itoa(scrollClicks), button)
	return err
}

// step adjusts a Value-interface element by its minimum increment.
func (a *Adapter) step(ctx context.Context, target obj, action string) error {
	now, err := a.property(ctx, target, ifaceValue, "CurrentValue")
	if err != nil {
		return staleOr(err)
	}
	inc, err := a.property(ctx, target, ifaceValue, "MinimumIncrement")
	delta := 1.0
	if err == nil && asFloat(inc) > 0 {
		delta = asFloat(inc)
	}
	next := asFloat(now) + delta
	if action == model.ActionDecrement {
		next = asFloat(now) - delta
	}
	_, serr := a.call(ctx, platform.DefaultTimeout, target,
		ifaceProperties+".Set", ifaceValue, "CurrentValue",
		"<"+strconv.FormatFloat(next, 'f', -1, 64)+">")
	return staleOr(serr)
}

// xdotoolKeyNames translates canonical key names to X keysyms.
var xdotoolKeyNames = map[string]string{
	"enter":     "Return",
	"escape":    "Escape",
	"delete":    "Delete",
	"backspace": "BackSpace",
	"tab":       "Tab",
	"space":     "space",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"pageup":    "Page_Up",
	"pagedown":  "Page_Down",
	"meta":      "super",
}

// PressKeys dispatches a key combo through xdotool.
func (a *Adapter) PressKeys(ctx context.Context, modifiers, keys []string) error {
	var parts []string
	for _, m := range modifiers {
		parts = append(parts, xdotoolKey(m))
	}
	for _, k := range keys {
		parts = append(parts, xdotoolKey(k))
	}
	if len(parts) == 0 {
		return cuperr.New(cuperr.InvalidParams, "empty key combo")
	}
	_, err := platform.RunOutput(ctx, platform.DefaultTimeout, "xdotool", "key", strings.Join(parts, "+"))
	return err
}

func xdotoolKey(name string) string {
	if mapped, ok := xdotoolKeyNames[name]; ok {
		return mapped
	}
	return name
}

func staleOr(err error) error {
	if err == nil {
		return nil
	}
	if isStale(err) {
		return cuperr.Wrap(cuperr.StaleSnapshot, err, "element no longer exists; take a new snapshot")
	}
	return err
}

// gvString quotes a string as a GVariant literal for gdbus arguments.
func gvString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func itoa(v int) string { return fmt.Sprintf("%d", v) }
