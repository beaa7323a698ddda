package windowsuia

import (
	"context"
	"strconv"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// wheelDelta is one notch of the win32 mouse wheel.
const wheelDelta = 120

// scrollNotches is how many wheel notches one scroll action emits.
const scrollNotches = 3

// Perform executes an action against a captured UIA reference. Pattern
// actions run through the action helper; its BOUNDS: reply requests a
// coordinate click and FALLBACK:focus+enter requests a keyboard
// activation, both dispatched through the input helper.
func (a *Adapter) Perform(ctx context.Context, ref platform.NativeRef, action string, params platform.ActionParams) error {
	if ref.Kind != platform.RefWindows || ref.Windows == nil {
		return cuperr.New(cuperr.InvalidParams, "reference is not a UIA element")
	}
	hwnd, index := ref.Windows.HWND, ref.Windows.NodeIndex

	switch action {
	case model.ActionClick:
		return a.patternAction(ctx, hwnd, index, "invoke", "")
	case model.ActionDoubleClick:
		return a.clickBounds(ctx, hwnd, index, "left", 2)
	case model.ActionRightClick, model.ActionLongPress:
		return a.clickBounds(ctx, hwnd, index, "right", 1)
	case model.ActionToggle:
		return a.patternAction(ctx, hwnd, index, "toggle", "")
	case model.ActionExpand:
		return a.patternAction(ctx, hwnd, index, "expand", "")
	case model.ActionCollapse:
		return a.patternAction(ctx, hwnd, index, "collapse", "")
	case model.ActionSelect:
		return a.patternAction(ctx, hwnd, index, "select", "")
	case model.ActionSetValue:
		return a.patternAction(ctx, hwnd, index, "setvalue", params.Value)
	case model.ActionFocus:
		return a.patternAction(ctx, hwnd, index, "focus", "")
	case model.ActionIncrement:
		return a.patternAction(ctx, hwnd, index, "increment", "")
	case model.ActionDecrement:
		return a.patternAction(ctx, hwnd, index, "decrement", "")
	case model.ActionDismiss:
		return a.sendKeys(ctx, "{ESC}")
	case model.ActionType:
		if err := a.patternAction(ctx, hwnd, index, "focus", ""); err != nil {
			return err
		}
		return a.sendKeys(ctx, escapeSendKeys(params.Value))
	case model.ActionScroll:
		return a.scroll(ctx, hwnd, index, params.Direction)
	}
	return cuperr.New(cuperr.PlatformFailure, "action %q has no UIA handler", action)
}

// patternAction runs the action helper and interprets its line protocol.
func (a *Adapter) patternAction(ctx context.Context, hwnd int64, index int, action, value string) error {
	out, err := a.runScript(ctx, platform.DefaultTimeout, uiaActionScript, map[string]any{
		"hwnd": hwnd, "index": index, "action": action, "value": value,
	})
	if err != nil {
		return err
	}
	reply := strings.TrimSpace(string(out))
	switch {
	case strings.HasPrefix(reply, "OK:"):
		return nil
	case strings.HasPrefix(reply, "BOUNDS:"):
		return a.clickAt(ctx, reply, "left", 1)
	case reply == "FALLBACK:focus+enter":
		return a.sendKeys(ctx, "{ENTER}")
	}
	return cuperr.New(cuperr.PlatformFailure, "unexpected helper reply %q", reply)
}

// clickBounds asks the action helper for element center coordinates and
// clicks there.
func (a *Adapter) clickBounds(ctx context.Context, hwnd int64, index int, button string, clicks int) error {
	out, err := a.runScript(ctx, platform.DefaultTimeout, uiaActionScript, map[string]any{
		"hwnd": hwnd, "index": index, "action": "bounds",
	})
	if err != nil {
		return err
	}
	return a.clickAt(ctx, strings.TrimSpace(string(out)), button, clicks)
}

// clickAt parses a BOUNDS:<x>,<y> line and clicks there.
func (a *Adapter) clickAt(ctx context.Context, boundsLine, button string, clicks int) error {
	coords, ok := strings.CutPrefix(boundsLine, "BOUNDS:")
	if !ok {
		return cuperr.New(cuperr.PlatformFailure, "unexpected helper reply %q", boundsLine)
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return cuperr.New(cuperr.PlatformFailure, "malformed bounds reply %q", boundsLine)
	}
	x, _ := strconv.Atoi(xs)
	y, _ := strconv.Atoi(ys)
	_, err := a.runScript(ctx, platform.DefaultTimeout, uiaInputScript, map[string]any{
		"op": "click", "x": x, "y": y, "button": button, "count": clicks,
	})
	return err
}

func (a *Adapter) scroll(ctx context.Context, hwnd int64, index int, direction string) error {
	out, err := a.runScript(ctx, platform.DefaultTimeout, uiaActionScript, map[string]any{
		"hwnd": hwnd, "index": index, "action": "bounds",
	})
	if err != nil {
		return err
	}
	coords, ok := strings.CutPrefix(strings.TrimSpace(string(out)), "BOUNDS:")
	if !ok {
		return cuperr.New(cuperr.PlatformFailure, "unexpected helper reply %q", string(out))
	}
	xs, ys, _ := strings.Cut(coords, ",")
	x, _ := strconv.Atoi(xs)
	y, _ := strconv.Atoi(ys)

	axis := "v"
	delta := -wheelDelta * scrollNotches
	switch direction {
	case "up":
		delta = wheelDelta * scrollNotches
	case "left":
		axis, delta = "h", -wheelDelta*scrollNotches
	case "right":
		axis, delta = "h", wheelDelta*scrollNotches
	}
	_, err = a.runScript(ctx, platform.DefaultTimeout, uiaInputScript, map[string]any{
		"op": "scroll", "x": x, "y": y, "axis": axis, "delta": delta,
	})
	return err
}

func (a *Adapter) sendKeys(ctx context.Context, combo string) error {
	_, err := a.runScript(ctx, platform.DefaultTimeout, uiaInputScript, map[string]any{
		"op": "keys", "combo": combo,
	})
	return err
}

// sendKeysNames maps canonical key names to SendKeys tokens.
var sendKeysNames = map[string]string{
	"enter":     "{ENTER}",
	"escape":    "{ESC}",
	"delete":    "{DEL}",
	"backspace": "{BS}",
	"tab":       "{TAB}",
	"space":     " ",
	"up":        "{UP}",
	"down":      "{DOWN}",
	"left":      "{LEFT}",
	"right":     "{RIGHT}",
	"home":      "{HOME}",
	"end":       "{END}",
	"pageup":    "{PGUP}",
	"pagedown":  "{PGDN}",
}

// PressKeys dispatches a key combo via SendKeys modifier syntax
// (+ shift, ^ ctrl, % alt).
func (a *Adapter) PressKeys(ctx context.Context, modifiers, keys []string) error {
	var b strings.Builder
	for _, m := range modifiers {
		switch m {
		case "shift":
			b.WriteByte('+')
		case "ctrl":
			b.WriteByte('^')
		case "alt":
			b.WriteByte('%')
			// SendKeys has no Windows-key modifier; meta is dropped.
		}
	}
	for _, k := range keys {
		if token, ok := sendKeysNames[k]; ok {
			b.WriteString(token)
		} else if len(k) >= 2 && k[0] == 'f' {
			b.WriteString("{" + strings.ToUpper(k) + "}")
		} else {
			b.WriteString(escapeSendKeys(k))
		}
	}
	return a.sendKeys(ctx, b.String())
}

// escapeSendKeys quotes SendKeys metacharacters in literal text.
func escapeSendKeys(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '+', '^', '%', '~', '(', ')', '{', '}', '[', ']':
			b.WriteString("{" + string(r) + "}")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
