package web

import (
	"context"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// CDP Input modifier bits.
const (
	modAlt   = 1
	modCtrl  = 2
	modMeta  = 4
	modShift = 8
)

// scrollDelta is the wheel delta, in pixels, for one scroll action.
const scrollDelta = 400

// Perform executes an action against a captured DOM-backed node.
func (a *Adapter) Perform(ctx context.Context, ref platform.NativeRef, action string, params platform.ActionParams) error {
	if ref.Kind != platform.RefCDP || ref.CDP == nil {
		return cuperr.New(cuperr.InvalidParams, "reference is not a CDP node")
	}
	c, err := a.conn(ctx, ref.CDP.WSURL)
	if err != nil {
		return err
	}
	backendID := ref.CDP.BackendID

	switch action {
	case model.ActionClick, model.ActionSelect, model.ActionToggle,
		model.ActionExpand, model.ActionCollapse:
		return a.clickNode(ctx, c, backendID, "left", 1)
	case model.ActionDoubleClick:
		return a.clickNode(ctx, c, backendID, "left", 2)
	case model.ActionRightClick, model.ActionLongPress:
		return a.clickNode(ctx, c, backendID, "right", 1)
	case model.ActionFocus:
		return a.focusNode(ctx, c, backendID)
	case model.ActionType:
		if err := a.focusNode(ctx, c, backendID); err != nil {
			return err
		}
		return c.Call(ctx, "Input.insertText", map[string]any{"text": params.Value}, nil)
	case model.ActionSetValue:
		return a.setNodeValue(ctx, c, backendID, params.Value)
	case model.ActionScroll:
		return a.scrollNode(ctx, c, backendID, params.Direction)
	case model.ActionIncrement:
		return a.arrowKey(ctx, c, backendID, "ArrowUp")
	case model.ActionDecrement:
		return a.arrowKey(ctx, c, backendID, "ArrowDown")
	case model.ActionDismiss:
		return a.keyEvent(ctx, c, 0, "Escape", "Escape")
	}
	return cuperr.New(cuperr.PlatformFailure, "action %q has no CDP handler", action)
}

// nodeCenter resolves the node's content-box center in viewport
// coordinates.
func (a *Adapter) nodeCenter(ctx context.Context, c *cdpConn, backendID int64) (float64, float64, error) {
	_ = c.Call(ctx, "DOM.scrollIntoViewIfNeeded", map[string]any{"backendNodeId": backendID}, nil)

	var reply struct {
		Model struct {
			Content []float64 `json:"content"`
		} `json:"model"`
	}
	err := c.Call(ctx, "DOM.getBoxModel", map[string]any{"backendNodeId": backendID}, &reply)
	if err != nil {
		if strings.Contains(err.Error(), "No node") || strings.Contains(err.Error(), "not be found") {
			return 0, 0, cuperr.Wrap(cuperr.StaleSnapshot, err, "node no longer exists; take a new snapshot")
		}
		return 0, 0, err
	}
	q := reply.Model.Content
	if len(q) < 8 {
		return 0, 0, cuperr.New(cuperr.PlatformFailure, "node has no box model")
	}
	cx := (q[0] + q[2] + q[4] + q[6]) / 4
	cy := (q[1] + q[3] + q[5] + q[7]) / 4
	return cx, cy, nil
}

func (a *Adapter) clickNode(ctx context.Context, c *cdpConn, backendID int64, button string, clicks int) error {
	x, y, err := a.nodeCenter(ctx, c, backendID)
	if err != nil {
		return err
	}
	for i := 1; i <= clicks; i++ {
		press := map[string]any{
			"type": "mousePressed", "x": x, "y": y,
			"button": button, "clickCount": i,
		}
		release := map[string]any{
			"type": "mouseReleased", "x": x, "y": y,
			"button": button, "clickCount": i,
		}
		if err := c.Call(ctx, "Input.dispatchMouseEvent", press, nil); err != nil {
			return err
		}
		if err := c.Call(ctx, "Input.dispatchMouseEvent", release, nil); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) focusNode(ctx context.Context, c *cdpConn, backendID int64) error {
	err := c.Call(ctx, "DOM.focus", map[string]any{"backendNodeId": backendID}, nil)
	if err != nil && (strings.Contains(err.Error(), "No node") || strings.Contains(err.Error(), "not be found")) {
		return cuperr.Wrap(cuperr.StaleSnapshot, err, "node no longer exists; take a new snapshot")
	}
	return err
}

// setNodeValue assigns the value property and fires input/change events
// so framework listeners observe the edit.
func (a *Adapter) setNodeValue(ctx context.Context, c *cdpConn, backendID int64, value string) error {
	var resolved struct {
		Object struct {
			ObjectID string `json:"objectId"`
		} `json:"object"`
	}
	err := c.Call(ctx, "DOM.resolveNode", map[string]any{"backendNodeId": backendID}, &resolved)
	if err != nil {
		if strings.Contains(err.Error(), "No node") || strings.Contains(err.Error(), "not be found") {
			return cuperr.Wrap(cuperr.StaleSnapshot, err, "node no longer exists; take a new snapshot")
		}
		return err
	}
	return c.Call(ctx, "Runtime.callFunctionOn", map[string]any{
		"objectId": resolved.Object.ObjectID,
		"functionDeclaration": `function(v) {
			this.value = v;
			this.dispatchEvent(new Event("input", {bubbles: true}));
			this.dispatchEvent(new Event("change", {bubbles: true}));
		}`,
		"arguments": []map[string]any{{"value": value}},
	}, nil)
}

func (a *Adapter) scrollNode(ctx context.Context, c *cdpConn, backendID int64, direction string) error {
	x, y, err := a.nodeCenter(ctx, c, backendID)
	if err != nil {
		return err
	}
	dx, dy := 0, 0
	switch direction {
	case "up":
		dy = -scrollDelta
	case "down":
		dy = scrollDelta
	case "left":
		dx = -scrollDelta
	case "right":
		dx = scrollDelta
	}
	return c.Call(ctx, "Input.dispatchMouseEvent", map[string]any{
		"type": "mouseWheel", "x": x, "y": y,
		"deltaX": dx, "deltaY": dy,
	}, nil)
}

func (a *Adapter) arrowKey(ctx context.Context, c *cdpConn, backendID int64, key string) error {
	if err := a.focusNode(ctx, c, backendID); err != nil {
		return err
	}
	return a.keyEvent(ctx, c, 0, key, key)
}

// cdpKeyNames translates canonical key names to DOM key values.
var cdpKeyNames = map[string]string{
	"enter":     "Enter",
	"escape":    "Escape",
	"delete":    "Delete",
	"backspace": "Backspace",
	"tab":       "Tab",
	"space":     " ",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pagedown":  "PageDown",
}

// PressKeys dispatches a combo on the foreground page.
func (a *Adapter) PressKeys(ctx context.Context, modifiers, keys []string) error {
	fg, err := a.ForegroundWindow(ctx)
	if err != nil {
		return err
	}
	wsURL, _ := fg.Handle.(string)
	c, err := a.conn(ctx, wsURL)
	if err != nil {
		return err
	}

	mask := 0
	for _, m := range modifiers {
		switch m {
		case "alt":
			mask |= modAlt
		case "ctrl":
			mask |= modCtrl
		case "meta":
			mask |= modMeta
		case "shift":
			mask |= modShift
		}
	}
	for _, k := range keys {
		key := k
		if mapped, ok := cdpKeyNames[k]; ok {
			key = mapped
		}
		if err := a.keyEvent(ctx, c, mask, key, key); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) keyEvent(ctx context.Context, c *cdpConn, modifiers int, key, code string) error {
	down := map[string]any{
		"type": "rawKeyDown", "modifiers": modifiers,
		"key": key, "code": code,
	}
	up := map[string]any{
		"type": "keyUp", "modifiers": modifiers,
		"key": key, "code": code,
	}
	if len(key) == 1 && modifiers == 0 {
		down["type"] = "keyDown"
		down["text"] = key
	}
	if err := c.Call(ctx, "Input.dispatchKeyEvent", down, nil); err != nil {
		return err
	}
	return c.Call(ctx, "Input.dispatchKeyEvent", up, nil)
}
