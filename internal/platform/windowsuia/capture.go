package windowsuia

import (
	"context"
	"encoding/json"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// capturedNode mirrors one element of the capture helper's JSON output.
type capturedNode struct {
	Depth int     `json:"d"`
	HWND  int64   `json:"hwnd"`
	CT    int     `json:"ct"`
	Name  string  `json:"name"`
	Auto  string  `json:"auto"`
	Cls   string  `json:"cls"`
	Help  string  `json:"help"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	W     int     `json:"w"`
	H     int     `json:"h"`
	En    bool    `json:"en"`
	Foc   bool    `json:"foc"`
	Off   bool    `json:"off"`
	Req   bool    `json:"req"`
	Ori   int     `json:"ori"`
	Inv   bool    `json:"inv"`
	Tog   bool    `json:"tog"`
	Exp   bool    `json:"exp"`
	Val   bool    `json:"val"`
	Sel   bool    `json:"sel"`
	Scr   bool    `json:"scr"`
	Rng   bool    `json:"rng"`
	TogS  int     `json:"togS"`
	ExpS  int     `json:"expS"`
	IsSel bool    `json:"isSel"`
	RO    bool    `json:"ro"`
	Value string  `json:"value"`
	RMin  float64 `json:"rmin"`
	RMax  float64 `json:"rmax"`
	RVal  float64 `json:"rval"`
	Modal bool    `json:"modal"`
	Aria  string  `json:"aria"`
	AriaP string  `json:"ariaP"`
}

// CaptureTree walks each window's cached UIA subtree via the capture
// helper. Windows run sequentially in input order; a window that fails
// contributes nothing. Chromium windows whose accessibility tree has
// not initialized are foregrounded once and recaptured.
func (a *Adapter) CaptureTree(ctx context.Context, windows []platform.WindowMetadata, maxDepth int) (*platform.CaptureResult, error) {
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	screen, err := a.ScreenInfo(ctx)
	if err != nil {
		return nil, err
	}

	for _, win := range windows {
		hwnd, ok := win.Handle.(int64)
		if !ok {
			continue
		}
		nodes, err := a.captureWindow(ctx, hwnd, maxDepth)
		if err != nil {
			continue
		}
		if looksLazy(nodes) {
			if a.foregroundWindow(ctx, hwnd) == nil {
				if again, err := a.captureWindow(ctx, hwnd, maxDepth); err == nil && len(again) > len(nodes) {
					nodes = again
				}
			}
		}
		appendWindowNodes(out, nodes, screen)
	}
	return out, nil
}

func (a *Adapter) captureWindow(ctx context.Context, hwnd int64, maxDepth int) ([]capturedNode, error) {
	out, err := a.runScript(ctx, platform.CaptureTimeout, uiaCaptureScript, map[string]any{
		"hwnds":    []int64{hwnd},
		"maxDepth": maxDepth,
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	var nodes []capturedNode
	if err := json.Unmarshal(out, &nodes); err != nil {
		// A single-node subtree serializes as an object, not an array.
		var one capturedNode
		if err2 := json.Unmarshal(out, &one); err2 != nil {
			return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "decode capture output: %v", err)
		}
		nodes = []capturedNode{one}
	}
	return nodes, nil
}

// looksLazy detects an uninitialized Chromium/Electron accessibility
// tree: suspiciously few nodes, or browser chrome with no Document.
func looksLazy(nodes []capturedNode) bool {
	if len(nodes) == 0 {
		return false
	}
	if len(nodes) < lazyTreeThreshold {
		return true
	}
	chromish := false
	hasDocument := false
	for _, n := range nodes {
		if n.Cls == "Chrome_RenderWidgetHostHWND" || n.Cls == "Chrome_WidgetWin_1" {
			chromish = true
		}
		if n.CT == 50030 {
			hasDocument = true
		}
	}
	return chromish && !hasDocument
}

func (a *Adapter) foregroundWindow(ctx context.Context, hwnd int64) error {
	_, err := a.runScript(ctx, platform.DefaultTimeout, uiaInputScript, map[string]any{
		"op":   "foreground",
		"hwnd": hwnd,
	})
	return err
}

func appendWindowNodes(out *platform.CaptureResult, nodes []capturedNode, screen platform.ScreenInfo) {
	for i, cn := range nodes {
		raw := &platform.UIARaw{
			ControlType:         cn.CT,
			Name:                cn.Name,
			AutomationID:        cn.Auto,
			ClassName:           cn.Cls,
			HelpText:            cn.Help,
			IsEnabled:           cn.En,
			HasKeyboardFocus:    cn.Foc,
			IsOffscreen:         cn.Off,
			IsRequiredForForm:   cn.Req,
			IsModal:             cn.Modal,
			Orientation:         cn.Ori,
			HasInvoke:           cn.Inv,
			HasToggle:           cn.Tog,
			HasExpandCollapse:   cn.Exp,
			HasValue:            cn.Val,
			HasSelectionItem:    cn.Sel,
			HasScroll:           cn.Scr,
			HasRangeValue:       cn.Rng,
			ToggleState:         cn.TogS,
			ExpandCollapseState: cn.ExpS,
			IsSelected:          cn.IsSel,
			IsReadOnly:          cn.RO,
			Value:               cn.Value,
			RangeMin:            cn.RMin,
			RangeMax:            cn.RMax,
			RangeValue:          cn.RVal,
			AriaRole:            cn.Aria,
			AriaProperties:      cn.AriaP,
		}

		node := platform.RawNode{Depth: cn.Depth, UIA: raw, Offscreen: cn.Off}
		if cn.W > 0 && cn.H > 0 {
			bounds := &model.Bounds{X: cn.X, Y: cn.Y, W: cn.W, H: cn.H}
			node.Bounds = bounds
			if screen.W > 0 && screen.H > 0 &&
				(cn.X+cn.W <= 0 || cn.Y+cn.H <= 0 || cn.X >= screen.W || cn.Y >= screen.H) {
				node.Offscreen = true
			}
		}

		out.Nodes = append(out.Nodes, node)
		out.Refs = append(out.Refs, platform.NativeRef{
			Kind:    platform.RefWindows,
			Windows: &platform.WindowsRef{HWND: cn.HWND, NodeIndex: i},
		})
		out.Stats.Observe(cn.Depth, raw.ControlTypeName())
	}
}
