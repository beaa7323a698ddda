package darwinax

import (
	"context"
	"encoding/json"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// helperNode mirrors one element of the helper's tree output.
type helperNode struct {
	Depth       int      `json:"d"`
	Path        []int    `json:"path"`
	Role        string   `json:"role"`
	Subrole     string   `json:"subrole"`
	Title       string   `json:"title"`
	Desc        string   `json:"desc"`
	Help        string   `json:"help"`
	Identifier  string   `json:"id"`
	Value       string   `json:"value"`
	Enabled     bool     `json:"enabled"`
	Focused     bool     `json:"focused"`
	Selected    bool     `json:"selected"`
	Expanded    bool     `json:"expanded"`
	HasExpanded bool     `json:"hasExpanded"`
	Modal       bool     `json:"modal"`
	Editable    bool     `json:"editable"`
	Actions     []string `json:"actions"`
	URL         string   `json:"url"`
	Placeholder string   `json:"placeholder"`
	X           *int     `json:"x"`
	Y           *int     `json:"y"`
	W           *int     `json:"w"`
	H           *int     `json:"h"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Now         *float64 `json:"now"`
}

// CaptureTree walks each application's accessibility tree through the
// helper, sequentially in input order. An application that denies
// access or has died contributes nothing.
func (a *Adapter) CaptureTree(ctx context.Context, windows []platform.WindowMetadata, maxDepth int) (*platform.CaptureResult, error) {
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	screen, err := a.ScreenInfo(ctx)
	if err != nil {
		return nil, err
	}

	for _, win := range windows {
		pid, ok := win.Handle.(int)
		if !ok {
			continue
		}
		nodes, err := a.captureApp(ctx, pid, maxDepth)
		if err != nil {
			continue
		}
		appendAppNodes(out, nodes, pid, screen)
	}
	return out, nil
}

func (a *Adapter) captureApp(ctx context.Context, pid, maxDepth int) ([]helperNode, error) {
	args := []string{"tree", itoa(pid)}
	if maxDepth > 0 {
		args = append(args, itoa(maxDepth))
	}
	out, err := a.run(ctx, platform.CaptureTimeout, args...)
	if err != nil {
		return nil, err
	}
	var nodes []helperNode
	if err := json.Unmarshal(out, &nodes); err != nil {
		return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "decode tree output: %v", err)
	}
	return nodes, nil
}

func appendAppNodes(out *platform.CaptureResult, nodes []helperNode, pid int, screen platform.ScreenInfo) {
	for _, hn := range nodes {
		raw := &platform.AXRaw{
			Role:        hn.Role,
			Subrole:     hn.Subrole,
			Title:       hn.Title,
			Description: hn.Desc,
			Help:        hn.Help,
			Identifier:  hn.Identifier,
			Value:       hn.Value,
			Enabled:     hn.Enabled,
			Focused:     hn.Focused,
			Selected:    hn.Selected,
			Expanded:    hn.Expanded,
			HasExpanded: hn.HasExpanded,
			Modal:       hn.Modal,
			Editable:    hn.Editable,
			Actions:     hn.Actions,
			URL:         hn.URL,
			Placeholder: hn.Placeholder,
			ValueMin:    hn.Min,
			ValueMax:    hn.Max,
			ValueNow:    hn.Now,
		}

		node := platform.RawNode{Depth: hn.Depth, AX: raw}
		if hn.X != nil && hn.Y != nil && hn.W != nil && hn.H != nil && *hn.W > 0 && *hn.H > 0 {
			bounds := &model.Bounds{X: *hn.X, Y: *hn.Y, W: *hn.W, H: *hn.H}
			node.Bounds = bounds
			if screen.W > 0 && screen.H > 0 &&
				(bounds.X+bounds.W <= 0 || bounds.Y+bounds.H <= 0 ||
					bounds.X >= screen.W || bounds.Y >= screen.H) {
				node.Offscreen = true
			}
		}

		path := append([]int(nil), hn.Path...)
		out.Nodes = append(out.Nodes, node)
		out.Refs = append(out.Refs, platform.NativeRef{
			Kind: platform.RefMac,
			Mac:  &platform.MacRef{PID: pid, Path: path},
		})
		out.Stats.Observe(hn.Depth, raw.Role)
	}
}
