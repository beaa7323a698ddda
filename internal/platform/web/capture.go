package web

import (
	"context"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// axValue is the CDP AXValue wrapper: most fields arrive as
// {type, value}.
type axValue struct {
	Value any `json:"value"`
}

func (v *axValue) str() string {
	if v == nil {
		return ""
	}
	s, _ := v.Value.(string)
	return s
}

// axNode is one entry of Accessibility.getFullAXTree.
type axNode struct {
	NodeID           string   `json:"nodeId"`
	Ignored          bool     `json:"ignored"`
	Role             *axValue `json:"role"`
	Name             *axValue `json:"name"`
	Description      *axValue `json:"description"`
	Value            *axValue `json:"value"`
	ChildIDs         []string `json:"childIds"`
	BackendDOMNodeID int64    `json:"backendDOMNodeId"`
	Properties       []struct {
		Name  string   `json:"name"`
		Value *axValue `json:"value"`
	} `json:"properties"`
	BoundingBox *axBox `json:"boundingBox"`
	ParentID    string `json:"parentId"`
}

// axBox is the node bounding box in viewport pixels.
type axBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CaptureTree fetches each page's full accessibility tree in one round
// trip and flattens it depth-first. Pages are captured sequentially in
// input order; a page that fails contributes nothing.
func (a *Adapter) CaptureTree(ctx context.Context, windows []platform.WindowMetadata, maxDepth int) (*platform.CaptureResult, error) {
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	var tools []model.ToolDescriptor

	screen, _ := a.ScreenInfo(ctx)

	for _, win := range windows {
		wsURL, ok := win.Handle.(string)
		if !ok || wsURL == "" {
			continue
		}
		c, err := a.conn(ctx, wsURL)
		if err != nil {
			continue
		}
		if err := c.Call(ctx, "Accessibility.enable", nil, nil); err != nil {
			a.dropConn(wsURL)
			continue
		}
		_ = c.Call(ctx, "Runtime.enable", nil, nil)

		var reply struct {
			Nodes []axNode `json:"nodes"`
		}
		if err := c.Call(ctx, "Accessibility.getFullAXTree", nil, &reply); err != nil {
			continue
		}
		flattenAXTree(reply.Nodes, wsURL, maxDepth, screen, out)

		if t := a.fetchTools(ctx, c); len(t) > 0 {
			tools = append(tools, t...)
		}
	}

	a.setTools(tools)
	return out, nil
}

// flattenAXTree re-emits the id-linked node table as a depth-annotated
// pre-order stream rooted at the node with no parent.
func flattenAXTree(nodes []axNode, wsURL string, maxDepth int, screen platform.ScreenInfo, out *platform.CaptureResult) {
	byID := make(map[string]*axNode, len(nodes))
	hasParent := make(map[string]bool)
	for i := range nodes {
		byID[nodes[i].NodeID] = &nodes[i]
		for _, child := range nodes[i].ChildIDs {
			hasParent[child] = true
		}
	}

	var emit func(id string, depth int)
	emit = func(id string, depth int) {
		n := byID[id]
		if n == nil {
			return
		}
		if n.Ignored {
			// Ignored nodes are transparent: children splice into the
			// parent's position at the same depth.
			for _, child := range n.ChildIDs {
				emit(child, depth)
			}
			return
		}

		raw := &platform.CDPRaw{
			NodeID:      n.NodeID,
			Role:        n.Role.str(),
			Name:        n.Name.str(),
			Description: n.Description.str(),
			Value:       n.Value.str(),
			BackendID:   n.BackendDOMNodeID,
		}
		if len(n.Properties) > 0 {
			raw.Properties = make(map[string]any, len(n.Properties))
			for _, p := range n.Properties {
				if p.Value != nil {
					raw.Properties[p.Name] = p.Value.Value
				}
			}
		}

		rawNode := platform.RawNode{Depth: depth, CDP: raw}
		if b := n.BoundingBox; b != nil && b.Width > 0 && b.Height > 0 {
			bounds := &model.Bounds{
				X: int(b.X), Y: int(b.Y), W: int(b.Width), H: int(b.Height),
			}
			rawNode.Bounds = bounds
			if screen.W > 0 && screen.H > 0 && entirelyOffscreen(bounds, screen) {
				rawNode.Offscreen = true
			}
		}

		out.Nodes = append(out.Nodes, rawNode)
		out.Refs = append(out.Refs, platform.NativeRef{
			Kind: platform.RefCDP,
			CDP:  &platform.CDPRef{WSURL: wsURL, BackendID: n.BackendDOMNodeID},
		})
		out.Stats.Observe(depth, raw.Role)

		if maxDepth > 0 && depth+1 >= maxDepth {
			return
		}
		for _, child := range n.ChildIDs {
			emit(child, depth+1)
		}
	}

	for i := range nodes {
		if !hasParent[nodes[i].NodeID] && nodes[i].ParentID == "" {
			emit(nodes[i].NodeID, 0)
		}
	}
}

func entirelyOffscreen(b *model.Bounds, screen platform.ScreenInfo) bool {
	return b.X+b.W <= 0 || b.Y+b.H <= 0 || b.X >= screen.W || b.Y >= screen.H
}
