package linuxatspi

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// rolesWithValue are queried on the Value interface during the walk.
var rolesWithValue = map[string]bool{
	"slider": true, "spin-button": true, "progress-bar": true, "scroll-bar": true,
}

// rolesWithText are queried on the Text interface during the walk.
var rolesWithText = map[string]bool{
	"text": true, "entry": true, "password-text": true, "terminal": true,
}

// maxTextChars bounds how much text content is pulled per node.
const maxTextChars = 1000

// CaptureTree walks each window subtree and emits the flat pre-order
// stream. Windows are walked in parallel on independent gdbus
// invocations; results are merged in input-window order so node IDs stay
// deterministic. A window that fails to walk contributes nothing.
func (a *Adapter) CaptureTree(ctx context.Context, windows []platform.WindowMetadata, maxDepth int) (*platform.CaptureResult, error) {
	partials := make([]*platform.CaptureResult, len(windows))

	var g errgroup.Group
	for i, win := range windows {
		target, ok := win.Handle.(obj)
		if !ok {
			continue
		}
		g.Go(func() error {
			part := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
			a.walk(ctx, target, 0, maxDepth, part)
			partials[i] = part
			return nil
		})
	}
	g.Wait()

	screen, _ := a.ScreenInfo(ctx)
	merged := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	for _, part := range partials {
		if part == nil {
			continue
		}
		for _, n := range part.Nodes {
			if b := n.Bounds; b != nil && screen.W > 0 && screen.H > 0 &&
				(b.X+b.W <= 0 || b.Y+b.H <= 0 || b.X >= screen.W || b.Y >= screen.H) {
				n.Offscreen = true
			}
			merged.Nodes = append(merged.Nodes, n)
		}
		merged.Refs = append(merged.Refs, part.Refs...)
		merged.Stats.Merge(part.Stats)
	}
	return merged, nil
}

func (a *Adapter) walk(ctx context.Context, target obj, depth, maxDepth int, out *platform.CaptureResult) {
	if ctx.Err() != nil {
		return
	}
	role, err := a.roleName(ctx, target)
	if err != nil {
		// The object died mid-walk; skip it and its subtree.
		return
	}

	raw := &platform.ATSPIRaw{
		RoleName:    role,
		Name:        a.stringProperty(ctx, target, ifaceAccessible, "Name"),
		Description: a.stringProperty(ctx, target, ifaceAccessible, "Description"),
		States:      a.stateMask(ctx, target),
		Actions:     a.actionNames(ctx, target),
		Attributes:  a.attributes(ctx, target),
	}

	if rolesWithValue[role] {
		a.fetchValue(ctx, target, raw)
	}
	if rolesWithText[role] {
		raw.Text = a.fetchText(ctx, target)
	}

	node := platform.RawNode{Depth: depth, ATSPI: raw}
	if x, y, w, h, err := a.extents(ctx, target); err == nil && w > 0 && h > 0 {
		node.Bounds = &model.Bounds{X: x, Y: y, W: w, H: h}
	}
	out.Nodes = append(out.Nodes, node)
	out.Refs = append(out.Refs, target.ref())
	out.Stats.Observe(depth, role)

	if maxDepth > 0 && depth+1 >= maxDepth {
		return
	}
	kids, err := a.children(ctx, target)
	if err != nil {
		return
	}
	for _, kid := range kids {
		a.walk(ctx, kid, depth+1, maxDepth, out)
	}
}

func (a *Adapter) fetchValue(ctx context.Context, target obj, raw *platform.ATSPIRaw) {
	if v, err := a.property(ctx, target, ifaceValue, "MinimumValue"); err == nil {
		f := asFloat(v)
		raw.ValueMin = &f
	}
	if v, err := a.property(ctx, target, ifaceValue, "MaximumValue"); err == nil {
		f := asFloat(v)
		raw.ValueMax = &f
	}
	if v, err := a.property(ctx, target, ifaceValue, "CurrentValue"); err == nil {
		f := asFloat(v)
		raw.ValueNow = &f
	}
}

func (a *Adapter) fetchText(ctx context.Context, target obj) string {
	v, err := a.property(ctx, target, ifaceText, "CharacterCount")
	if err != nil {
		return ""
	}
	count := asInt(v)
	if count <= 0 {
		return ""
	}
	if count > maxTextChars {
		count = maxTextChars
	}
	t, err := a.callTuple(ctx, target, ifaceText+".GetText", "0", itoa(count))
	if err != nil {
		return ""
	}
	return asString(t)
}
