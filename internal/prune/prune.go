// Package prune implements the tree transformation pipeline: detail
// levels, skip and hoist rules, viewport clipping of scrollable
// containers, and single-child structural collapse.
package prune

import (
	"github.com/computeruseprotocol/go-sdk/internal/model"
)

// skipRoles are dropped outright together with their subtrees.
var skipRoles = map[string]bool{
	model.RoleScrollBar: true,
	model.RoleSeparator: true,
	model.RoleTitleBar:  true,
	model.RoleTooltip:   true,
	model.RoleStatus:    true,
}

// collapseRoles are structural wrappers replaced by their only child
// when they carry no name and no meaningful action.
var collapseRoles = map[string]bool{
	model.RoleRegion:        true,
	model.RoleDocument:      true,
	model.RoleMain:          true,
	model.RoleComplementary: true,
	model.RoleNavigation:    true,
	model.RoleSearch:        true,
	model.RoleBanner:        true,
	model.RoleContentInfo:   true,
	model.RoleForm:          true,
}

// Apply transforms a mapped tree for the requested detail level. The
// input forest is never mutated; the result shares no nodes with it.
// screen is the root viewport used for clipping at the standard level.
func Apply(roots []*model.Node, detail string, screen model.Bounds) []*model.Node {
	switch detail {
	case model.DetailFull:
		out := make([]*model.Node, len(roots))
		for i, r := range roots {
			out[i] = r.Clone()
		}
		return out
	case model.DetailMinimal:
		return minimal(roots)
	default:
		var out []*model.Node
		for _, r := range roots {
			out = append(out, standard(r.Clone(), screen, "", 1)...)
		}
		return out
	}
}

// minimal keeps only nodes with a meaningful action or a kept
// descendant.
func minimal(roots []*model.Node) []*model.Node {
	var out []*model.Node
	for _, r := range roots {
		kept := minimal(r.Children)
		if r.HasMeaningfulAction() || len(kept) > 0 {
			c := cloneSansChildren(r)
			c.Children = kept
			out = append(out, c)
		}
	}
	return out
}

func cloneSansChildren(n *model.Node) *model.Node {
	shallow := *n
	shallow.Children = nil
	return shallow.Clone()
}

// standard applies skip, viewport clipping, hoist, and single-child
// collapse in one recursive pass. parentName and parentChildCount
// describe the node's parent as originally captured: the sole-child
// text rule intentionally uses the parent's pre-drop child count.
// The returned slice replaces the node in its parent's child list.
func standard(n *model.Node, viewport model.Bounds, parentName string, parentChildCount int) []*model.Node {
	if skipNode(n, parentName, parentChildCount) {
		return nil
	}

	childViewport := viewport
	clipping := n.HasAction(model.ActionScroll) && n.Bounds != nil
	if clipping {
		childViewport = intersect(*n.Bounds, viewport)
	}

	originalCount := len(n.Children)
	var kept []*model.Node
	for _, ch := range n.Children {
		if clipping && ch.Bounds != nil && outside(*ch.Bounds, childViewport) {
			clip := ensureClipped(n)
			count := 1 + model.CountNodes(ch.Children)
			switch direction(*ch.Bounds, childViewport) {
			case "up":
				clip.Above += count
			case "down":
				clip.Below += count
			case "left":
				clip.Left += count
			default:
				clip.Right += count
			}
			continue
		}
		kept = append(kept, standard(ch, childViewport, n.Name, originalCount)...)
	}
	n.Children = kept

	// Hoist: semantically empty containers dissolve into their children.
	switch {
	case n.Role == model.RoleGeneric && n.Name == "":
		return kept
	case n.Role == model.RoleRegion && n.Name == "":
		return kept
	case n.Role == model.RoleGroup && n.Name == "" && !n.HasMeaningfulAction():
		return kept
	}

	// Single-child structural collapse.
	if len(kept) == 1 && collapseRoles[n.Role] && n.Name == "" && !n.HasMeaningfulAction() {
		return kept
	}

	return []*model.Node{n}
}

// skipNode applies the removal rules; children of a skipped node are
// dropped, not hoisted.
func skipNode(n *model.Node, parentName string, parentChildCount int) bool {
	if skipRoles[n.Role] {
		return true
	}
	if n.Bounds != nil && (n.Bounds.W == 0 || n.Bounds.H == 0) {
		return true
	}
	if n.Role == model.RoleImg && n.Name == "" {
		return true
	}
	if n.Role == model.RoleText && n.Name == "" {
		return true
	}
	if n.Role == model.RoleText && parentName != "" && parentChildCount == 1 {
		return true
	}
	if n.HasState(model.StateOffscreen) && !n.HasMeaningfulAction() {
		return true
	}
	return false
}

func ensureClipped(n *model.Node) *model.Clipped {
	if n.Clipped == nil {
		n.Clipped = &model.Clipped{}
	}
	return n.Clipped
}

func intersect(a, b model.Bounds) model.Bounds {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.W, b.X+b.W)
	y2 := min(a.Y+a.H, b.Y+b.H)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return model.Bounds{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// outside reports whether a lies entirely outside the viewport.
func outside(a, viewport model.Bounds) bool {
	return a.X+a.W <= viewport.X ||
		a.X >= viewport.X+viewport.W ||
		a.Y+a.H <= viewport.Y ||
		a.Y >= viewport.Y+viewport.H
}

// direction picks the scroll direction that would reveal a clipped
// child. When both axes qualify the vertical direction wins.
func direction(a, viewport model.Bounds) string {
	switch {
	case a.Y+a.H <= viewport.Y:
		return "up"
	case a.Y >= viewport.Y+viewport.H:
		return "down"
	case a.X+a.W <= viewport.X:
		return "left"
	default:
		return "right"
	}
}
