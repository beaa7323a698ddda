package cupmap

import (
	"fmt"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// RefMap maps element IDs to their native references for one snapshot.
type RefMap map[string]platform.NativeRef

// Build maps a capture's flat node stream into the canonical tree.
// IDs are assigned e0, e1, … in stream (pre-order) order; the ref map is
// populated in the same pass. Stats mirror the stream: total nodes, max
// emitted depth, and a multiset of native role names.
func Build(capture *platform.CaptureResult) ([]*model.Node, RefMap, *platform.CaptureStats) {
	refs := make(RefMap, len(capture.Nodes))
	stats := platform.NewCaptureStats()

	var roots []*model.Node
	var stack []*model.Node // stack[i] holds the most recent node at depth tracked alongside
	var depths []int

	for i := range capture.Nodes {
		raw := &capture.Nodes[i]
		n := MapNode(raw)
		n.ID = fmt.Sprintf("e%d", i)

		if i < len(capture.Refs) {
			refs[n.ID] = capture.Refs[i]
		}
		stats.Observe(raw.Depth, raw.NativeRole())

		// Pop until the stack top is a strict ancestor.
		for len(stack) > 0 && depths[len(depths)-1] >= raw.Depth {
			stack = stack[:len(stack)-1]
			depths = depths[:len(depths)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, n)
		depths = append(depths, raw.Depth)
	}

	return roots, refs, stats
}
