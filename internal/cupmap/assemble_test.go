package cupmap

import (
	"fmt"
	"testing"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

func uiaRaw(depth int, controlType int, name string) platform.RawNode {
	return platform.RawNode{
		Depth: depth,
		UIA:   &platform.UIARaw{ControlType: controlType, Name: name, IsEnabled: true},
	}
}

func TestBuild_TreeShape(t *testing.T) {
	capture := &platform.CaptureResult{
		Nodes: []platform.RawNode{
			uiaRaw(0, 50032, "Main"),   // window
			uiaRaw(1, 50026, "Left"),   // group
			uiaRaw(2, 50000, "OK"),     // button
			uiaRaw(2, 50000, "Cancel"), // button
			uiaRaw(1, 50026, "Right"),  // group
			uiaRaw(2, 50020, "hello"),  // text
		},
	}
	roots, _, _ := Build(capture)

	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	win := roots[0]
	if win.Role != model.RoleWindow || len(win.Children) != 2 {
		t.Fatalf("unexpected root: role=%s children=%d", win.Role, len(win.Children))
	}
	left := win.Children[0]
	if len(left.Children) != 2 || left.Children[0].Name != "OK" || left.Children[1].Name != "Cancel" {
		t.Errorf("sibling order not preserved: %+v", left.Children)
	}
	right := win.Children[1]
	if len(right.Children) != 1 || right.Children[0].Role != model.RoleText {
		t.Errorf("unexpected right subtree")
	}
}

func TestBuild_IDsContiguousPreOrder(t *testing.T) {
	capture := &platform.CaptureResult{
		Nodes: []platform.RawNode{
			uiaRaw(0, 50032, "w"),
			uiaRaw(1, 50026, "g"),
			uiaRaw(2, 50000, "b1"),
			uiaRaw(1, 50000, "b2"),
		},
	}
	roots, _, _ := Build(capture)

	var ids []string
	model.WalkNodes(roots, func(n *model.Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	for i, id := range ids {
		if want := fmt.Sprintf("e%d", i); id != want {
			t.Errorf("id[%d] = %s, want %s", i, id, want)
		}
	}
	if len(ids) != 4 {
		t.Errorf("expected 4 ids, got %d", len(ids))
	}
}

func TestBuild_RefMapFollowsStreamOrder(t *testing.T) {
	capture := &platform.CaptureResult{
		Nodes: []platform.RawNode{
			uiaRaw(0, 50032, "w"),
			uiaRaw(1, 50000, "b"),
		},
		Refs: []platform.NativeRef{
			{Kind: platform.RefWindows, Windows: &platform.WindowsRef{HWND: 7, NodeIndex: 0}},
			{Kind: platform.RefWindows, Windows: &platform.WindowsRef{HWND: 7, NodeIndex: 1}},
		},
	}
	_, refs, _ := Build(capture)

	ref, ok := refs["e1"]
	if !ok {
		t.Fatal("e1 missing from ref map")
	}
	if ref.Windows == nil || ref.Windows.NodeIndex != 1 {
		t.Errorf("e1 resolved to wrong ref: %+v", ref)
	}
}

func TestBuild_DepthGapStillAttaches(t *testing.T) {
	// A malformed stream that jumps two levels should still attach to
	// the nearest shallower ancestor.
	capture := &platform.CaptureResult{
		Nodes: []platform.RawNode{
			uiaRaw(0, 50032, "w"),
			uiaRaw(3, 50000, "deep"),
			uiaRaw(1, 50000, "shallow"),
		},
	}
	roots, _, _ := Build(capture)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if len(roots[0].Children) != 2 {
		t.Errorf("expected both children under the root, got %d", len(roots[0].Children))
	}
}

func TestBuild_Stats(t *testing.T) {
	capture := &platform.CaptureResult{
		Nodes: []platform.RawNode{
			uiaRaw(0, 50032, "w"),
			uiaRaw(1, 50000, "a"),
			uiaRaw(1, 50000, "b"),
		},
	}
	_, _, stats := Build(capture)
	if stats.Nodes != 3 {
		t.Errorf("stats.Nodes = %d, want 3", stats.Nodes)
	}
	if stats.MaxDepth != 1 {
		t.Errorf("stats.MaxDepth = %d, want 1", stats.MaxDepth)
	}
	if stats.Roles["Button"] != 2 {
		t.Errorf("stats.Roles[Button] = %d, want 2", stats.Roles["Button"])
	}
}
