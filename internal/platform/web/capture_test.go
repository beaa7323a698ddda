package web

import (
	"testing"

	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

func av(v any) *axValue { return &axValue{Value: v} }

func TestFlattenAXTree_DepthAndOrder(t *testing.T) {
	nodes := []axNode{
		{NodeID: "1", Role: av("RootWebArea"), Name: av("Page"), ChildIDs: []string{"2", "4"}, BackendDOMNodeID: 10},
		{NodeID: "2", Role: av("GenericContainer"), ChildIDs: []string{"3"}, BackendDOMNodeID: 11, ParentID: "1"},
		{NodeID: "3", Role: av("button"), Name: av("Go"), BackendDOMNodeID: 12, ParentID: "2"},
		{NodeID: "4", Role: av("StaticText"), Name: av("done"), BackendDOMNodeID: 13, ParentID: "1"},
	}
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	flattenAXTree(nodes, "ws://x", 0, platform.ScreenInfo{W: 1280, H: 720}, out)

	if len(out.Nodes) != 4 {
		t.Fatalf("emitted %d nodes", len(out.Nodes))
	}
	wantDepths := []int{0, 1, 2, 1}
	wantRoles := []string{"RootWebArea", "GenericContainer", "button", "StaticText"}
	for i := range out.Nodes {
		if out.Nodes[i].Depth != wantDepths[i] {
			t.Errorf("node %d depth = %d, want %d", i, out.Nodes[i].Depth, wantDepths[i])
		}
		if out.Nodes[i].CDP.Role != wantRoles[i] {
			t.Errorf("node %d role = %s, want %s", i, out.Nodes[i].CDP.Role, wantRoles[i])
		}
	}
	if out.Refs[2].CDP.BackendID != 12 {
		t.Errorf("ref backend id = %d", out.Refs[2].CDP.BackendID)
	}
}

func TestFlattenAXTree_IgnoredNodesSplice(t *testing.T) {
	nodes := []axNode{
		{NodeID: "1", Role: av("RootWebArea"), ChildIDs: []string{"2"}},
		{NodeID: "2", Ignored: true, ChildIDs: []string{"3"}, ParentID: "1"},
		{NodeID: "3", Role: av("button"), Name: av("Go"), ParentID: "2"},
	}
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	flattenAXTree(nodes, "ws://x", 0, platform.ScreenInfo{}, out)

	if len(out.Nodes) != 2 {
		t.Fatalf("emitted %d nodes, want ignored node spliced out", len(out.Nodes))
	}
	if out.Nodes[1].CDP.Role != "button" || out.Nodes[1].Depth != 1 {
		t.Errorf("spliced child wrong: %+v", out.Nodes[1])
	}
}

func TestFlattenAXTree_ZeroSizeBoundsDropped(t *testing.T) {
	nodes := []axNode{
		{NodeID: "1", Role: av("button"), Name: av("x"),
			BoundingBox: &axBox{X: 10, Y: 10, Width: 0, Height: 30}},
	}
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	flattenAXTree(nodes, "ws://x", 0, platform.ScreenInfo{W: 100, H: 100}, out)
	if out.Nodes[0].Bounds != nil {
		t.Errorf("zero-width bounds kept: %+v", out.Nodes[0].Bounds)
	}
}

func TestFlattenAXTree_OffscreenMarked(t *testing.T) {
	nodes := []axNode{
		{NodeID: "1", Role: av("button"), Name: av("x"),
			BoundingBox: &axBox{X: 2000, Y: 10, Width: 50, Height: 30}},
	}
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	flattenAXTree(nodes, "ws://x", 0, platform.ScreenInfo{W: 1280, H: 720}, out)
	if !out.Nodes[0].Offscreen {
		t.Error("fully offscreen node not marked")
	}
}

func TestFlattenAXTree_MaxDepth(t *testing.T) {
	nodes := []axNode{
		{NodeID: "1", Role: av("RootWebArea"), ChildIDs: []string{"2"}},
		{NodeID: "2", Role: av("generic"), ChildIDs: []string{"3"}, ParentID: "1"},
		{NodeID: "3", Role: av("button"), ParentID: "2"},
	}
	out := &platform.CaptureResult{Stats: platform.NewCaptureStats()}
	flattenAXTree(nodes, "ws://x", 2, platform.ScreenInfo{}, out)
	if len(out.Nodes) != 2 {
		t.Errorf("maxDepth 2 emitted %d nodes, want 2", len(out.Nodes))
	}
}
