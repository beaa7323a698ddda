package prune

import (
	"reflect"
	"testing"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

var screen = model.Bounds{W: 1920, H: 1080}

func TestApply_HoistUnnamedGeneric(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "Win",
		Children: []*model.Node{{
			ID: "e1", Role: model.RoleGeneric, Name: "",
			Children: []*model.Node{{
				ID: "e2", Role: model.RoleButton, Name: "Click",
				Actions: []string{model.ActionClick},
			}},
		}},
	}}
	out := Apply(roots, model.DetailStandard, screen)

	if len(out) != 1 || out[0].Name != "Win" {
		t.Fatalf("unexpected roots: %+v", out)
	}
	kids := out[0].Children
	if len(kids) != 1 || kids[0].Role != model.RoleButton || kids[0].Name != "Click" {
		t.Errorf("expected button hoisted to direct child, got %+v", kids)
	}
}

func TestApply_SkipDecorativeImage(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "W",
		Children: []*model.Node{{ID: "e1", Role: model.RoleImg, Name: ""}},
	}}
	out := Apply(roots, model.DetailStandard, screen)
	if len(out[0].Children) != 0 {
		t.Errorf("decorative image survived: %+v", out[0].Children)
	}
}

func TestApply_ViewportClipping(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleList, Name: "items",
		Bounds:  &model.Bounds{X: 0, Y: 0, W: 200, H: 100},
		Actions: []string{model.ActionScroll},
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleListItem, Name: "A",
				Bounds: &model.Bounds{X: 0, Y: 0, W: 200, H: 30}, Actions: []string{model.ActionSelect}},
			{ID: "e2", Role: model.RoleListItem, Name: "B",
				Bounds: &model.Bounds{X: 0, Y: 200, W: 200, H: 30}, Actions: []string{model.ActionSelect}},
		},
	}}
	out := Apply(roots, model.DetailStandard, screen)

	parent := out[0]
	if len(parent.Children) != 1 || parent.Children[0].Name != "A" {
		t.Fatalf("expected only child A, got %+v", parent.Children)
	}
	if parent.Clipped == nil || parent.Clipped.Below != 1 {
		t.Errorf("clipped = %+v, want below=1", parent.Clipped)
	}
}

func TestApply_ClipCountsDescendants(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleList, Name: "items",
		Bounds:  &model.Bounds{X: 0, Y: 0, W: 200, H: 100},
		Actions: []string{model.ActionScroll},
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleGroup, Name: "above",
				Bounds: &model.Bounds{X: 0, Y: -100, W: 200, H: 30},
				Children: []*model.Node{
					{ID: "e2", Role: model.RoleButton, Name: "x", Actions: []string{model.ActionClick}},
					{ID: "e3", Role: model.RoleButton, Name: "y", Actions: []string{model.ActionClick}},
				}},
		},
	}}
	out := Apply(roots, model.DetailStandard, screen)
	if out[0].Clipped == nil || out[0].Clipped.Above != 3 {
		t.Errorf("clipped = %+v, want above=3", out[0].Clipped)
	}
}

func TestApply_ClipVerticalWinsOnCorner(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleList, Name: "grid",
		Bounds:  &model.Bounds{X: 0, Y: 0, W: 200, H: 100},
		Actions: []string{model.ActionScroll},
		Children: []*model.Node{
			// Outside both below and to the right.
			{ID: "e1", Role: model.RoleCell, Name: "corner",
				Bounds: &model.Bounds{X: 300, Y: 300, W: 50, H: 50}},
		},
	}}
	out := Apply(roots, model.DetailStandard, screen)
	c := out[0].Clipped
	if c == nil || c.Below != 1 || c.Right != 0 {
		t.Errorf("clipped = %+v, want vertical tie-break (below=1)", c)
	}
}

func TestApply_FullIsDeepCopy(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "W",
		States: []string{model.StateFocused},
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleButton, Name: "b", Actions: []string{model.ActionClick}},
		},
	}}
	out := Apply(roots, model.DetailFull, screen)

	if !reflect.DeepEqual(roots, out) {
		t.Fatal("full detail must be deep-equal to input")
	}
	if roots[0] == out[0] || roots[0].Children[0] == out[0].Children[0] {
		t.Error("full detail must not share node identity")
	}
	out[0].Children[0].Name = "mutated"
	if roots[0].Children[0].Name == "mutated" {
		t.Error("mutation leaked into the source tree")
	}
}

func TestApply_MinimalKeepsInteractablesOnly(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "W",
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleText, Name: "hello"},
			{ID: "e2", Role: model.RoleButton, Name: "Go", Actions: []string{model.ActionClick}},
			{ID: "e3", Role: model.RoleGroup, Name: "g", Actions: []string{model.ActionFocus}},
		},
	}}
	out := Apply(roots, model.DetailMinimal, screen)

	if len(out) != 1 {
		t.Fatalf("window dropped despite kept descendant")
	}
	kids := out[0].Children
	if len(kids) != 1 || kids[0].ID != "e2" {
		t.Errorf("expected only the button kept, got %+v", kids)
	}
}

func TestApply_OrderPreserved(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "W",
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleButton, Name: "first", Actions: []string{model.ActionClick}},
			{ID: "e2", Role: model.RoleImg, Name: ""},
			{ID: "e3", Role: model.RoleButton, Name: "second", Actions: []string{model.ActionClick}},
		},
	}}
	out := Apply(roots, model.DetailStandard, screen)
	kids := out[0].Children
	if len(kids) != 2 || kids[0].Name != "first" || kids[1].Name != "second" {
		t.Errorf("sibling order changed: %+v", kids)
	}
}

func TestApply_SoleChildTextSkipUsesOriginalCount(t *testing.T) {
	// The text is the sole child of a named parent: skipped.
	sole := []*model.Node{{
		ID: "e0", Role: model.RoleButton, Name: "Save",
		Actions:  []string{model.ActionClick},
		Children: []*model.Node{{ID: "e1", Role: model.RoleText, Name: "Save"}},
	}}
	out := Apply(sole, model.DetailStandard, screen)
	if len(out[0].Children) != 0 {
		t.Errorf("sole text child survived: %+v", out[0].Children)
	}

	// Two children originally; even if the sibling is dropped first, the
	// original count keeps the text.
	pair := []*model.Node{{
		ID: "e0", Role: model.RoleButton, Name: "Save",
		Actions: []string{model.ActionClick},
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleImg, Name: ""},
			{ID: "e2", Role: model.RoleText, Name: "Save"},
		},
	}}
	out = Apply(pair, model.DetailStandard, screen)
	if len(out[0].Children) != 1 || out[0].Children[0].Role != model.RoleText {
		t.Errorf("text with original sibling dropped: %+v", out[0].Children)
	}
}

func TestApply_SingleChildCollapse(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "W",
		Children: []*model.Node{{
			ID: "e1", Role: model.RoleDocument, Name: "",
			Children: []*model.Node{{
				ID: "e2", Role: model.RoleButton, Name: "Only",
				Actions: []string{model.ActionClick},
			}},
		}},
	}}
	out := Apply(roots, model.DetailStandard, screen)
	kids := out[0].Children
	if len(kids) != 1 || kids[0].ID != "e2" {
		t.Errorf("document wrapper not collapsed: %+v", kids)
	}
}

func TestApply_NamedDocumentNotCollapsed(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleDocument, Name: "Report",
		Children: []*model.Node{{
			ID: "e1", Role: model.RoleButton, Name: "Only", Actions: []string{model.ActionClick},
		}},
	}}
	out := Apply(roots, model.DetailStandard, screen)
	if len(out) != 1 || out[0].ID != "e0" {
		t.Errorf("named document collapsed: %+v", out)
	}
}

func TestApply_OffscreenWithoutActionsSkipped(t *testing.T) {
	roots := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "W",
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleButton, Name: "hidden", States: []string{model.StateOffscreen}, Actions: []string{model.ActionFocus}},
			{ID: "e2", Role: model.RoleButton, Name: "clickable", States: []string{model.StateOffscreen}, Actions: []string{model.ActionClick}},
		},
	}}
	out := Apply(roots, model.DetailStandard, screen)
	kids := out[0].Children
	if len(kids) != 1 || kids[0].ID != "e2" {
		t.Errorf("offscreen handling wrong: %+v", kids)
	}
}

func TestApply_SkipRoles(t *testing.T) {
	for _, role := range []string{model.RoleScrollBar, model.RoleSeparator, model.RoleTitleBar, model.RoleTooltip, model.RoleStatus} {
		roots := []*model.Node{{
			ID: "e0", Role: model.RoleWindow, Name: "W",
			Children: []*model.Node{{ID: "e1", Role: role, Name: "x"}},
		}}
		out := Apply(roots, model.DetailStandard, screen)
		if len(out[0].Children) != 0 {
			t.Errorf("role %s survived standard pruning", role)
		}
	}
}
