package search

import (
	"reflect"
	"testing"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Submit Form", []string{"submit", "form"}},
		{"Café-Menü", []string{"cafe", "menu"}},
		{"e-mail@example.com", []string{"e", "mail", "example", "com"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveRoles(t *testing.T) {
	got := ResolveRoles("search bar")
	wantSome := map[string]bool{
		model.RoleSearch: true, model.RoleSearchBox: true,
		model.RoleTextbox: true, model.RoleCombobox: true,
	}
	for _, r := range got {
		if !wantSome[r] {
			t.Errorf("unexpected role %q for 'search bar'", r)
		}
	}
	if len(got) != 4 {
		t.Errorf("ResolveRoles(search bar) = %v", got)
	}

	if got := ResolveRoles("btn"); len(got) != 1 || got[0] != model.RoleButton {
		t.Errorf("ResolveRoles(btn) = %v", got)
	}
	if got := ResolveRoles("button"); len(got) != 1 || got[0] != model.RoleButton {
		t.Errorf("canonical role must map to itself: %v", got)
	}
	// A canonical role name resolves through its own table entry.
	got = ResolveRoles("menuitem")
	found := false
	for _, r := range got {
		if r == model.RoleMenuItem {
			found = true
		}
	}
	if !found {
		t.Errorf("ResolveRoles(menuitem) = %v", got)
	}
}

func testTree() []*model.Node {
	return []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "Checkout",
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleTextbox, Name: "Search products",
				Actions: []string{model.ActionType, model.ActionSetValue}},
			{ID: "e2", Role: model.RoleButton, Name: "Submit",
				Actions: []string{model.ActionClick}},
			{ID: "e3", Role: model.RoleButton, Name: "Submit Form",
				Actions: []string{model.ActionClick}},
			{ID: "e4", Role: model.RoleCheckbox, Name: "Remember me",
				States:  []string{model.StateChecked},
				Actions: []string{model.ActionToggle}},
		},
	}}
}

func TestRun_RoleHardFilter(t *testing.T) {
	results := Run(testTree(), Request{Role: "button"})
	if len(results) == 0 {
		t.Fatal("no results")
	}
	for _, r := range results {
		if r.Node.Role != model.RoleButton {
			t.Errorf("non-button in role-filtered results: %s", r.Node.Role)
		}
	}
}

func TestRun_ExactBeatsSubstring(t *testing.T) {
	results := Run(testTree(), Request{Query: "Submit"})
	if len(results) < 2 {
		t.Fatalf("expected both submit buttons, got %d", len(results))
	}
	if results[0].Node.Name != "Submit" {
		t.Errorf("exact match not ranked first: %q", results[0].Node.Name)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %v vs %v", results[0].Score, results[1].Score)
	}
}

func TestRun_SynonymQuery(t *testing.T) {
	results := Run(testTree(), Request{Query: "search bar"})
	if len(results) == 0 {
		t.Fatal("no results for synonym query")
	}
	allowed := map[string]bool{
		model.RoleSearch: true, model.RoleSearchBox: true,
		model.RoleTextbox: true, model.RoleCombobox: true,
	}
	if !allowed[results[0].Node.Role] {
		t.Errorf("top result role = %s", results[0].Node.Role)
	}
}

func TestRun_StateHardFilter(t *testing.T) {
	results := Run(testTree(), Request{State: model.StateChecked, Role: "checkbox"})
	if len(results) != 1 || results[0].Node.ID != "e4" {
		t.Errorf("state filter results: %+v", results)
	}
	none := Run(testTree(), Request{State: model.StatePressed, Role: "checkbox"})
	if len(none) != 0 {
		t.Errorf("unmatched state returned results: %+v", none)
	}
}

func TestRun_ChildrenStripped(t *testing.T) {
	results := Run(testTree(), Request{Query: "checkout"})
	for _, r := range results {
		if r.Node.Children != nil {
			t.Errorf("children not stripped on %s", r.Node.ID)
		}
	}
}

func TestRun_LimitAndThreshold(t *testing.T) {
	results := Run(testTree(), Request{Query: "submit", Limit: 1})
	if len(results) != 1 {
		t.Errorf("limit not applied: %d results", len(results))
	}
	results = Run(testTree(), Request{Query: "zzzznothing"})
	if len(results) != 0 {
		t.Errorf("nonsense query matched: %+v", results)
	}
}

func TestRun_NoiseWordsDropped(t *testing.T) {
	withNoise := Run(testTree(), Request{Query: "the submit"})
	plain := Run(testTree(), Request{Query: "submit"})
	if len(withNoise) == 0 || len(plain) == 0 {
		t.Fatal("queries returned nothing")
	}
	if withNoise[0].Node.ID != plain[0].Node.ID {
		t.Errorf("noise words changed the top result: %s vs %s",
			withNoise[0].Node.ID, plain[0].Node.ID)
	}
}

func TestRun_AncestorContextBonus(t *testing.T) {
	tree := []*model.Node{{
		ID: "e0", Role: model.RoleWindow, Name: "Settings",
		Children: []*model.Node{
			{ID: "e1", Role: model.RoleGroup, Name: "Audio settings",
				Children: []*model.Node{
					{ID: "e2", Role: model.RoleButton, Name: "Reset", Actions: []string{model.ActionClick}},
				}},
			{ID: "e3", Role: model.RoleButton, Name: "Reset", Actions: []string{model.ActionClick}},
		},
	}}
	results := Run(tree, Request{Query: "audio reset"})
	if len(results) == 0 {
		t.Fatal("no results")
	}
	if results[0].Node.ID != "e2" {
		t.Errorf("ancestor context did not win: top = %s", results[0].Node.ID)
	}
}
