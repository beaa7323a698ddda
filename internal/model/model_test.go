package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVocabularySizes(t *testing.T) {
	if len(States) != 16 {
		t.Errorf("state vocabulary size = %d, want 16", len(States))
	}
	if len(ElementActions) != 15 {
		t.Errorf("element action vocabulary size = %d, want 15", len(ElementActions))
	}
	seen := make(map[string]bool)
	for _, r := range Roles {
		if seen[r] {
			t.Errorf("duplicate role %q", r)
		}
		seen[r] = true
	}
}

func TestValidAction(t *testing.T) {
	if !ValidAction("click") || !ValidAction("press_keys") {
		t.Error("known actions rejected")
	}
	if ValidAction("fly") {
		t.Error("unknown action accepted")
	}
	if ValidElementAction("press_keys") {
		t.Error("press_keys is session-level, not an element action")
	}
}

func TestNodeJSON_OmitsClipped(t *testing.T) {
	n := &Node{
		ID: "e0", Role: RoleButton, Name: "x",
		Clipped: &Clipped{Below: 3},
	}
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "clip") || strings.Contains(string(data), "Below") {
		t.Errorf("clip counters leaked into JSON: %s", data)
	}
}

func TestEnvelopeJSON_ScaleOmittedWhenOne(t *testing.T) {
	env := &Envelope{Version: Version, Platform: PlatformWeb, Screen: Screen{W: 800, H: 600}}
	data, _ := json.Marshal(env)
	if strings.Contains(string(data), "scale") {
		t.Errorf("scale serialized at default: %s", data)
	}
	env.Screen.Scale = 2
	data, _ = json.Marshal(env)
	if !strings.Contains(string(data), `"scale":2`) {
		t.Errorf("non-unit scale missing: %s", data)
	}
}

func TestEnvelopeJSON_EmptyNameKept(t *testing.T) {
	n := &Node{ID: "e0", Role: RoleGeneric}
	data, _ := json.Marshal(n)
	if !strings.Contains(string(data), `"name":""`) {
		t.Errorf("empty name must still serialize: %s", data)
	}
}

func TestClone_Independence(t *testing.T) {
	min := 1.0
	n := &Node{
		ID: "e0", Role: RoleSlider, Name: "vol",
		States:     []string{StateFocused},
		Actions:    []string{ActionIncrement},
		Attributes: &Attributes{ValueMin: &min},
		Platform:   map[string]any{"atspiRole": "slider"},
		Children:   []*Node{{ID: "e1", Role: RoleText, Name: "40"}},
	}
	c := n.Clone()

	c.States[0] = "busy"
	c.Children[0].Name = "other"
	*c.Attributes.ValueMin = 9
	c.Platform["atspiRole"] = "changed"

	if n.States[0] != StateFocused || n.Children[0].Name != "40" {
		t.Error("clone shares slices with original")
	}
	if *n.Attributes.ValueMin != 1.0 {
		t.Error("clone shares attribute pointers")
	}
	if n.Platform["atspiRole"] != "slider" {
		t.Error("clone shares platform map")
	}
}

func TestFindByID(t *testing.T) {
	roots := []*Node{
		{ID: "e0", Role: RoleWindow, Children: []*Node{
			{ID: "e1", Role: RoleButton},
			{ID: "e2", Role: RoleGroup, Children: []*Node{{ID: "e3", Role: RoleText}}},
		}},
	}
	if n := FindByID(roots, "e3"); n == nil || n.Role != RoleText {
		t.Errorf("FindByID(e3) = %+v", n)
	}
	if n := FindByID(roots, "e99"); n != nil {
		t.Errorf("FindByID(e99) = %+v, want nil", n)
	}
}

func TestCountNodes(t *testing.T) {
	roots := []*Node{
		{ID: "e0", Children: []*Node{{ID: "e1"}, {ID: "e2", Children: []*Node{{ID: "e3"}}}}},
		{ID: "e4"},
	}
	if got := CountNodes(roots); got != 5 {
		t.Errorf("CountNodes = %d, want 5", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo wörld", 5); len([]rune(got)) != 5 {
		t.Errorf("rune truncation wrong: %q", got)
	}
	if got := Truncate("short", 200); got != "short" {
		t.Errorf("short string modified: %q", got)
	}
}

func TestHasMeaningfulAction(t *testing.T) {
	focusOnly := &Node{Actions: []string{ActionFocus}}
	if focusOnly.HasMeaningfulAction() {
		t.Error("focus alone is not meaningful")
	}
	clicker := &Node{Actions: []string{ActionFocus, ActionClick}}
	if !clicker.HasMeaningfulAction() {
		t.Error("click is meaningful")
	}
}
