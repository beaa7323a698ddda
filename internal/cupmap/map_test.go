package cupmap

import (
	"testing"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

func TestMapUIA_ToggleStateSplit(t *testing.T) {
	tests := []struct {
		name        string
		controlType int
		toggleState int
		wantState   string
	}{
		{"checkbox_on_is_checked", 50002, uiaToggleOn, model.StateChecked},
		{"button_on_is_pressed", 50000, uiaToggleOn, model.StatePressed},
		{"checkbox_indeterminate_is_mixed", 50002, uiaToggleIndeterminate, model.StateMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
				ControlType: tt.controlType,
				Name:        "x",
				IsEnabled:   true,
				HasToggle:   true,
				ToggleState: tt.toggleState,
			}})
			if !n.HasState(tt.wantState) {
				t.Errorf("states = %v, want %s", n.States, tt.wantState)
			}
		})
	}
}

func TestMapUIA_NamedPaneBecomesRegion(t *testing.T) {
	named := MapNode(&platform.RawNode{UIA: &platform.UIARaw{ControlType: 50033, Name: "Sidebar", IsEnabled: true}})
	if named.Role != model.RoleRegion {
		t.Errorf("named pane role = %s, want region", named.Role)
	}
	anon := MapNode(&platform.RawNode{UIA: &platform.UIARaw{ControlType: 50033, IsEnabled: true}})
	if anon.Role != model.RoleGeneric {
		t.Errorf("anonymous pane role = %s, want generic", anon.Role)
	}
}

func TestMapUIA_MenuItemPatternRefinement(t *testing.T) {
	toggle := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType: 50011, Name: "Word Wrap", IsEnabled: true, HasToggle: true,
	}})
	if toggle.Role != model.RoleMenuItemCheckbox {
		t.Errorf("toggle menuitem role = %s, want menuitemcheckbox", toggle.Role)
	}
	sel := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType: 50011, Name: "Light Theme", IsEnabled: true, HasSelectionItem: true,
	}})
	if sel.Role != model.RoleMenuItemRadio {
		t.Errorf("selection menuitem role = %s, want menuitemradio", sel.Role)
	}
}

func TestMapUIA_Actions(t *testing.T) {
	n := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType: 50004, // Edit
		Name:        "Email",
		IsEnabled:   true,
		HasValue:    true,
		IsReadOnly:  false,
	}})
	if !n.HasAction(model.ActionType) || !n.HasAction(model.ActionSetValue) {
		t.Errorf("editable textbox actions = %v", n.Actions)
	}
	if !n.HasState(model.StateEditable) {
		t.Errorf("editable textbox states = %v", n.States)
	}
}

func TestMapUIA_FocusFallback(t *testing.T) {
	n := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType: 50007, // ListItem
		Name:        "row",
		IsEnabled:   true,
	}})
	if len(n.Actions) != 1 || n.Actions[0] != model.ActionFocus {
		t.Errorf("actions = %v, want [focus]", n.Actions)
	}
}

func TestMapUIA_StaticTextHasNoActions(t *testing.T) {
	n := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType: 50020, Name: "label", IsEnabled: true, HasInvoke: true,
	}})
	if len(n.Actions) != 0 {
		t.Errorf("text node actions = %v, want none", n.Actions)
	}
}

func TestMapGenericClickableNamedBecomesButton(t *testing.T) {
	n := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType: 50025, // Custom -> generic
		Name:        "Save",
		IsEnabled:   true,
		HasInvoke:   true,
	}})
	if n.Role != model.RoleButton {
		t.Errorf("role = %s, want button", n.Role)
	}
}

func TestMapUIA_AriaRefinement(t *testing.T) {
	n := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType: 50026, // Group
		Name:        "Results",
		IsEnabled:   true,
		AriaRole:    "navigation",
	}})
	if n.Role != model.RoleNavigation {
		t.Errorf("role = %s, want navigation", n.Role)
	}
}

func TestMapUIA_RangeAttributes(t *testing.T) {
	n := MapNode(&platform.RawNode{UIA: &platform.UIARaw{
		ControlType:   50015, // Slider
		Name:          "Volume",
		IsEnabled:     true,
		HasRangeValue: true,
		RangeMin:      0, RangeMax: 100, RangeValue: 40,
		Orientation: 1,
	}})
	a := n.Attributes
	if a == nil || a.ValueNow == nil || *a.ValueNow != 40 {
		t.Fatalf("attributes = %+v", a)
	}
	if a.Orientation != "horizontal" {
		t.Errorf("orientation = %q", a.Orientation)
	}
	if !n.HasAction(model.ActionIncrement) || !n.HasAction(model.ActionDecrement) {
		t.Errorf("actions = %v", n.Actions)
	}
}

func TestMapAX_SubroleOverride(t *testing.T) {
	n := MapNode(&platform.RawNode{AX: &platform.AXRaw{
		Role: "AXTextField", Subrole: "AXSearchField", Title: "Search", Enabled: true, Editable: true,
	}})
	if n.Role != model.RoleSearchBox {
		t.Errorf("role = %s, want searchbox", n.Role)
	}
}

func TestMapAX_PressByRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		want string
	}{
		{"button_press_clicks", "AXButton", model.ActionClick},
		{"checkbox_press_toggles", "AXCheckBox", model.ActionToggle},
		{"tab_press_selects", "AXTabGroup", model.ActionSelect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role := tt.role
			sub := ""
			if role == "AXTabGroup" {
				// A tab item, not the tab list itself.
				role, sub = "AXRadioButton", "AXTabButton"
			}
			n := MapNode(&platform.RawNode{AX: &platform.AXRaw{
				Role: role, Subrole: sub, Title: "x", Enabled: true,
				Actions: []string{"AXPress", "AXScrollToVisible"},
			}})
			if !n.HasAction(tt.want) {
				t.Errorf("actions = %v, want %s", n.Actions, tt.want)
			}
			if n.HasAction("AXScrollToVisible") {
				t.Errorf("noise action survived: %v", n.Actions)
			}
		})
	}
}

func TestMapAX_HeadingLevelFromValue(t *testing.T) {
	n := MapNode(&platform.RawNode{AX: &platform.AXRaw{
		Role: "AXHeading", Title: "Intro", Value: "2", Enabled: true,
	}})
	if n.Attributes == nil || n.Attributes.Level != 2 {
		t.Errorf("attributes = %+v, want level 2", n.Attributes)
	}
	if n.Value != "" {
		t.Errorf("value = %q, want cleared", n.Value)
	}
}

func TestMapATSPI_StateBitmask(t *testing.T) {
	var states uint64
	states |= 1 << platform.ATSPIStateEnabled
	states |= 1 << platform.ATSPIStateSensitive
	states |= 1 << platform.ATSPIStateChecked
	states |= 1 << platform.ATSPIStateFocused
	states |= 1 << platform.ATSPIStateVisible
	states |= 1 << platform.ATSPIStateShowing

	n := MapNode(&platform.RawNode{ATSPI: &platform.ATSPIRaw{
		RoleName: "check-box", Name: "Agree", States: states,
		Actions: []string{"click"},
	}})
	if n.Role != model.RoleCheckbox {
		t.Errorf("role = %s", n.Role)
	}
	if !n.HasState(model.StateChecked) || !n.HasState(model.StateFocused) {
		t.Errorf("states = %v", n.States)
	}
	if n.HasState(model.StateDisabled) || n.HasState(model.StateOffscreen) {
		t.Errorf("unexpected states: %v", n.States)
	}
}

func TestMapATSPI_VisibleNotShowingIsOffscreen(t *testing.T) {
	var states uint64
	states |= 1 << platform.ATSPIStateEnabled
	states |= 1 << platform.ATSPIStateSensitive
	states |= 1 << platform.ATSPIStateVisible

	n := MapNode(&platform.RawNode{ATSPI: &platform.ATSPIRaw{
		RoleName: "push-button", Name: "Below fold", States: states,
	}})
	if !n.HasState(model.StateOffscreen) {
		t.Errorf("states = %v, want offscreen", n.States)
	}
}

func TestMapATSPI_NamedPanelBecomesRegion(t *testing.T) {
	var states uint64 = 1<<platform.ATSPIStateEnabled | 1<<platform.ATSPIStateSensitive
	n := MapNode(&platform.RawNode{ATSPI: &platform.ATSPIRaw{
		RoleName: "panel", Name: "Filters", States: states,
	}})
	if n.Role != model.RoleRegion {
		t.Errorf("role = %s, want region", n.Role)
	}
}

func TestMapCDP_ClickRolesGetMouseVariants(t *testing.T) {
	n := MapNode(&platform.RawNode{CDP: &platform.CDPRaw{
		Role: "link", Name: "Docs",
		Properties: map[string]any{"url": "https://example.com/docs", "focusable": true},
	}})
	if n.Role != model.RoleLink {
		t.Fatalf("role = %s", n.Role)
	}
	for _, want := range []string{model.ActionClick, model.ActionRightClick, model.ActionDoubleClick} {
		if !n.HasAction(want) {
			t.Errorf("actions = %v, missing %s", n.Actions, want)
		}
	}
	if n.Attributes == nil || n.Attributes.URL == "" {
		t.Errorf("url attribute missing: %+v", n.Attributes)
	}
}

func TestMapCDP_UnknownRoleFallsBackToGeneric(t *testing.T) {
	n := MapNode(&platform.RawNode{CDP: &platform.CDPRaw{Role: "FancyWidget"}})
	if n.Role != model.RoleGeneric {
		t.Errorf("role = %s, want generic", n.Role)
	}
}

func TestMapNode_TruncatesLongText(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	n := MapNode(&platform.RawNode{CDP: &platform.CDPRaw{Role: "button", Name: string(long)}})
	if len(n.Name) != model.MaxTextLen {
		t.Errorf("name length = %d, want %d", len(n.Name), model.MaxTextLen)
	}
}

func TestMapNode_AllOutputsInVocabulary(t *testing.T) {
	samples := []platform.RawNode{
		{UIA: &platform.UIARaw{ControlType: 50000, Name: "b", IsEnabled: true, HasInvoke: true}},
		{AX: &platform.AXRaw{Role: "AXButton", Title: "b", Enabled: true, Actions: []string{"AXPress"}}},
		{ATSPI: &platform.ATSPIRaw{RoleName: "push-button", Name: "b", States: 1<<platform.ATSPIStateEnabled | 1<<platform.ATSPIStateSensitive, Actions: []string{"click"}}},
		{CDP: &platform.CDPRaw{Role: "button", Name: "b"}},
	}
	for _, raw := range samples {
		n := MapNode(&raw)
		if !model.ValidRole(n.Role) {
			t.Errorf("role %q not canonical", n.Role)
		}
		for _, s := range n.States {
			if !model.ValidState(s) {
				t.Errorf("state %q not canonical", s)
			}
		}
		for _, a := range n.Actions {
			if !model.ValidElementAction(a) {
				t.Errorf("action %q not canonical", a)
			}
		}
	}
}
