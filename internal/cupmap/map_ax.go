package cupmap

import (
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// axSkippedActions are native actions excluded from mapping; they are
// present on nearly every element and carry no signal for an agent.
var axSkippedActions = map[string]bool{
	"AXScrollToVisible": true,
	"AXShowMenu":        true,
}

// axSelectableRoles get select (not click) from AXPress.
var axSelectableRoles = map[string]bool{
	model.RoleTab:      true,
	model.RoleOption:   true,
	model.RoleListItem: true,
	model.RoleTreeItem: true,
	model.RoleCell:     true,
	model.RoleRow:      true,
}

// axToggleRoles get toggle (not click) from AXPress.
var axToggleRoles = map[string]bool{
	model.RoleCheckbox:         true,
	model.RoleSwitch:           true,
	model.RoleRadio:            true,
	model.RoleMenuItemCheckbox: true,
	model.RoleMenuItemRadio:    true,
}

func mapAX(a *platform.AXRaw) *model.Node {
	role := ""
	if a.Subrole != "" {
		role = axSubroles[a.Subrole]
	}
	if role == "" {
		role = axRoles[a.Role]
	}
	if role == "" {
		role = model.RoleGeneric
	}

	n := &model.Node{
		Role:        role,
		Name:        a.Title,
		Description: a.Description,
		Value:       a.Value,
	}
	if n.Name == "" {
		n.Name = a.Description
		n.Description = ""
	}

	// States.
	if !a.Enabled {
		n.AddState(model.StateDisabled)
	}
	if a.Focused {
		n.AddState(model.StateFocused)
	}
	if a.Selected {
		n.AddState(model.StateSelected)
	}
	if a.HasExpanded {
		if a.Expanded {
			n.AddState(model.StateExpanded)
		} else {
			n.AddState(model.StateCollapsed)
		}
	}
	if a.Modal {
		n.AddState(model.StateModal)
	}
	if a.Required {
		n.AddState(model.StateRequired)
	}
	if a.Busy {
		n.AddState(model.StateBusy)
	}
	if textInputRoles[role] {
		if a.Editable {
			n.AddState(model.StateEditable)
		} else {
			n.AddState(model.StateReadonly)
		}
	}
	if axToggleRoles[role] && a.Value == "1" {
		n.AddState(model.StateChecked)
		n.Value = ""
	}

	// Actions.
	if !staticTextRoles[role] {
		for _, act := range a.Actions {
			if axSkippedActions[act] {
				continue
			}
			switch act {
			case "AXPress":
				switch {
				case axToggleRoles[role]:
					n.Actions = append(n.Actions, model.ActionToggle)
				case axSelectableRoles[role]:
					n.Actions = append(n.Actions, model.ActionSelect)
				default:
					n.Actions = append(n.Actions, model.ActionClick)
				}
			case "AXConfirm":
				n.Actions = append(n.Actions, model.ActionClick)
			case "AXCancel":
				n.Actions = append(n.Actions, model.ActionDismiss)
			case "AXPick":
				n.Actions = append(n.Actions, model.ActionSelect)
			case "AXIncrement":
				n.Actions = append(n.Actions, model.ActionIncrement)
			case "AXDecrement":
				n.Actions = append(n.Actions, model.ActionDecrement)
			}
		}
		if a.Role == "AXScrollArea" {
			n.Actions = append(n.Actions, model.ActionScroll)
		}
		if a.Editable && textInputRoles[role] {
			n.Actions = append(n.Actions, model.ActionType, model.ActionSetValue)
		}
		if a.HasExpanded {
			n.Actions = append(n.Actions, model.ActionExpand, model.ActionCollapse)
		}
		addFocusFallback(n, a.Enabled)
	}

	// Attributes.
	if role == model.RoleHeading {
		if lvl := atoiOr(a.Value, 0); lvl > 0 {
			ensureAttrs(n).Level = lvl
			n.Value = ""
		}
	}
	if role == model.RoleLink && a.URL != "" {
		ensureAttrs(n).URL = a.URL
	}
	if a.Placeholder != "" && textInputRoles[role] {
		ensureAttrs(n).Placeholder = a.Placeholder
	}
	if rangeRoles[role] && a.ValueNow != nil {
		attrs := ensureAttrs(n)
		attrs.ValueMin = a.ValueMin
		attrs.ValueMax = a.ValueMax
		attrs.ValueNow = a.ValueNow
	}

	n.Platform = map[string]any{"axRole": a.Role}
	if a.Subrole != "" {
		n.Platform["axSubrole"] = a.Subrole
	}
	if a.Identifier != "" {
		n.Platform["axIdentifier"] = a.Identifier
	}
	return n
}
