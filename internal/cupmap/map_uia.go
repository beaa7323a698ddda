package cupmap

import (
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// UIA ToggleState values.
const (
	uiaToggleOff           = 0
	uiaToggleOn            = 1
	uiaToggleIndeterminate = 2
)

// UIA ExpandCollapseState values.
const (
	uiaCollapsed        = 0
	uiaExpanded         = 1
	uiaPartiallyExpanded = 2
	uiaLeafNode         = 3
)

func mapUIA(u *platform.UIARaw) *model.Node {
	role := uiaRoles[u.ControlType]
	if role == "" {
		role = model.RoleGeneric
	}

	aria := parseAriaProperties(u.AriaProperties)

	// Refinements.
	switch {
	case u.ControlType == uiaControlTypePane && u.Name != "":
		role = model.RoleRegion
	case u.ControlType == uiaControlTypeMenuItem && u.HasToggle:
		role = model.RoleMenuItemCheckbox
	case u.ControlType == uiaControlTypeMenuItem && u.HasSelectionItem:
		role = model.RoleMenuItemRadio
	}
	if refined := refineByARIA(role, u.AriaRole); refined != "" {
		role = refined
	}

	n := &model.Node{
		Role:        role,
		Name:        u.Name,
		Description: u.HelpText,
		Value:       u.Value,
	}

	// States.
	if !u.IsEnabled {
		n.AddState(model.StateDisabled)
	}
	if u.HasKeyboardFocus {
		n.AddState(model.StateFocused)
	}
	if u.IsOffscreen {
		n.AddState(model.StateOffscreen)
	}
	if u.IsModal {
		n.AddState(model.StateModal)
	}
	if u.IsRequiredForForm {
		n.AddState(model.StateRequired)
	}
	if u.IsSelected {
		n.AddState(model.StateSelected)
	}
	if u.HasToggle {
		switch u.ToggleState {
		case uiaToggleOn:
			if buttonLikeRoles[role] {
				n.AddState(model.StatePressed)
			} else {
				n.AddState(model.StateChecked)
			}
		case uiaToggleIndeterminate:
			n.AddState(model.StateMixed)
		}
	}
	if u.HasExpandCollapse {
		switch u.ExpandCollapseState {
		case uiaExpanded, uiaPartiallyExpanded:
			n.AddState(model.StateExpanded)
		case uiaCollapsed:
			n.AddState(model.StateCollapsed)
		}
	}
	if u.HasValue && textInputRoles[role] {
		if u.IsReadOnly {
			n.AddState(model.StateReadonly)
		} else {
			n.AddState(model.StateEditable)
		}
	}

	// Actions.
	if !staticTextRoles[role] {
		if u.HasInvoke {
			n.Actions = append(n.Actions, model.ActionClick)
		}
		if u.HasToggle {
			n.Actions = append(n.Actions, model.ActionToggle)
		}
		if u.HasExpandCollapse && u.ExpandCollapseState != uiaLeafNode {
			n.Actions = append(n.Actions, model.ActionExpand, model.ActionCollapse)
		}
		if u.HasValue && !u.IsReadOnly {
			if textInputRoles[role] {
				n.Actions = append(n.Actions, model.ActionType, model.ActionSetValue)
			} else {
				n.Actions = append(n.Actions, model.ActionSetValue)
			}
		}
		if u.HasSelectionItem {
			n.Actions = append(n.Actions, model.ActionSelect)
		}
		if u.HasScroll {
			n.Actions = append(n.Actions, model.ActionScroll)
		}
		if u.HasRangeValue {
			n.Actions = append(n.Actions, model.ActionIncrement, model.ActionDecrement)
		}
		addFocusFallback(n, u.IsEnabled)
	}

	// Attributes.
	if role == model.RoleHeading {
		if lvl := atoiOr(aria["level"], 0); lvl > 0 {
			ensureAttrs(n).Level = lvl
		}
	}
	if orientationRoles[role] {
		switch u.Orientation {
		case 1:
			ensureAttrs(n).Orientation = "horizontal"
		case 2:
			ensureAttrs(n).Orientation = "vertical"
		}
	}
	if u.HasRangeValue && rangeRoles[role] {
		a := ensureAttrs(n)
		mn, mx, now := u.RangeMin, u.RangeMax, u.RangeValue
		a.ValueMin, a.ValueMax, a.ValueNow = &mn, &mx, &now
	}
	if ph := aria["placeholder"]; ph != "" && textInputRoles[role] {
		ensureAttrs(n).Placeholder = ph
	}
	if ps := atoiOr(aria["posinset"], 0); ps > 0 {
		ensureAttrs(n).PosInSet = ps
	}
	if ss := atoiOr(aria["setsize"], 0); ss > 0 {
		ensureAttrs(n).SetSize = ss
	}
	if live := strings.ToLower(aria["live"]); live == "polite" || live == "assertive" || live == "off" {
		ensureAttrs(n).Live = live
	}

	n.Platform = map[string]any{"controlType": u.ControlType}
	if u.AutomationID != "" {
		n.Platform["automationId"] = u.AutomationID
	}
	if u.ClassName != "" {
		n.Platform["className"] = u.ClassName
	}
	return n
}

// refineByARIA applies the ARIA role override allowed on structural
// roles.
func refineByARIA(role, ariaRole string) string {
	switch role {
	case model.RoleGeneric, model.RoleGroup, model.RoleText, model.RoleRegion:
		return resolveARIA(ariaRole)
	}
	return ""
}
