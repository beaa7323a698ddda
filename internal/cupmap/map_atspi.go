package cupmap

import (
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

func mapATSPI(a *platform.ATSPIRaw) *model.Node {
	role := atspiRoles[a.RoleName]
	if role == "" {
		role = model.RoleGeneric
	}

	// Refinements.
	if a.RoleName == "panel" && a.Name != "" {
		role = model.RoleRegion
	}
	if refined := refineByARIA(role, a.Attributes["xml-roles"]); refined != "" {
		role = refined
	}

	n := &model.Node{
		Role:        role,
		Name:        a.Name,
		Description: a.Description,
		Value:       a.Text,
	}

	// States from the packed bitmask.
	if !a.HasState(platform.ATSPIStateEnabled) || !a.HasState(platform.ATSPIStateSensitive) {
		n.AddState(model.StateDisabled)
	}
	if a.HasState(platform.ATSPIStateChecked) {
		n.AddState(model.StateChecked)
	}
	if a.HasState(platform.ATSPIStateIndeterminate) {
		n.AddState(model.StateMixed)
	}
	if a.HasState(platform.ATSPIStatePressed) {
		n.AddState(model.StatePressed)
	}
	if a.HasState(platform.ATSPIStateFocused) {
		n.AddState(model.StateFocused)
	}
	if a.HasState(platform.ATSPIStateExpandable) {
		if a.HasState(platform.ATSPIStateExpanded) {
			n.AddState(model.StateExpanded)
		} else {
			n.AddState(model.StateCollapsed)
		}
	}
	if a.HasState(platform.ATSPIStateSelected) {
		n.AddState(model.StateSelected)
	}
	if a.HasState(platform.ATSPIStateModal) {
		n.AddState(model.StateModal)
	}
	if a.HasState(platform.ATSPIStateRequired) {
		n.AddState(model.StateRequired)
	}
	if a.HasState(platform.ATSPIStateBusy) {
		n.AddState(model.StateBusy)
	}
	if a.HasState(platform.ATSPIStateMultiselectable) {
		n.AddState(model.StateMultiselectable)
	}
	// Visible but not showing means scrolled out of its viewport.
	if a.HasState(platform.ATSPIStateVisible) && !a.HasState(platform.ATSPIStateShowing) {
		n.AddState(model.StateOffscreen)
	}
	if textInputRoles[role] {
		if a.HasState(platform.ATSPIStateEditable) && !a.HasState(platform.ATSPIStateReadOnly) {
			n.AddState(model.StateEditable)
		} else {
			n.AddState(model.StateReadonly)
		}
	}

	// Actions: the Action interface list plus state-derived ones.
	if !staticTextRoles[role] && a.RoleName != "label" && a.RoleName != "static" {
		for _, act := range a.Actions {
			switch strings.ToLower(act) {
			case "click", "press", "activate":
				n.Actions = append(n.Actions, model.ActionClick)
			case "toggle":
				n.Actions = append(n.Actions, model.ActionToggle)
			case "expand or contract", "expand":
				n.Actions = append(n.Actions, model.ActionExpand, model.ActionCollapse)
			}
		}
		if a.HasState(platform.ATSPIStateExpandable) && !n.HasAction(model.ActionExpand) {
			n.Actions = append(n.Actions, model.ActionExpand, model.ActionCollapse)
		}
		if a.HasState(platform.ATSPIStateSelectable) {
			n.Actions = append(n.Actions, model.ActionSelect)
		}
		if a.HasState(platform.ATSPIStateEditable) && !a.HasState(platform.ATSPIStateReadOnly) && textInputRoles[role] {
			n.Actions = append(n.Actions, model.ActionType, model.ActionSetValue)
		}
		if a.ValueNow != nil {
			n.Actions = append(n.Actions, model.ActionIncrement, model.ActionDecrement, model.ActionSetValue)
		}
		if a.RoleName == "scroll-pane" {
			n.Actions = append(n.Actions, model.ActionScroll)
		}
		addFocusFallback(n, a.HasState(platform.ATSPIStateFocusable))
	}

	// Attributes.
	if role == model.RoleHeading {
		if lvl := atoiOr(a.Attributes["level"], 0); lvl > 0 {
			ensureAttrs(n).Level = lvl
		}
	}
	if role == model.RoleLink {
		if uri := a.Attributes["uri"]; uri != "" {
			ensureAttrs(n).URL = uri
		}
	}
	if ph := a.Attributes["placeholder-text"]; ph != "" && textInputRoles[role] {
		ensureAttrs(n).Placeholder = ph
	}
	if rangeRoles[role] && a.ValueNow != nil {
		attrs := ensureAttrs(n)
		attrs.ValueMin = a.ValueMin
		attrs.ValueMax = a.ValueMax
		attrs.ValueNow = a.ValueNow
	}
	if orientationRoles[role] {
		switch a.Attributes["orientation"] {
		case "horizontal":
			ensureAttrs(n).Orientation = "horizontal"
		case "vertical":
			ensureAttrs(n).Orientation = "vertical"
		}
	}
	if live := a.Attributes["container-live"]; live == "polite" || live == "assertive" || live == "off" {
		ensureAttrs(n).Live = live
	}

	n.Platform = map[string]any{"atspiRole": a.RoleName}
	return n
}
