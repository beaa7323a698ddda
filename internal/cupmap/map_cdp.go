package cupmap

import (
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

func mapCDP(c *platform.CDPRaw) *model.Node {
	role := cdpRoles[c.Role]
	if role == "" {
		if model.ValidRole(c.Role) {
			role = c.Role
		} else {
			role = model.RoleGeneric
		}
	}

	n := &model.Node{
		Role:        role,
		Name:        c.Name,
		Description: c.Description,
		Value:       c.Value,
	}

	// States from AX properties.
	if c.BoolProp("disabled") {
		n.AddState(model.StateDisabled)
	}
	if c.BoolProp("focused") {
		n.AddState(model.StateFocused)
	}
	switch c.StringProp("checked") {
	case "true":
		n.AddState(model.StateChecked)
	case "mixed":
		n.AddState(model.StateMixed)
	}
	if c.BoolProp("checked") {
		if buttonLikeRoles[role] {
			n.AddState(model.StatePressed)
		} else {
			n.AddState(model.StateChecked)
		}
	}
	switch c.StringProp("pressed") {
	case "true":
		n.AddState(model.StatePressed)
	case "mixed":
		n.AddState(model.StateMixed)
	}
	if v, ok := c.Prop("expanded").(bool); ok {
		if v {
			n.AddState(model.StateExpanded)
		} else {
			n.AddState(model.StateCollapsed)
		}
	}
	if c.BoolProp("selected") {
		n.AddState(model.StateSelected)
	}
	if c.BoolProp("modal") {
		n.AddState(model.StateModal)
	}
	if c.BoolProp("required") {
		n.AddState(model.StateRequired)
	}
	if c.BoolProp("busy") {
		n.AddState(model.StateBusy)
	}
	if c.BoolProp("multiselectable") {
		n.AddState(model.StateMultiselectable)
	}
	if c.BoolProp("hidden") {
		n.AddState(model.StateHidden)
	}
	readonly := c.BoolProp("readonly")
	editable := c.StringProp("editable") != "" || c.BoolProp("settable")
	if textInputRoles[role] {
		if editable && !readonly {
			n.AddState(model.StateEditable)
		} else {
			n.AddState(model.StateReadonly)
		}
	}

	// Actions.
	if !staticTextRoles[role] {
		if cdpClickRoles[role] {
			n.Actions = append(n.Actions,
				model.ActionClick, model.ActionRightClick, model.ActionDoubleClick)
		}
		switch role {
		case model.RoleCheckbox, model.RoleSwitch, model.RoleMenuItemCheckbox:
			n.Actions = append(n.Actions, model.ActionToggle)
		}
		if _, ok := c.Prop("expanded").(bool); ok {
			n.Actions = append(n.Actions, model.ActionExpand, model.ActionCollapse)
		}
		if editable && !readonly {
			if textInputRoles[role] {
				n.Actions = append(n.Actions, model.ActionType, model.ActionSetValue)
			} else {
				n.Actions = append(n.Actions, model.ActionSetValue)
			}
		}
		switch role {
		case model.RoleOption, model.RoleTab, model.RoleTreeItem:
			n.Actions = append(n.Actions, model.ActionSelect)
		}
		if _, ok := c.FloatProp("valuemin"); ok {
			if rangeRoles[role] {
				n.Actions = append(n.Actions, model.ActionIncrement, model.ActionDecrement)
			}
		}
		addFocusFallback(n, c.BoolProp("focusable"))
	}

	// Attributes.
	if role == model.RoleHeading {
		if lvl, ok := c.FloatProp("level"); ok && lvl > 0 {
			ensureAttrs(n).Level = int(lvl)
		}
	}
	if role == model.RoleLink {
		if url := c.StringProp("url"); url != "" {
			ensureAttrs(n).URL = url
		}
	}
	if ph := c.StringProp("placeholder"); ph != "" && textInputRoles[role] {
		ensureAttrs(n).Placeholder = ph
	}
	if rangeRoles[role] {
		if now, ok := c.FloatProp("valuenow"); ok {
			attrs := ensureAttrs(n)
			v := now
			attrs.ValueNow = &v
			if mn, ok := c.FloatProp("valuemin"); ok {
				attrs.ValueMin = &mn
			}
			if mx, ok := c.FloatProp("valuemax"); ok {
				attrs.ValueMax = &mx
			}
		}
	}
	if orientationRoles[role] {
		switch c.StringProp("orientation") {
		case "horizontal":
			ensureAttrs(n).Orientation = "horizontal"
		case "vertical":
			ensureAttrs(n).Orientation = "vertical"
		}
	}
	if live := c.StringProp("live"); live == "polite" || live == "assertive" || live == "off" {
		ensureAttrs(n).Live = live
	}
	if ac := c.StringProp("autocomplete"); ac == "inline" || ac == "list" || ac == "both" || ac == "none" {
		ensureAttrs(n).Autocomplete = ac
	}
	if ks := c.StringProp("keyshortcuts"); ks != "" {
		ensureAttrs(n).KeyShortcut = ks
	}
	if rd := c.StringProp("roledescription"); rd != "" {
		ensureAttrs(n).RoleDescription = rd
	}

	n.Platform = map[string]any{
		"cdpRole":          c.Role,
		"backendDOMNodeId": c.BackendID,
	}
	return n
}
