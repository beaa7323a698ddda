package cupmap

import (
	"strconv"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// textInputRoles are roles whose writable value means typed text.
var textInputRoles = map[string]bool{
	model.RoleTextbox:    true,
	model.RoleSearchBox:  true,
	model.RoleCombobox:   true,
	model.RoleSpinButton: true,
}

// staticTextRoles never get action enumeration; their action lists are
// always empty noise on every platform.
var staticTextRoles = map[string]bool{
	model.RoleText:        true,
	model.RoleHeading:     true,
	model.RoleParagraph:   true,
	model.RoleCaption:     true,
	model.RoleBlockquote:  true,
	model.RoleCode:        true,
	model.RoleEmphasis:    true,
	model.RoleStrong:      true,
	model.RoleSubscript:   true,
	model.RoleSuperscript: true,
	model.RoleDeletion:    true,
	model.RoleInsertion:   true,
}

// buttonLikeRoles get "pressed" rather than "checked" from a toggle-on
// signal.
var buttonLikeRoles = map[string]bool{
	model.RoleButton: true,
	model.RoleSwitch: true,
}

// cdpClickRoles additionally receive rightclick and doubleclick on web.
var cdpClickRoles = map[string]bool{
	model.RoleButton:           true,
	model.RoleLink:             true,
	model.RoleMenuItem:         true,
	model.RoleMenuItemCheckbox: true,
	model.RoleMenuItemRadio:    true,
	model.RoleCheckbox:         true,
	model.RoleRadio:            true,
	model.RoleSwitch:           true,
	model.RoleTab:              true,
	model.RoleOption:           true,
	model.RoleTreeItem:         true,
}

// orientationRoles carry the orientation attribute.
var orientationRoles = map[string]bool{
	model.RoleScrollBar: true,
	model.RoleSlider:    true,
	model.RoleSeparator: true,
	model.RoleToolbar:   true,
	model.RoleTabList:   true,
}

// rangeRoles carry valueMin/valueMax/valueNow.
var rangeRoles = map[string]bool{
	model.RoleSlider:      true,
	model.RoleSpinButton:  true,
	model.RoleProgressBar: true,
	model.RoleScrollBar:   true,
}

// MapNode translates one raw captured node into a canonical node without
// ID or children; those are assigned during reassembly.
func MapNode(raw *platform.RawNode) *model.Node {
	var n *model.Node
	switch {
	case raw.UIA != nil:
		n = mapUIA(raw.UIA)
	case raw.AX != nil:
		n = mapAX(raw.AX)
	case raw.ATSPI != nil:
		n = mapATSPI(raw.ATSPI)
	case raw.CDP != nil:
		n = mapCDP(raw.CDP)
	default:
		n = &model.Node{Role: model.RoleGeneric}
	}

	n.Bounds = raw.Bounds
	if raw.Offscreen {
		n.AddState(model.StateOffscreen)
	}

	n.Name = model.Truncate(strings.TrimSpace(n.Name), model.MaxTextLen)
	n.Description = model.Truncate(n.Description, model.MaxTextLen)
	n.Value = model.Truncate(n.Value, model.MaxTextLen)
	if n.Attributes != nil {
		n.Attributes.Placeholder = model.Truncate(n.Attributes.Placeholder, model.MaxTextLen)
		n.Attributes.URL = model.Truncate(n.Attributes.URL, model.MaxURLLen)
		n.Attributes.RoleDescription = model.Truncate(n.Attributes.RoleDescription, model.MaxTextLen)
		n.Attributes.KeyShortcut = model.Truncate(n.Attributes.KeyShortcut, model.MaxTextLen)
		if n.Attributes.IsZero() {
			n.Attributes = nil
		}
	}

	// A named, clickable generic is a button in disguise; this applies
	// on every platform.
	if n.Role == model.RoleGeneric && n.Name != "" && n.HasAction(model.ActionClick) {
		n.Role = model.RoleButton
	}

	n.Actions = dedupeActions(n.Actions)
	return n
}

func dedupeActions(actions []string) []string {
	if len(actions) < 2 {
		return actions
	}
	seen := make(map[string]bool, len(actions))
	out := actions[:0]
	for _, a := range actions {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// addFocusFallback appends the focus action when a focusable node ended
// up with no other actions.
func addFocusFallback(n *model.Node, focusable bool) {
	if focusable && len(n.Actions) == 0 {
		n.Actions = append(n.Actions, model.ActionFocus)
	}
}

// ensureAttrs returns the node's attribute record, allocating on demand.
func ensureAttrs(n *model.Node) *model.Attributes {
	if n.Attributes == nil {
		n.Attributes = &model.Attributes{}
	}
	return n.Attributes
}

// parseAriaProperties decodes the UIA AriaProperties blob
// ("level=2;posinset=3") into a map.
func parseAriaProperties(s string) map[string]string {
	if s == "" {
		return nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}
