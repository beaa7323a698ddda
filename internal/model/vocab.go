package model

// Canonical role tags.
const (
	RoleAlert            = "alert"
	RoleAlertDialog      = "alertdialog"
	RoleApplication      = "application"
	RoleBanner           = "banner"
	RoleBlockquote       = "blockquote"
	RoleButton           = "button"
	RoleCaption          = "caption"
	RoleCell             = "cell"
	RoleCheckbox         = "checkbox"
	RoleCode             = "code"
	RoleColumnHeader     = "columnheader"
	RoleCombobox         = "combobox"
	RoleComplementary    = "complementary"
	RoleContentInfo      = "contentinfo"
	RoleDeletion         = "deletion"
	RoleDialog           = "dialog"
	RoleDocument         = "document"
	RoleEmphasis         = "emphasis"
	RoleFigure           = "figure"
	RoleForm             = "form"
	RoleGeneric          = "generic"
	RoleGrid             = "grid"
	RoleGroup            = "group"
	RoleHeading          = "heading"
	RoleImg              = "img"
	RoleInsertion        = "insertion"
	RoleLink             = "link"
	RoleList             = "list"
	RoleListItem         = "listitem"
	RoleLog              = "log"
	RoleMain             = "main"
	RoleMarquee          = "marquee"
	RoleMath             = "math"
	RoleMenu             = "menu"
	RoleMenuBar          = "menubar"
	RoleMenuItem         = "menuitem"
	RoleMenuItemCheckbox = "menuitemcheckbox"
	RoleMenuItemRadio    = "menuitemradio"
	RoleNavigation       = "navigation"
	RoleNone             = "none"
	RoleNote             = "note"
	RoleOption           = "option"
	RoleParagraph        = "paragraph"
	RoleProgressBar      = "progressbar"
	RoleRadio            = "radio"
	RoleRegion           = "region"
	RoleRow              = "row"
	RoleRowHeader        = "rowheader"
	RoleScrollBar        = "scrollbar"
	RoleSearch           = "search"
	RoleSearchBox        = "searchbox"
	RoleSeparator        = "separator"
	RoleSlider           = "slider"
	RoleSpinButton       = "spinbutton"
	RoleStatus           = "status"
	RoleStrong           = "strong"
	RoleSubscript        = "subscript"
	RoleSuperscript      = "superscript"
	RoleSwitch           = "switch"
	RoleTab              = "tab"
	RoleTable            = "table"
	RoleTabList          = "tablist"
	RoleTabPanel         = "tabpanel"
	RoleText             = "text"
	RoleTextbox          = "textbox"
	RoleTimer            = "timer"
	RoleTitleBar         = "titlebar"
	RoleToolbar          = "toolbar"
	RoleTooltip          = "tooltip"
	RoleTree             = "tree"
	RoleTreeItem         = "treeitem"
	RoleWindow           = "window"
)

// Roles is the full canonical role vocabulary.
var Roles = []string{
	RoleAlert, RoleAlertDialog, RoleApplication, RoleBanner, RoleBlockquote,
	RoleButton, RoleCaption, RoleCell, RoleCheckbox, RoleCode,
	RoleColumnHeader, RoleCombobox, RoleComplementary, RoleContentInfo,
	RoleDeletion, RoleDialog, RoleDocument, RoleEmphasis, RoleFigure,
	RoleForm, RoleGeneric, RoleGrid, RoleGroup, RoleHeading, RoleImg,
	RoleInsertion, RoleLink, RoleList, RoleListItem, RoleLog, RoleMain,
	RoleMarquee, RoleMath, RoleMenu, RoleMenuBar, RoleMenuItem,
	RoleMenuItemCheckbox, RoleMenuItemRadio, RoleNavigation, RoleNone,
	RoleNote, RoleOption, RoleParagraph, RoleProgressBar, RoleRadio,
	RoleRegion, RoleRow, RoleRowHeader, RoleScrollBar, RoleSearch,
	RoleSearchBox, RoleSeparator, RoleSlider, RoleSpinButton, RoleStatus,
	RoleStrong, RoleSubscript, RoleSuperscript, RoleSwitch, RoleTab,
	RoleTable, RoleTabList, RoleTabPanel, RoleText, RoleTextbox,
	RoleTimer, RoleTitleBar, RoleToolbar, RoleTooltip, RoleTree,
	RoleTreeItem, RoleWindow,
}

var roleSet = stringSet(Roles)

// ValidRole reports whether role is in the canonical vocabulary.
func ValidRole(role string) bool { return roleSet[role] }

// Canonical state tags.
const (
	StateBusy            = "busy"
	StateChecked         = "checked"
	StateCollapsed       = "collapsed"
	StateDisabled        = "disabled"
	StateEditable        = "editable"
	StateExpanded        = "expanded"
	StateFocused         = "focused"
	StateHidden          = "hidden"
	StateMixed           = "mixed"
	StateModal           = "modal"
	StateMultiselectable = "multiselectable"
	StateOffscreen       = "offscreen"
	StatePressed         = "pressed"
	StateReadonly        = "readonly"
	StateRequired        = "required"
	StateSelected        = "selected"
)

// States is the full canonical state vocabulary.
var States = []string{
	StateBusy, StateChecked, StateCollapsed, StateDisabled, StateEditable,
	StateExpanded, StateFocused, StateHidden, StateMixed, StateModal,
	StateMultiselectable, StateOffscreen, StatePressed, StateReadonly,
	StateRequired, StateSelected,
}

var stateSet = stringSet(States)

// ValidState reports whether state is in the canonical vocabulary.
func ValidState(state string) bool { return stateSet[state] }

// Canonical action tags. PressKeys is session-level: it is dispatched
// without an element target.
const (
	ActionClick       = "click"
	ActionCollapse    = "collapse"
	ActionDecrement   = "decrement"
	ActionDismiss     = "dismiss"
	ActionDoubleClick = "doubleclick"
	ActionExpand      = "expand"
	ActionFocus       = "focus"
	ActionIncrement   = "increment"
	ActionLongPress   = "longpress"
	ActionPressKeys   = "press_keys"
	ActionRightClick  = "rightclick"
	ActionScroll      = "scroll"
	ActionSelect      = "select"
	ActionSetValue    = "setvalue"
	ActionToggle      = "toggle"
	ActionType        = "type"
)

// ElementActions is the vocabulary of element-level actions.
var ElementActions = []string{
	ActionClick, ActionCollapse, ActionDecrement, ActionDismiss,
	ActionDoubleClick, ActionExpand, ActionFocus, ActionIncrement,
	ActionLongPress, ActionRightClick, ActionScroll, ActionSelect,
	ActionSetValue, ActionToggle, ActionType,
}

var elementActionSet = stringSet(ElementActions)

// ValidAction reports whether the action name is dispatchable, either
// element-level or the session-level press_keys.
func ValidAction(action string) bool {
	return action == ActionPressKeys || elementActionSet[action]
}

// ValidElementAction reports whether action is in the element vocabulary.
func ValidElementAction(action string) bool { return elementActionSet[action] }

func stringSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}

// Maximum lengths for node text fields.
const (
	MaxTextLen = 200
	MaxURLLen  = 500
)

// Truncate trims s to at most max runes.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
