package platform

import "github.com/computeruseprotocol/go-sdk/internal/model"

// RawNode is one element in the flat pre-order capture stream. Depth
// annotates tree position; exactly one platform payload is set. Adapters
// drop bounds with non-positive extents before emission and mark nodes
// whose bounds fall entirely outside the screen as offscreen.
type RawNode struct {
	Depth     int
	Offscreen bool
	Bounds    *model.Bounds

	UIA   *UIARaw
	AX    *AXRaw
	ATSPI *ATSPIRaw
	CDP   *CDPRaw
}

// NativeRole returns the platform role string for stats accounting.
func (r *RawNode) NativeRole() string {
	switch {
	case r.UIA != nil:
		return r.UIA.ControlTypeName()
	case r.AX != nil:
		if r.AX.Subrole != "" {
			return r.AX.Role + "/" + r.AX.Subrole
		}
		return r.AX.Role
	case r.ATSPI != nil:
		return r.ATSPI.RoleName
	case r.CDP != nil:
		return r.CDP.Role
	}
	return ""
}

// UIARaw carries the cached UI Automation properties of one element.
type UIARaw struct {
	ControlType  int
	Name         string
	AutomationID string
	ClassName    string
	HelpText     string

	IsEnabled         bool
	HasKeyboardFocus  bool
	IsOffscreen       bool
	IsRequiredForForm bool
	IsModal           bool
	Orientation       int // 0 none, 1 horizontal, 2 vertical

	// Pattern availability.
	HasInvoke         bool
	HasToggle         bool
	HasExpandCollapse bool
	HasValue          bool
	HasSelectionItem  bool
	HasScroll         bool
	HasRangeValue     bool

	// Pattern state.
	ToggleState         int // 0 off, 1 on, 2 indeterminate
	ExpandCollapseState int // 0 collapsed, 1 expanded, 2 partially, 3 leaf
	IsSelected          bool
	IsReadOnly          bool
	Value               string
	RangeMin            float64
	RangeMax            float64
	RangeValue          float64

	AriaRole       string
	AriaProperties string
}

// uiaControlTypeNames maps UIA control type ids to their names, for
// diagnostics and lazy-tree detection.
var uiaControlTypeNames = map[int]string{
	50000: "Button", 50001: "Calendar", 50002: "CheckBox", 50003: "ComboBox",
	50004: "Edit", 50005: "Hyperlink", 50006: "Image", 50007: "ListItem",
	50008: "List", 50009: "Menu", 50010: "MenuBar", 50011: "MenuItem",
	50012: "ProgressBar", 50013: "RadioButton", 50014: "ScrollBar",
	50015: "Slider", 50016: "Spinner", 50017: "StatusBar", 50018: "Tab",
	50019: "TabItem", 50020: "Text", 50021: "ToolBar", 50022: "ToolTip",
	50023: "Tree", 50024: "TreeItem", 50025: "Custom", 50026: "Group",
	50027: "Thumb", 50028: "DataGrid", 50029: "DataItem", 50030: "Document",
	50031: "SplitButton", 50032: "Window", 50033: "Pane", 50034: "Header",
	50035: "HeaderItem", 50036: "Table", 50037: "TitleBar", 50038: "Separator",
	50039: "SemanticZoom", 50040: "AppBar",
}

// ControlTypeName returns the UIA control type name, or "Unknown".
func (u *UIARaw) ControlTypeName() string {
	if name, ok := uiaControlTypeNames[u.ControlType]; ok {
		return name
	}
	return "Unknown"
}

// AXRaw carries the batch-fetched AXUIElement attributes of one element.
type AXRaw struct {
	Role        string
	Subrole     string
	Title       string
	Description string
	Help        string
	Identifier  string
	Value       string

	Enabled     bool
	Focused     bool
	Selected    bool
	Expanded    bool
	HasExpanded bool // AXExpanded attribute was present at all
	Modal       bool
	Required    bool
	Busy        bool
	Editable    bool

	Actions     []string
	URL         string
	Placeholder string

	ValueMin *float64
	ValueMax *float64
	ValueNow *float64
}

// ATSPIRaw carries the D-Bus-fetched AT-SPI attributes of one element.
type ATSPIRaw struct {
	RoleName    string // decoded, dash-joined, e.g. "push-button"
	Name        string
	Description string
	States      uint64 // low and high 32-bit masks packed together
	Actions     []string
	Attributes  map[string]string

	ValueMin *float64
	ValueMax *float64
	ValueNow *float64
	Text     string
}

// AT-SPI state enum bit positions used by the mapper.
const (
	ATSPIStateActive          = 1
	ATSPIStateArmed           = 2
	ATSPIStateBusy            = 3
	ATSPIStateChecked         = 4
	ATSPIStateCollapsed       = 5
	ATSPIStateEditable        = 7
	ATSPIStateEnabled         = 8
	ATSPIStateExpandable      = 9
	ATSPIStateExpanded        = 10
	ATSPIStateFocusable       = 11
	ATSPIStateFocused         = 12
	ATSPIStateModal           = 14
	ATSPIStateMultiselectable = 16
	ATSPIStatePressed         = 18
	ATSPIStateResizable       = 19
	ATSPIStateSelectable      = 20
	ATSPIStateSelected        = 21
	ATSPIStateSensitive       = 22
	ATSPIStateShowing         = 23
	ATSPIStateVisible         = 25
	ATSPIStateRequired        = 32
	ATSPIStateIndeterminate   = 36
	ATSPIStateReadOnly        = 40
)

// HasState tests one AT-SPI state bit.
func (a *ATSPIRaw) HasState(bit int) bool {
	return a.States&(1<<uint(bit)) != 0
}

// CDPRaw carries one node of Accessibility.getFullAXTree output.
type CDPRaw struct {
	NodeID      string
	Role        string
	Name        string
	Description string
	Value       string
	Properties  map[string]any
	BackendID   int64
	Ignored     bool
}

// Prop returns a named AX property value, or nil.
func (c *CDPRaw) Prop(name string) any {
	if c.Properties == nil {
		return nil
	}
	return c.Properties[name]
}

// BoolProp returns a boolean AX property, false when absent.
func (c *CDPRaw) BoolProp(name string) bool {
	v, ok := c.Prop(name).(bool)
	return ok && v
}

// StringProp returns a string AX property, "" when absent.
func (c *CDPRaw) StringProp(name string) string {
	v, _ := c.Prop(name).(string)
	return v
}

// FloatProp returns a numeric AX property and whether it was present.
func (c *CDPRaw) FloatProp(name string) (float64, bool) {
	v, ok := c.Prop(name).(float64)
	return v, ok
}
