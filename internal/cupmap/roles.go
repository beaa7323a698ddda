// Package cupmap normalizes raw per-platform accessibility attributes
// into the canonical role/state/action vocabulary and reassembles the
// flat capture stream into a tree with stable element IDs.
package cupmap

import (
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

// uiaRoles maps UIA control type ids to canonical roles.
var uiaRoles = map[int]string{
	50000: model.RoleButton,
	50001: model.RoleGrid, // Calendar
	50002: model.RoleCheckbox,
	50003: model.RoleCombobox,
	50004: model.RoleTextbox, // Edit
	50005: model.RoleLink,    // Hyperlink
	50006: model.RoleImg,
	50007: model.RoleListItem,
	50008: model.RoleList,
	50009: model.RoleMenu,
	50010: model.RoleMenuBar,
	50011: model.RoleMenuItem,
	50012: model.RoleProgressBar,
	50013: model.RoleRadio,
	50014: model.RoleScrollBar,
	50015: model.RoleSlider,
	50016: model.RoleSpinButton, // Spinner
	50017: model.RoleStatus,     // StatusBar
	50018: model.RoleTabList,    // Tab
	50019: model.RoleTab,        // TabItem
	50020: model.RoleText,
	50021: model.RoleToolbar,
	50022: model.RoleTooltip,
	50023: model.RoleTree,
	50024: model.RoleTreeItem,
	50025: model.RoleGeneric, // Custom
	50026: model.RoleGroup,
	50027: model.RoleGeneric, // Thumb
	50028: model.RoleGrid,    // DataGrid
	50029: model.RoleRow,     // DataItem
	50030: model.RoleDocument,
	50031: model.RoleButton, // SplitButton
	50032: model.RoleWindow,
	50033: model.RoleGeneric, // Pane
	50034: model.RoleGroup,   // Header
	50035: model.RoleColumnHeader,
	50036: model.RoleTable,
	50037: model.RoleTitleBar,
	50038: model.RoleSeparator,
	50039: model.RoleGeneric, // SemanticZoom
	50040: model.RoleToolbar, // AppBar
}

const uiaControlTypePane = 50033
const uiaControlTypeMenuItem = 50011

// axRoles maps AXUIElement role values to canonical roles.
var axRoles = map[string]string{
	"AXApplication":        model.RoleApplication,
	"AXBrowser":            model.RoleGroup,
	"AXBusyIndicator":      model.RoleProgressBar,
	"AXButton":             model.RoleButton,
	"AXCell":               model.RoleCell,
	"AXCheckBox":           model.RoleCheckbox,
	"AXColorWell":          model.RoleButton,
	"AXColumn":             model.RoleGeneric,
	"AXComboBox":           model.RoleCombobox,
	"AXDisclosureTriangle": model.RoleButton,
	"AXDrawer":             model.RoleComplementary,
	"AXGenericElement":     model.RoleGeneric,
	"AXGrid":               model.RoleGrid,
	"AXGroup":              model.RoleGroup,
	"AXHeading":            model.RoleHeading,
	"AXImage":              model.RoleImg,
	"AXIncrementor":        model.RoleSpinButton,
	"AXLevelIndicator":     model.RoleProgressBar,
	"AXLink":               model.RoleLink,
	"AXList":               model.RoleList,
	"AXMenu":               model.RoleMenu,
	"AXMenuBar":            model.RoleMenuBar,
	"AXMenuBarItem":        model.RoleMenuItem,
	"AXMenuButton":         model.RoleButton,
	"AXMenuItem":           model.RoleMenuItem,
	"AXOutline":            model.RoleTree,
	"AXPopUpButton":        model.RoleCombobox,
	"AXProgressIndicator":  model.RoleProgressBar,
	"AXRadioButton":        model.RoleRadio,
	"AXRadioGroup":         model.RoleGroup,
	"AXRow":                model.RoleRow,
	"AXScrollArea":         model.RoleGeneric,
	"AXScrollBar":          model.RoleScrollBar,
	"AXSheet":              model.RoleDialog,
	"AXSlider":             model.RoleSlider,
	"AXSplitGroup":         model.RoleGroup,
	"AXSplitter":           model.RoleSeparator,
	"AXStaticText":         model.RoleText,
	"AXSwitch":             model.RoleSwitch,
	"AXTabGroup":           model.RoleTabList,
	"AXTable":              model.RoleTable,
	"AXTextArea":           model.RoleTextbox,
	"AXTextField":          model.RoleTextbox,
	"AXToggle":             model.RoleSwitch,
	"AXToolbar":            model.RoleToolbar,
	"AXUnknown":            model.RoleGeneric,
	"AXValueIndicator":     model.RoleGeneric,
	"AXWebArea":            model.RoleDocument,
	"AXWindow":             model.RoleWindow,
}

// axSubroles overrides the base AX role when a recognized subrole is
// present. The subrole wins because it is the more specific signal.
var axSubroles = map[string]string{
	"AXApplicationDockItem": model.RoleButton,
	"AXCloseButton":         model.RoleButton,
	"AXContentList":         model.RoleList,
	"AXDescriptionList":     model.RoleList,
	"AXDialog":              model.RoleDialog,
	"AXFloatingWindow":      model.RoleWindow,
	"AXFullScreenButton":    model.RoleButton,
	"AXMinimizeButton":      model.RoleButton,
	"AXSearchField":         model.RoleSearchBox,
	"AXSecureTextField":     model.RoleTextbox,
	"AXSheet":               model.RoleDialog,
	"AXSortButton":          model.RoleButton,
	"AXStandardWindow":      model.RoleWindow,
	"AXSwitch":              model.RoleSwitch,
	"AXSystemDialog":        model.RoleAlertDialog,
	"AXTabButton":           model.RoleTab,
	"AXToggleButton":        model.RoleButton,
	"AXToolbarButton":       model.RoleButton,
	"AXZoomButton":          model.RoleButton,
}

// atspiRoles maps decoded AT-SPI role names to canonical roles. Role
// names arrive lowercased with dashes (e.g. "push-button").
var atspiRoles = map[string]string{
	"alert":               model.RoleAlert,
	"application":         model.RoleApplication,
	"caption":             model.RoleCaption,
	"canvas":              model.RoleImg,
	"check-box":           model.RoleCheckbox,
	"check-menu-item":     model.RoleMenuItemCheckbox,
	"combo-box":           model.RoleCombobox,
	"desktop-frame":       model.RoleWindow,
	"dialog":              model.RoleDialog,
	"document-frame":      model.RoleDocument,
	"document-web":        model.RoleDocument,
	"embedded":            model.RoleGeneric,
	"entry":               model.RoleTextbox,
	"filler":              model.RoleGeneric,
	"footer":              model.RoleContentInfo,
	"form":                model.RoleForm,
	"frame":               model.RoleWindow,
	"grouping":            model.RoleGroup,
	"header":              model.RoleBanner,
	"heading":             model.RoleHeading,
	"html-container":      model.RoleGeneric,
	"icon":                model.RoleImg,
	"image":               model.RoleImg,
	"label":               model.RoleText,
	"landmark":            model.RoleRegion,
	"link":                model.RoleLink,
	"list":                model.RoleList,
	"list-box":            model.RoleList,
	"list-item":           model.RoleListItem,
	"menu":                model.RoleMenu,
	"menu-bar":            model.RoleMenuBar,
	"menu-item":           model.RoleMenuItem,
	"notification":        model.RoleAlert,
	"page-tab":            model.RoleTab,
	"page-tab-list":       model.RoleTabList,
	"panel":               model.RoleGeneric,
	"paragraph":           model.RoleParagraph,
	"password-text":       model.RoleTextbox,
	"progress-bar":        model.RoleProgressBar,
	"push-button":         model.RoleButton,
	"radio-button":        model.RoleRadio,
	"radio-menu-item":     model.RoleMenuItemRadio,
	"scroll-bar":          model.RoleScrollBar,
	"scroll-pane":         model.RoleGeneric,
	"section":             model.RoleGeneric,
	"separator":           model.RoleSeparator,
	"slider":              model.RoleSlider,
	"spin-button":         model.RoleSpinButton,
	"static":              model.RoleText,
	"status-bar":          model.RoleStatus,
	"table":               model.RoleTable,
	"table-cell":          model.RoleCell,
	"table-column-header": model.RoleColumnHeader,
	"table-row":           model.RoleRow,
	"table-row-header":    model.RoleRowHeader,
	"terminal":            model.RoleTextbox,
	"text":                model.RoleTextbox,
	"toggle-button":       model.RoleButton,
	"tool-bar":            model.RoleToolbar,
	"tool-tip":            model.RoleTooltip,
	"tree":                model.RoleTree,
	"tree-item":           model.RoleTreeItem,
	"tree-table":          model.RoleTree,
	"unknown":             model.RoleGeneric,
	"viewport":            model.RoleGeneric,
	"window":              model.RoleWindow,
}

// cdpRoles maps Chromium accessibility role names that differ from the
// canonical vocabulary. Roles already in the canonical set pass through.
var cdpRoles = map[string]string{
	"RootWebArea":             model.RoleDocument,
	"WebArea":                 model.RoleDocument,
	"GenericContainer":        model.RoleGeneric,
	"StaticText":              model.RoleText,
	"InlineTextBox":           model.RoleText,
	"LineBreak":               model.RoleText,
	"ListMarker":              model.RoleText,
	"LayoutTable":             model.RoleTable,
	"LayoutTableRow":          model.RoleRow,
	"LayoutTableCell":         model.RoleCell,
	"Iframe":                  model.RoleDocument,
	"IframePresentational":    model.RoleNone,
	"DescriptionList":         model.RoleList,
	"DescriptionListTerm":     model.RoleListItem,
	"DescriptionListDetail":   model.RoleListItem,
	"DisclosureTriangle":      model.RoleButton,
	"PopUpButton":             model.RoleCombobox,
	"TextField":               model.RoleTextbox,
	"TextFieldWithComboBox":   model.RoleCombobox,
	"MenuListPopup":           model.RoleMenu,
	"MenuListOption":          model.RoleOption,
	"ColorWell":               model.RoleButton,
	"Date":                    model.RoleTextbox,
	"DateTime":                model.RoleTextbox,
	"InputTime":               model.RoleTextbox,
	"EmbeddedObject":          model.RoleGeneric,
	"PluginObject":            model.RoleGeneric,
	"Figcaption":              model.RoleCaption,
	"Canvas":                  model.RoleImg,
	"SvgRoot":                 model.RoleImg,
	"Meter":                   model.RoleProgressBar,
	"Details":                 model.RoleGroup,
	"Summary":                 model.RoleButton,
	"Abbr":                    model.RoleText,
	"Mark":                    model.RoleText,
	"Pre":                     model.RoleCode,
	"Ruby":                    model.RoleText,
	"Legend":                  model.RoleText,
	"Section":                 model.RoleGeneric,
	"HeaderAsNonLandmark":     model.RoleGeneric,
	"FooterAsNonLandmark":     model.RoleGeneric,
	"ContentDeletion":         model.RoleDeletion,
	"ContentInsertion":        model.RoleInsertion,
}

// ariaExtra maps non-schema ARIA role names to canonical roles; ARIA
// names that are already canonical pass through resolveARIA directly.
var ariaExtra = map[string]string{
	"presentation":      model.RoleNone,
	"directory":         model.RoleList,
	"gridcell":          model.RoleCell,
	"image":             model.RoleImg,
	"graphics-document": model.RoleDocument,
	"graphics-object":   model.RoleGroup,
	"graphics-symbol":   model.RoleImg,
	"doc-abstract":      model.RoleParagraph,
	"doc-bibliography":  model.RoleList,
	"doc-chapter":       model.RoleRegion,
	"doc-conclusion":    model.RoleRegion,
	"doc-endnotes":      model.RoleRegion,
	"doc-glossary":      model.RoleList,
	"doc-introduction":  model.RoleRegion,
	"doc-pagebreak":     model.RoleSeparator,
	"doc-subtitle":      model.RoleHeading,
	"doc-toc":           model.RoleNavigation,
}

// resolveARIA maps an ARIA role token to a canonical role, or "" when
// unrecognized.
func resolveARIA(aria string) string {
	aria = strings.ToLower(strings.TrimSpace(aria))
	if aria == "" {
		return ""
	}
	if model.ValidRole(aria) {
		return aria
	}
	return ariaExtra[aria]
}
