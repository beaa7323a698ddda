package platform

import "fmt"

// RefKind discriminates the native reference union.
type RefKind string

const (
	RefWindows RefKind = "windows"
	RefMac     RefKind = "macos"
	RefATSPI   RefKind = "linux"
	RefCDP     RefKind = "web"
)

// WindowsRef re-identifies a UIA element: the owning window handle plus
// the element's index in the cached-walk emission order.
type WindowsRef struct {
	HWND      int64
	NodeIndex int
}

// MacRef re-identifies an AX element by the child-index path from the
// application element.
type MacRef struct {
	PID  int
	Path []int
}

// ATSPIRef re-identifies an AT-SPI object on the accessibility bus.
type ATSPIRef struct {
	BusName    string
	ObjectPath string
}

// CDPRef re-identifies a DOM-backed accessibility node on a page target.
type CDPRef struct {
	WSURL     string
	BackendID int64
}

// NativeRef is the tagged union of platform references. Exactly one
// variant is non-nil.
type NativeRef struct {
	Kind    RefKind
	Windows *WindowsRef
	Mac     *MacRef
	ATSPI   *ATSPIRef
	CDP     *CDPRef
}

func (r NativeRef) String() string {
	switch r.Kind {
	case RefWindows:
		if r.Windows != nil {
			return fmt.Sprintf("windows:%d/%d", r.Windows.HWND, r.Windows.NodeIndex)
		}
	case RefMac:
		if r.Mac != nil {
			return fmt.Sprintf("macos:%d%v", r.Mac.PID, r.Mac.Path)
		}
	case RefATSPI:
		if r.ATSPI != nil {
			return fmt.Sprintf("linux:%s%s", r.ATSPI.BusName, r.ATSPI.ObjectPath)
		}
	case RefCDP:
		if r.CDP != nil {
			return fmt.Sprintf("web:%s#%d", r.CDP.WSURL, r.CDP.BackendID)
		}
	}
	return "invalid-ref"
}

// Valid reports whether the union carries its tagged variant.
func (r NativeRef) Valid() bool {
	switch r.Kind {
	case RefWindows:
		return r.Windows != nil
	case RefMac:
		return r.Mac != nil
	case RefATSPI:
		return r.ATSPI != nil
	case RefCDP:
		return r.CDP != nil
	}
	return false
}
