package model

// Version is the protocol version stamped on every envelope.
const Version = "0.1.0"

// Platform tags accepted in envelopes.
const (
	PlatformWindows = "windows"
	PlatformMacOS   = "macos"
	PlatformLinux   = "linux"
	PlatformWeb     = "web"
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// Scope names for a snapshot request.
const (
	ScopeOverview   = "overview"
	ScopeForeground = "foreground"
	ScopeDesktop    = "desktop"
	ScopeFull       = "full"
)

// Detail levels for tree transformation.
const (
	DetailMinimal  = "minimal"
	DetailStandard = "standard"
	DetailFull     = "full"
)

// Screen describes the display the snapshot was taken on. Scale is
// omitted from JSON when it equals 1 (the zero value stands in for 1).
type Screen struct {
	W     int     `json:"w"`
	H     int     `json:"h"`
	Scale float64 `json:"scale,omitempty"`
}

// AppInfo identifies the application a snapshot targets.
type AppInfo struct {
	Name     string `json:"name,omitempty"`
	PID      int    `json:"pid,omitempty"`
	BundleID string `json:"bundleId,omitempty"`
}

// WindowInfo is a lightweight window record for overviews.
type WindowInfo struct {
	Title      string  `json:"title"`
	PID        int     `json:"pid,omitempty"`
	BundleID   string  `json:"bundleId,omitempty"`
	Foreground bool    `json:"foreground,omitempty"`
	Bounds     *Bounds `json:"bounds,omitempty"`
	URL        string  `json:"url,omitempty"`
}

// ToolDescriptor describes a page-exposed model-context tool.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// Envelope is the top-level snapshot document.
type Envelope struct {
	Version   string           `json:"version"`
	Platform  string           `json:"platform"`
	Timestamp int64            `json:"timestamp"`
	Screen    Screen           `json:"screen"`
	Scope     string           `json:"scope,omitempty"`
	App       *AppInfo         `json:"app,omitempty"`
	Tree      []*Node          `json:"tree"`
	Windows   []WindowInfo     `json:"windows,omitempty"`
	Tools     []ToolDescriptor `json:"tools,omitempty"`
}

// ValidPlatform reports whether the tag is an accepted platform name.
func ValidPlatform(p string) bool {
	switch p {
	case PlatformWindows, PlatformMacOS, PlatformLinux, PlatformWeb, PlatformAndroid, PlatformIOS:
		return true
	}
	return false
}
