// Package platform defines the adapter contract between the snapshot
// pipeline and the native accessibility layers, plus the shared
// subprocess plumbing the concrete adapters are built on.
package platform

import (
	"context"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

// ScreenInfo is the display geometry reported by an adapter.
type ScreenInfo struct {
	W     int
	H     int
	Scale float64
}

// WindowMetadata identifies a capturable window. Handle is adapter-opaque:
// an HWND on Windows, a pid on macOS, an AT-SPI object path on Linux, a
// page target websocket URL on web.
type WindowMetadata struct {
	Handle   any
	Title    string
	PID      int
	BundleID string
	URL      string
}

// CaptureStats accumulates per-capture diagnostics.
type CaptureStats struct {
	Nodes    int
	MaxDepth int
	Roles    map[string]int
}

// NewCaptureStats returns an empty stats accumulator.
func NewCaptureStats() *CaptureStats {
	return &CaptureStats{Roles: make(map[string]int)}
}

// Observe records one emitted raw node.
func (s *CaptureStats) Observe(depth int, nativeRole string) {
	s.Nodes++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	s.Roles[nativeRole]++
}

// Merge folds other into s.
func (s *CaptureStats) Merge(other *CaptureStats) {
	if other == nil {
		return
	}
	s.Nodes += other.Nodes
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
	for role, n := range other.Roles {
		s.Roles[role] += n
	}
}

// CaptureResult is the output of a tree capture: the depth-annotated
// pre-order node stream, stats, and each node's native reference in
// stream order.
type CaptureResult struct {
	Nodes []RawNode
	Stats *CaptureStats
	Refs  []NativeRef
}

// Adapter is the per-platform accessibility backend.
type Adapter interface {
	// Platform returns the canonical platform tag.
	Platform() string

	// Initialize performs idempotent setup (permission checks, helper
	// compilation). Safe to call more than once.
	Initialize(ctx context.Context) error

	// ScreenInfo returns display geometry.
	ScreenInfo(ctx context.Context) (ScreenInfo, error)

	// ForegroundWindow returns the active window.
	ForegroundWindow(ctx context.Context) (WindowMetadata, error)

	// AllWindows returns every capturable window.
	AllWindows(ctx context.Context) ([]WindowMetadata, error)

	// WindowList returns lightweight window records without walking any
	// accessibility tree.
	WindowList(ctx context.Context) ([]model.WindowInfo, error)

	// DesktopWindow returns the desktop surface, if the platform has one.
	DesktopWindow(ctx context.Context) (*WindowMetadata, error)

	// CaptureTree walks the given windows and emits the flat node stream.
	// A window that has died or denies access contributes no nodes; the
	// capture as a whole still succeeds.
	CaptureTree(ctx context.Context, windows []WindowMetadata, maxDepth int) (*CaptureResult, error)

	// Perform executes a native action against a previously captured
	// reference.
	Perform(ctx context.Context, ref NativeRef, action string, params ActionParams) error

	// PressKeys dispatches a key combination at session level.
	PressKeys(ctx context.Context, modifiers, keys []string) error

	// Tools returns page-exposed model-context tools, if any.
	Tools(ctx context.Context) []model.ToolDescriptor
}

// ActionParams carries the per-action payload for Perform.
type ActionParams struct {
	Value     string
	Direction string
	Amount    int
}
