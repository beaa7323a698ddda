// Package session owns the per-snapshot state triple (pruned tree,
// unpruned tree, id-to-native-reference map) and the operations over
// it: snapshot, find, execute, and batch execution.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/computeruseprotocol/go-sdk/internal/cupmap"
	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/format"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
	"github.com/computeruseprotocol/go-sdk/internal/prune"
	"github.com/computeruseprotocol/go-sdk/internal/search"
)

// Session serializes snapshot/find/execute operations over one adapter.
// A new capture atomically replaces the retained triple; element IDs
// from earlier captures are invalid afterwards.
type Session struct {
	mu      sync.Mutex
	adapter platform.Adapter

	pruned      []*model.Node
	full        []*model.Node
	refs        cupmap.RefMap
	beforeCount int
	loaded      bool
}

// New creates a session over the given adapter.
func New(adapter platform.Adapter) *Session {
	return &Session{adapter: adapter}
}

// Platform returns the session's platform tag.
func (s *Session) Platform() string { return s.adapter.Platform() }

// Snapshot captures the requested scope, maps and transforms the tree,
// and replaces the session state.
func (s *Session) Snapshot(ctx context.Context, req SnapshotRequest) (*SnapshotResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(ctx, req)
}

func (s *Session) snapshotLocked(ctx context.Context, req SnapshotRequest) (*SnapshotResult, error) {
	req = req.withDefaults()

	if err := s.adapter.Initialize(ctx); err != nil {
		return nil, err
	}
	screen, err := s.adapter.ScreenInfo(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	envScreen := model.Screen{W: screen.W, H: screen.H}
	if screen.Scale != 0 && screen.Scale != 1 {
		envScreen.Scale = screen.Scale
	}

	if req.Scope == model.ScopeOverview {
		windows, err := s.adapter.WindowList(ctx)
		if err != nil {
			return nil, err
		}
		env := &model.Envelope{
			Version:   model.Version,
			Platform:  s.adapter.Platform(),
			Timestamp: now,
			Screen:    envScreen,
			Scope:     req.Scope,
			Windows:   windows,
		}
		return &SnapshotResult{Envelope: env, Full: env, Compact: format.Overview(env)}, nil
	}

	windows, app, err := s.resolveWindows(ctx, req)
	if err != nil {
		return nil, err
	}

	capture, err := s.adapter.CaptureTree(ctx, windows, req.MaxDepth)
	if err != nil {
		return nil, err
	}

	fullRoots, refs, stats := cupmap.Build(capture)
	screenRect := model.Bounds{W: screen.W, H: screen.H}
	prunedRoots := prune.Apply(fullRoots, req.Detail, screenRect)

	tools := s.adapter.Tools(ctx)

	env := &model.Envelope{
		Version:   model.Version,
		Platform:  s.adapter.Platform(),
		Timestamp: now,
		Screen:    envScreen,
		Scope:     req.Scope,
		App:       app,
		Tree:      prunedRoots,
		Tools:     tools,
	}
	fullEnv := &model.Envelope{
		Version:   model.Version,
		Platform:  s.adapter.Platform(),
		Timestamp: now,
		Screen:    envScreen,
		Scope:     req.Scope,
		App:       app,
		Tree:      fullRoots,
		Tools:     tools,
	}

	// Replace the retained triple only once the capture fully succeeded.
	s.pruned = prunedRoots
	s.full = fullRoots
	s.refs = refs
	s.beforeCount = model.CountNodes(fullRoots)
	s.loaded = true

	result := &SnapshotResult{Envelope: env, Full: fullEnv, Stats: stats}
	if req.Output.Compact || req.Output.MaxChars > 0 {
		result.Compact = format.Compact(env, s.beforeCount, req.Output.MaxChars)
	}
	return result, nil
}

// resolveWindows picks capture targets for the requested scope.
func (s *Session) resolveWindows(ctx context.Context, req SnapshotRequest) ([]platform.WindowMetadata, *model.AppInfo, error) {
	switch req.Scope {
	case model.ScopeDesktop:
		desktop, err := s.adapter.DesktopWindow(ctx)
		if err != nil {
			return nil, nil, err
		}
		if desktop == nil {
			return nil, nil, nil
		}
		return []platform.WindowMetadata{*desktop}, nil, nil

	case model.ScopeFull:
		windows, err := s.adapter.AllWindows(ctx)
		if err != nil {
			return nil, nil, err
		}
		windows = filterWindows(windows, req.AppFilter)
		return windows, nil, nil

	default: // foreground
		if req.AppFilter != "" {
			windows, err := s.adapter.AllWindows(ctx)
			if err != nil {
				return nil, nil, err
			}
			windows = filterWindows(windows, req.AppFilter)
			if len(windows) == 0 {
				return nil, nil, cuperr.New(cuperr.InvalidParams, "no window matches app filter %q", req.AppFilter)
			}
			target := windows[0]
			return []platform.WindowMetadata{target}, appInfo(target), nil
		}
		fg, err := s.adapter.ForegroundWindow(ctx)
		if err != nil {
			return nil, nil, err
		}
		return []platform.WindowMetadata{fg}, appInfo(fg), nil
	}
}

func appInfo(w platform.WindowMetadata) *model.AppInfo {
	if w.Title == "" && w.PID == 0 && w.BundleID == "" {
		return nil
	}
	return &model.AppInfo{Name: w.Title, PID: w.PID, BundleID: w.BundleID}
}

func filterWindows(windows []platform.WindowMetadata, filter string) []platform.WindowMetadata {
	if filter == "" {
		return windows
	}
	needle := strings.ToLower(filter)
	var out []platform.WindowMetadata
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) ||
			strings.Contains(strings.ToLower(w.BundleID), needle) {
			out = append(out, w)
		}
	}
	return out
}

// Find searches the last unpruned tree. In a fresh session it first
// takes a foreground snapshot automatically.
func (s *Session) Find(ctx context.Context, req FindRequest) ([]search.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if _, err := s.snapshotLocked(ctx, SnapshotRequest{Scope: model.ScopeForeground}); err != nil {
			return nil, err
		}
	}
	return search.Run(s.full, req), nil
}

// Tree returns the most recent pruned forest, or nil in a fresh session.
func (s *Session) Tree() []*model.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruned
}
