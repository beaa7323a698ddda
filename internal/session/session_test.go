package session

import (
	"context"
	"strings"
	"testing"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// fakeAdapter serves a canned CDP-shaped capture for session tests.
type fakeAdapter struct {
	performed []string
	keysSent  [][]string
	failWith  error
}

func (f *fakeAdapter) Platform() string                        { return model.PlatformWeb }
func (f *fakeAdapter) Initialize(ctx context.Context) error    { return nil }
func (f *fakeAdapter) ScreenInfo(ctx context.Context) (platform.ScreenInfo, error) {
	return platform.ScreenInfo{W: 1280, H: 720, Scale: 1}, nil
}
func (f *fakeAdapter) ForegroundWindow(ctx context.Context) (platform.WindowMetadata, error) {
	return platform.WindowMetadata{Handle: "ws://fake", Title: "Page"}, nil
}
func (f *fakeAdapter) AllWindows(ctx context.Context) ([]platform.WindowMetadata, error) {
	fg, _ := f.ForegroundWindow(ctx)
	return []platform.WindowMetadata{fg}, nil
}
func (f *fakeAdapter) WindowList(ctx context.Context) ([]model.WindowInfo, error) {
	return []model.WindowInfo{{Title: "Page", Foreground: true}}, nil
}
func (f *fakeAdapter) DesktopWindow(ctx context.Context) (*platform.WindowMetadata, error) {
	return nil, nil
}
func (f *fakeAdapter) Tools(ctx context.Context) []model.ToolDescriptor { return nil }

func (f *fakeAdapter) CaptureTree(ctx context.Context, windows []platform.WindowMetadata, maxDepth int) (*platform.CaptureResult, error) {
	cdp := func(depth int, role, name string, props map[string]any) platform.RawNode {
		return platform.RawNode{Depth: depth, CDP: &platform.CDPRaw{Role: role, Name: name, Properties: props}}
	}
	out := &platform.CaptureResult{
		Nodes: []platform.RawNode{
			cdp(0, "RootWebArea", "Demo", nil),
			cdp(1, "button", "Save", map[string]any{"focusable": true}),
			cdp(1, "textbox", "Email", map[string]any{"editable": "plaintext", "focusable": true}),
		},
		Stats: platform.NewCaptureStats(),
	}
	for i := range out.Nodes {
		out.Refs = append(out.Refs, platform.NativeRef{
			Kind: platform.RefCDP,
			CDP:  &platform.CDPRef{WSURL: "ws://fake", BackendID: int64(i + 1)},
		})
		out.Stats.Observe(out.Nodes[i].Depth, out.Nodes[i].CDP.Role)
	}
	return out, nil
}

func (f *fakeAdapter) Perform(ctx context.Context, ref platform.NativeRef, action string, params platform.ActionParams) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.performed = append(f.performed, action)
	return nil
}

func (f *fakeAdapter) PressKeys(ctx context.Context, modifiers, keys []string) error {
	f.keysSent = append(f.keysSent, append(append([]string{}, modifiers...), keys...))
	return nil
}

func snapshotForTest(t *testing.T, s *Session) *SnapshotResult {
	t.Helper()
	result, err := s.Snapshot(context.Background(), SnapshotRequest{Output: OutputOptions{Compact: true}})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestSnapshot_EnvelopeShape(t *testing.T) {
	s := New(&fakeAdapter{})
	result := snapshotForTest(t, s)

	env := result.Envelope
	if env.Version != "0.1.0" {
		t.Errorf("version = %q", env.Version)
	}
	if !model.ValidPlatform(env.Platform) {
		t.Errorf("platform = %q", env.Platform)
	}
	if env.Timestamp == 0 {
		t.Error("timestamp not set")
	}
	if env.Screen.W != 1280 || env.Screen.H != 720 {
		t.Errorf("screen = %+v", env.Screen)
	}
	if !strings.HasPrefix(result.Compact, "# CUP 0.1.0 | web | 1280x720\n") {
		t.Errorf("compact header:\n%s", result.Compact)
	}
}

func TestSnapshot_FullTreeRetainedForSearch(t *testing.T) {
	s := New(&fakeAdapter{})
	result := snapshotForTest(t, s)
	if model.CountNodes(result.Full.Tree) != 3 {
		t.Errorf("full tree count = %d, want 3", model.CountNodes(result.Full.Tree))
	}

	found, err := s.Find(context.Background(), FindRequest{Query: "save"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) == 0 || found[0].Node.Name != "Save" {
		t.Errorf("find over retained tree failed: %+v", found)
	}
}

func TestFind_AutoSnapshotsWhenFresh(t *testing.T) {
	s := New(&fakeAdapter{})
	found, err := s.Find(context.Background(), FindRequest{Query: "email"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) == 0 {
		t.Fatal("fresh-session find returned nothing")
	}
}

func TestExecute_UnknownElement(t *testing.T) {
	s := New(&fakeAdapter{})
	res := s.Execute(context.Background(), ExecuteRequest{ElementID: "e99", Action: "click"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "not found") {
		t.Errorf("error = %q, want mention of not found", res.Error)
	}
}

func TestExecute_MissingValue(t *testing.T) {
	s := New(&fakeAdapter{})
	snapshotForTest(t, s)
	res := s.Execute(context.Background(), ExecuteRequest{ElementID: "e2", Action: "type"})
	if res.Success || !strings.Contains(res.Error, "value") {
		t.Errorf("result = %+v", res)
	}
}

func TestExecute_UnknownAction(t *testing.T) {
	s := New(&fakeAdapter{})
	snapshotForTest(t, s)
	res := s.Execute(context.Background(), ExecuteRequest{ElementID: "e1", Action: "fly"})
	if res.Success || !strings.Contains(res.Error, "Unknown action") {
		t.Errorf("result = %+v", res)
	}
}

func TestExecute_InvalidScrollDirection(t *testing.T) {
	s := New(&fakeAdapter{})
	snapshotForTest(t, s)
	res := s.Execute(context.Background(), ExecuteRequest{
		ElementID: "e1", Action: "scroll", Params: ActionParams{Direction: "sideways"},
	})
	if res.Success || !strings.Contains(res.Error, "direction") {
		t.Errorf("result = %+v", res)
	}
}

func TestExecute_SuccessMessages(t *testing.T) {
	fake := &fakeAdapter{}
	s := New(fake)
	snapshotForTest(t, s)

	res := s.Execute(context.Background(), ExecuteRequest{ElementID: "e1", Action: "click"})
	if !res.Success || res.Message != "Clicked" {
		t.Errorf("click result = %+v", res)
	}
	res = s.Execute(context.Background(), ExecuteRequest{
		ElementID: "e2", Action: "type", Params: ActionParams{Value: "hello"},
	})
	if !res.Success || res.Message != "Typed: hello" {
		t.Errorf("type result = %+v", res)
	}
	res = s.Execute(context.Background(), ExecuteRequest{
		ElementID: "e1", Action: "scroll", Params: ActionParams{Direction: "down"},
	})
	if !res.Success || res.Message != "Scrolled down" {
		t.Errorf("scroll result = %+v", res)
	}
	if len(fake.performed) != 3 {
		t.Errorf("performed = %v", fake.performed)
	}
}

func TestExecute_PressKeysSkipsRefMap(t *testing.T) {
	fake := &fakeAdapter{}
	s := New(fake)
	// No snapshot taken: press_keys must still work.
	res := s.Execute(context.Background(), ExecuteRequest{
		Action: "press_keys", Params: ActionParams{Keys: "ctrl+shift+p"},
	})
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	if len(fake.keysSent) != 1 {
		t.Fatalf("keysSent = %v", fake.keysSent)
	}
	want := []string{"ctrl", "shift", "p"}
	got := fake.keysSent[0]
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("keys = %v, want %v", got, want)
	}
}

func TestExecute_HandlerErrorBecomesResult(t *testing.T) {
	fake := &fakeAdapter{}
	s := New(fake)
	snapshotForTest(t, s)
	fake.failWith = context.DeadlineExceeded

	res := s.Execute(context.Background(), ExecuteRequest{ElementID: "e1", Action: "click"})
	if res.Success || res.Error == "" {
		t.Errorf("handler error not surfaced: %+v", res)
	}
}

func TestSnapshot_InvalidatesOldIDs(t *testing.T) {
	fake := &fakeAdapter{}
	s := New(fake)
	snapshotForTest(t, s)
	snapshotForTest(t, s)

	// IDs from the new snapshot still resolve; nothing stale remains.
	res := s.Execute(context.Background(), ExecuteRequest{ElementID: "e1", Action: "click"})
	if !res.Success {
		t.Errorf("post-recapture execute failed: %+v", res)
	}
}

func TestExecuteBatch_StopsOnFirstFailure(t *testing.T) {
	fake := &fakeAdapter{}
	s := New(fake)
	snapshotForTest(t, s)

	results := s.ExecuteBatch(context.Background(), []BatchStep{
		{Action: "click", ElementID: "e1"},
		{Action: "click", ElementID: "e99"}, // fails
		{Action: "click", ElementID: "e1"},  // never runs
	})
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if !results[0].Success || results[1].Success {
		t.Errorf("results = %+v", results)
	}
	if len(fake.performed) != 1 {
		t.Errorf("performed = %v", fake.performed)
	}
}

func TestExecuteBatch_WaitClamped(t *testing.T) {
	s := New(&fakeAdapter{})
	results := s.ExecuteBatch(context.Background(), []BatchStep{{Action: "wait", Ms: 1}})
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[0].Message, "50ms") {
		t.Errorf("wait not clamped up: %+v", results[0])
	}
}

func TestSnapshot_OverviewScope(t *testing.T) {
	s := New(&fakeAdapter{})
	result, err := s.Snapshot(context.Background(), SnapshotRequest{Scope: model.ScopeOverview})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Envelope.Windows) != 1 {
		t.Errorf("windows = %+v", result.Envelope.Windows)
	}
	if !strings.Contains(result.Compact, "# overview | 1 windows") {
		t.Errorf("overview text:\n%s", result.Compact)
	}
}
