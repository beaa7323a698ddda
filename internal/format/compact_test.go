package format

import (
	"strings"
	"testing"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

func testEnvelope(tree []*model.Node) *model.Envelope {
	return &model.Envelope{
		Version:  model.Version,
		Platform: model.PlatformLinux,
		Screen:   model.Screen{W: 1920, H: 1080},
		Tree:     tree,
	}
}

func TestCompact_Header(t *testing.T) {
	env := testEnvelope(nil)
	env.App = &model.AppInfo{Name: "Firefox"}
	out := Compact(env, 12, 0)

	lines := strings.Split(out, "\n")
	if lines[0] != "# CUP 0.1.0 | linux | 1920x1080" {
		t.Errorf("header line = %q", lines[0])
	}
	if lines[1] != "# app: Firefox" {
		t.Errorf("app line = %q", lines[1])
	}
	if lines[2] != "# 0 nodes (12 before pruning)" {
		t.Errorf("count line = %q", lines[2])
	}
}

func TestCompact_NodeLine(t *testing.T) {
	env := testEnvelope([]*model.Node{{
		ID: "e14", Role: model.RoleButton, Name: "Submit",
		Bounds:  &model.Bounds{X: 100, Y: 50, W: 80, H: 30},
		Actions: []string{model.ActionClick},
	}})
	out := Compact(env, 1, 0)
	want := `[e14] button "Submit" @100,50 80x30 [click]`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestCompact_BoundsOnlyWithMeaningfulActions(t *testing.T) {
	env := testEnvelope([]*model.Node{{
		ID: "e0", Role: model.RoleText, Name: "label",
		Bounds: &model.Bounds{X: 1, Y: 2, W: 3, H: 4},
	}})
	out := Compact(env, 1, 0)
	if strings.Contains(out, "@1,2") {
		t.Errorf("bounds printed for actionless node:\n%s", out)
	}
}

func TestCompact_FocusElided(t *testing.T) {
	env := testEnvelope([]*model.Node{{
		ID: "e0", Role: model.RoleListItem, Name: "row",
		Actions: []string{model.ActionFocus},
	}})
	out := Compact(env, 1, 0)
	if strings.Contains(out, "[focus]") {
		t.Errorf("focus action printed:\n%s", out)
	}
}

func TestCompact_ClipHint(t *testing.T) {
	env := testEnvelope([]*model.Node{{
		ID: "e0", Role: model.RoleList, Name: "items",
		Bounds:  &model.Bounds{X: 0, Y: 0, W: 200, H: 100},
		Actions: []string{model.ActionScroll},
		Clipped: &model.Clipped{Below: 1},
		Children: []*model.Node{{
			ID: "e1", Role: model.RoleListItem, Name: "A",
		}},
	}})
	out := Compact(env, 2, 0)
	if !strings.Contains(out, "  # 1 more items — scroll down to see") {
		t.Errorf("clip hint missing or misplaced:\n%s", out)
	}
}

func TestCompact_ClipHintMultipleDirections(t *testing.T) {
	env := testEnvelope([]*model.Node{{
		ID: "e0", Role: model.RoleList, Name: "grid",
		Actions: []string{model.ActionScroll},
		Clipped: &model.Clipped{Above: 2, Below: 3},
	}})
	out := Compact(env, 1, 0)
	if !strings.Contains(out, "# 5 more items — scroll up/down to see") {
		t.Errorf("multi-direction hint wrong:\n%s", out)
	}
}

func TestCompact_NameEscapedAndTruncated(t *testing.T) {
	long := strings.Repeat("x", 100)
	env := testEnvelope([]*model.Node{{
		ID: "e0", Role: model.RoleButton, Name: `say "hi"` + long,
		Actions: []string{model.ActionClick},
	}})
	out := Compact(env, 1, 0)
	if !strings.Contains(out, `\"hi\"`) {
		t.Errorf("quotes not escaped:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("long name not ellipsized:\n%s", out)
	}
}

func TestCompact_ByteBudget(t *testing.T) {
	var nodes []*model.Node
	for i := 0; i < 500; i++ {
		nodes = append(nodes, &model.Node{
			ID: "e0", Role: model.RoleButton,
			Name:    strings.Repeat("n", 60),
			Actions: []string{model.ActionClick},
		})
	}
	env := testEnvelope(nodes)

	budget := 2000
	out := Compact(env, 500, budget)
	if len(out) > budget+len(TruncationNotice) {
		t.Errorf("output length %d exceeds budget %d + notice %d", len(out), budget, len(TruncationNotice))
	}
	if !strings.HasSuffix(out, TruncationNotice) {
		t.Error("truncation notice missing")
	}
	// Truncation must land on a line boundary.
	body := strings.TrimSuffix(out, TruncationNotice)
	if !strings.HasSuffix(body, "\n") {
		t.Error("truncation cut mid-line")
	}
}

func TestCompact_WindowsSection(t *testing.T) {
	env := testEnvelope(nil)
	env.Windows = []model.WindowInfo{
		{Title: "Editor", Foreground: true},
		{Title: "Terminal"},
	}
	out := Compact(env, 0, 0)
	if !strings.Contains(out, "# --- 2 open windows ---") {
		t.Errorf("windows header missing:\n%s", out)
	}
	if !strings.Contains(out, "#   Editor [fg]") || !strings.Contains(out, "#   Terminal") {
		t.Errorf("window lines wrong:\n%s", out)
	}
}

func TestCompact_ToolsLine(t *testing.T) {
	env := testEnvelope(nil)
	env.Tools = []model.ToolDescriptor{{Name: "add_to_cart"}, {Name: "checkout"}}
	out := Compact(env, 0, 0)
	if !strings.Contains(out, "# 2 WebMCP tool(s) available") {
		t.Errorf("tools line missing:\n%s", out)
	}
}

func TestOverview(t *testing.T) {
	env := testEnvelope(nil)
	env.Windows = []model.WindowInfo{
		{Title: "Browser", PID: 100, Foreground: true,
			Bounds: &model.Bounds{X: 0, Y: 0, W: 1280, H: 720},
			URL:    "https://example.com"},
		{Title: "Notes", PID: 200},
	}
	out := Overview(env)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "# CUP 0.1.0 | linux | 1920x1080" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "# overview | 2 windows" {
		t.Errorf("overview line = %q", lines[1])
	}
	if lines[2] != "* [fg] Browser (pid:100) @0,0 1280x720 url:https://example.com" {
		t.Errorf("foreground line = %q", lines[2])
	}
	if lines[3] != "  Notes (pid:200)" {
		t.Errorf("background line = %q", lines[3])
	}
}
