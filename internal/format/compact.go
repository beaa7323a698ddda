// Package format renders envelopes as JSON, compact text for LLM
// context windows, and window-overview text.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

// DefaultMaxChars is the compact output byte budget.
const DefaultMaxChars = 40000

// TruncationNotice is appended verbatim when the budget is exceeded.
const TruncationNotice = `# OUTPUT TRUNCATED — exceeded character limit.
# Use find(name=...) to locate specific elements instead.
# Or use snapshot_app(app='<title>') to target a specific window.
`

const (
	maxNameChars  = 80
	maxValueChars = 120
)

// Compact renders the envelope as indented one-line-per-node text.
// beforeCount is the node count prior to pruning, shown in the header.
// When the rendered text exceeds maxChars it is cut at the last newline
// inside the budget and the truncation notice is appended.
func Compact(env *model.Envelope, beforeCount, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# CUP %s | %s | %dx%d\n", env.Version, env.Platform, env.Screen.W, env.Screen.H)
	if env.App != nil && env.App.Name != "" {
		fmt.Fprintf(&b, "# app: %s\n", env.App.Name)
	}
	fmt.Fprintf(&b, "# %d nodes (%d before pruning)\n", model.CountNodes(env.Tree), beforeCount)
	if len(env.Tools) > 0 {
		fmt.Fprintf(&b, "# %d WebMCP tool(s) available\n", len(env.Tools))
	}
	if len(env.Windows) > 0 {
		fmt.Fprintf(&b, "# --- %d open windows ---\n", len(env.Windows))
		for _, w := range env.Windows {
			if w.Foreground {
				fmt.Fprintf(&b, "#   %s [fg]\n", w.Title)
			} else {
				fmt.Fprintf(&b, "#   %s\n", w.Title)
			}
		}
	}

	for _, root := range env.Tree {
		writeNode(&b, root, 0)
	}

	out := b.String()
	if len(out) > maxChars {
		cut := strings.LastIndexByte(out[:maxChars], '\n')
		if cut < 0 {
			cut = 0
		}
		out = out[:cut+1] + TruncationNotice
	}
	return out
}

func writeNode(b *strings.Builder, n *model.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(b, "%s[%s] %s %s", indent, n.ID, n.Role, escape(n.Name, maxNameChars))

	if n.HasMeaningfulAction() && n.Bounds != nil {
		fmt.Fprintf(b, " @%d,%d %dx%d", n.Bounds.X, n.Bounds.Y, n.Bounds.W, n.Bounds.H)
	}
	if len(n.States) > 0 {
		fmt.Fprintf(b, " {%s}", strings.Join(n.States, ","))
	}
	if actions := printedActions(n.Actions); len(actions) > 0 {
		fmt.Fprintf(b, " [%s]", strings.Join(actions, ","))
	}
	if n.Value != "" {
		fmt.Fprintf(b, " val=%s", escape(n.Value, maxValueChars))
	}
	if attrs := compactAttrs(n.Attributes); attrs != "" {
		fmt.Fprintf(b, " (%s)", attrs)
	}
	b.WriteByte('\n')

	for _, ch := range n.Children {
		writeNode(b, ch, depth+1)
	}

	if total := n.Clipped.Total(); total > 0 {
		childIndent := strings.Repeat("  ", depth+1)
		fmt.Fprintf(b, "%s# %d more items — scroll %s to see\n",
			childIndent, total, strings.Join(clipDirections(n.Clipped), "/"))
	}
}

// printedActions elides focus; it is noise in nearly every line.
func printedActions(actions []string) []string {
	var out []string
	for _, a := range actions {
		if a != model.ActionFocus {
			out = append(out, a)
		}
	}
	return out
}

func clipDirections(c *model.Clipped) []string {
	var dirs []string
	if c.Above > 0 {
		dirs = append(dirs, "up")
	}
	if c.Below > 0 {
		dirs = append(dirs, "down")
	}
	if c.Left > 0 {
		dirs = append(dirs, "left")
	}
	if c.Right > 0 {
		dirs = append(dirs, "right")
	}
	return dirs
}

// escape renders s as a JSON string literal, truncated with a trailing
// ellipsis when longer than max runes.
func escape(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		s = string(runes[:max]) + "…"
	}
	data, err := json.Marshal(s)
	if err != nil {
		return `"` + s + `"`
	}
	return string(data)
}

func compactAttrs(a *model.Attributes) string {
	if a.IsZero() {
		return ""
	}
	var parts []string
	add := func(format string, args ...any) {
		parts = append(parts, fmt.Sprintf(format, args...))
	}
	if a.Level > 0 {
		add("level=%d", a.Level)
	}
	if a.ValueNow != nil {
		if a.ValueMin != nil && a.ValueMax != nil {
			add("val=%s of %s..%s", trimFloat(*a.ValueNow), trimFloat(*a.ValueMin), trimFloat(*a.ValueMax))
		} else {
			add("val=%s", trimFloat(*a.ValueNow))
		}
	}
	if a.Orientation != "" {
		add("%s", a.Orientation)
	}
	if a.RowIndex > 0 || a.ColIndex > 0 {
		add("cell=%d,%d", a.RowIndex, a.ColIndex)
	}
	if a.RowCount > 0 || a.ColCount > 0 {
		add("grid=%dx%d", a.RowCount, a.ColCount)
	}
	if a.PosInSet > 0 && a.SetSize > 0 {
		add("pos=%d/%d", a.PosInSet, a.SetSize)
	}
	if a.Placeholder != "" {
		add("placeholder=%s", escape(a.Placeholder, maxNameChars))
	}
	if a.URL != "" {
		add("url=%s", a.URL)
	}
	if a.Live != "" {
		add("live=%s", a.Live)
	}
	if a.Autocomplete != "" {
		add("autocomplete=%s", a.Autocomplete)
	}
	if a.KeyShortcut != "" {
		add("keys=%s", a.KeyShortcut)
	}
	if a.RoleDescription != "" {
		add("roledesc=%s", escape(a.RoleDescription, maxNameChars))
	}
	return strings.Join(parts, ", ")
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
