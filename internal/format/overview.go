package format

import (
	"fmt"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

const maxOverviewURLChars = 80

// Overview renders the window-list text. It is independent of tree
// transformation: one line per window, the foreground window starred.
func Overview(env *model.Envelope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# CUP %s | %s | %dx%d\n", env.Version, env.Platform, env.Screen.W, env.Screen.H)
	fmt.Fprintf(&b, "# overview | %d windows\n", len(env.Windows))

	for _, w := range env.Windows {
		if w.Foreground {
			b.WriteString("* [fg] ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(w.Title)
		if w.PID != 0 {
			fmt.Fprintf(&b, " (pid:%d)", w.PID)
		}
		if w.Bounds != nil {
			fmt.Fprintf(&b, " @%d,%d %dx%d", w.Bounds.X, w.Bounds.Y, w.Bounds.W, w.Bounds.H)
		}
		if w.URL != "" {
			url := w.URL
			if len(url) > maxOverviewURLChars {
				url = url[:maxOverviewURLChars] + "…"
			}
			fmt.Fprintf(&b, " url:%s", url)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
