package runner

import (
	"fmt"
	"strings"
)

// Markdown renders a report as a Markdown document.
func Markdown(title string, report *Report) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", title)
	}
	fmt.Fprintf(&sb, "**%d passing**, **%d failing** in %s\n\n", report.Passed(), report.Failed(), report.Duration)

	var prev []string
	for _, c := range report.Cases {
		if strings.Join(prev, "\x00") != strings.Join(c.Path, "\x00") {
			sb.WriteString("\n## " + strings.Join(c.Path, " › ") + "\n\n")
			prev = c.Path
		}
		mark := "✅"
		if c.Status != StatusPassed {
			mark = "❌"
		}
		fmt.Fprintf(&sb, "- %s %s\n", mark, c.Name)
		if c.Error != "" {
			fmt.Fprintf(&sb, "  - `%s`: %s\n", c.Status, c.Error)
		}
	}
	return sb.String()
}
