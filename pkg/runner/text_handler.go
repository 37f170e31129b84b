package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// TextHandler writes a report as indented, colored text.
type TextHandler struct {
	Writer io.Writer
	output *termenv.Output
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithProfile forces a color profile (termenv.Ascii disables colors).
func WithProfile(p termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.output = termenv.NewOutput(h.Writer, termenv.WithProfile(p))
	}
}

// NewTextHandler creates a text handler. A nil writer means stdout.
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w}
	h.output = termenv.NewOutput(w)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Write prints every case under its group path, followed by a summary.
func (h *TextHandler) Write(report *Report) error {
	var prev []string
	for _, c := range report.Cases {
		common := 0
		for common < len(prev) && common < len(c.Path) && prev[common] == c.Path[common] {
			common++
		}
		for i := common; i < len(c.Path); i++ {
			if _, err := fmt.Fprintf(h.Writer, "%s%s\n", indent(i), c.Path[i]); err != nil {
				return err
			}
		}
		prev = c.Path

		mark := h.output.String("✓").Foreground(h.output.Color("2"))
		if c.Status != StatusPassed {
			mark = h.output.String("✗").Foreground(h.output.Color("1"))
		}
		if _, err := fmt.Fprintf(h.Writer, "%s%s %s\n", indent(len(c.Path)), mark, c.Name); err != nil {
			return err
		}
		if c.Error != "" {
			detail := h.output.String(fmt.Sprintf("%s: %s", c.Status, c.Error)).Faint()
			if _, err := fmt.Fprintf(h.Writer, "%s  %s\n", indent(len(c.Path)), detail); err != nil {
				return err
			}
		}
	}

	summary := fmt.Sprintf("\n%d passing, %d failing (%s)\n", report.Passed(), report.Failed(), report.Duration)
	style := h.output.String(summary).Bold()
	_, err := fmt.Fprint(h.Writer, style)
	return err
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
