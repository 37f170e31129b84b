package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the chainspec banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"       _           _                            ", "#818cf8"},
		{"   ___| |__   __ _(_)_ __  ___ _ __   ___  ___  ", "#a78bfa"},
		{"  / __| '_ \\ / _` | | '_ \\/ __| '_ \\ / _ \\/ __| ", "#c084fc"},
		{" | (__| | | | (_| | | | | \\__ \\ |_) |  __/ (__  ", "#e879f9"},
		{"  \\___|_| |_|\\__,_|_|_| |_|___/ .__/ \\___|\\___| ", "#f472b6"},
		{"                              |_|               ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
