package runner

import (
	"encoding/json"
	"io"
	"os"
)

// JSONHandler writes a report as JSON lines: one line per case, then a summary line.
type JSONHandler struct {
	Encoder *json.Encoder
}

// Summary is the last line written by JSONHandler.
type Summary struct {
	Passed   int   `json:"passed"`
	Failed   int   `json:"failed"`
	Duration int64 `json:"duration_ns"`
}

// NewJSONHandler creates a handler for JSON output. A nil writer means stdout.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

// Write emits the report.
func (h *JSONHandler) Write(report *Report) error {
	for _, c := range report.Cases {
		if err := h.Encoder.Encode(c); err != nil {
			return err
		}
	}
	return h.Encoder.Encode(Summary{
		Passed:   report.Passed(),
		Failed:   report.Failed(),
		Duration: report.Duration.Nanoseconds(),
	})
}
