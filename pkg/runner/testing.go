package runner

import (
	"context"
	"testing"
)

// RunT runs the suite and reports every case as a subtest of t.
func RunT(t *testing.T, s *Suite) *Report {
	t.Helper()
	report := s.Run(context.Background())
	for _, c := range report.Cases {
		t.Run(c.FullName(), func(t *testing.T) {
			switch c.Status {
			case StatusPassed:
			case StatusSkipped:
				t.Skip(c.Error)
			default:
				t.Error(c.Error)
			}
		})
	}
	return report
}
