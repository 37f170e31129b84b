package runner

import (
	"strings"
	"time"
)

// Status is the outcome of a case.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusErrored Status = "errored" // a setup hook of an enclosing group failed
	StatusSkipped Status = "skipped"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Path     []string      `json:"path"`
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Err      error         `json:"-"`
}

func (r *CaseResult) setErr(err error) {
	r.Err = err
	r.Error = err.Error()
}

// FullName joins the group path and the case name.
func (r CaseResult) FullName() string {
	parts := append(append([]string{}, r.Path...), r.Name)
	return strings.Join(parts, " ")
}

// Report collects the case results of a run.
type Report struct {
	Cases    []CaseResult  `json:"cases"`
	Duration time.Duration `json:"duration_ns"`
}

// Passed returns the number of passing cases.
func (r *Report) Passed() int { return r.count(StatusPassed) }

// Failed returns the number of cases that did not pass.
func (r *Report) Failed() int { return len(r.Cases) - r.Passed() }

// OK reports whether every case passed.
func (r *Report) OK() bool { return r.Failed() == 0 }

func (r *Report) count(status Status) int {
	n := 0
	for _, c := range r.Cases {
		if c.Status == status {
			n++
		}
	}
	return n
}
