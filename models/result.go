package models

import "time"

// TargetResult records the outcome of one toolchain invocation. It is
// immutable once the invocation has completed.
type TargetResult struct {
	Triple   Triple
	Success  bool
	ExitCode int
	Duration time.Duration
	Output   string
	Err      error
}

// Report aggregates one orchestration pass. Results are ordered exactly as
// the targets were given; under the default failure policy there is one
// entry per configured target regardless of individual failures.
type Report struct {
	Started  time.Time
	Duration time.Duration
	Results  []TargetResult
}

// OK reports whether every target succeeded.
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if !res.Success {
			return false
		}
	}
	return true
}

func (r *Report) Failed() []TargetResult {
	var failed []TargetResult
	for _, res := range r.Results {
		if !res.Success {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r *Report) Succeeded() int {
	count := 0
	for _, res := range r.Results {
		if res.Success {
			count++
		}
	}
	return count
}
