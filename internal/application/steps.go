package application

import "context"

// StepResult records the outcome of one step in a sequential multi-step
// write
type StepResult struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// StepReport is the outcome of a whole sequential batch. Steps after the
// first failure are not attempted; already-applied steps are not rolled
// back.
type StepReport struct {
	Results   []StepResult `json:"results"`
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failed    bool         `json:"failed"`
}

// AllSucceeded reports whether every planned step ran and succeeded
func (r *StepReport) AllSucceeded() bool {
	return !r.Failed
}

// Step is one unit of a sequential batch
type Step struct {
	Label string
	Run   func(ctx context.Context) error
}

// RunSteps executes steps in order, stopping at the first failure. The
// report carries per-step outcomes so callers can surface partial
// completion instead of an opaque error.
func RunSteps(ctx context.Context, steps []Step) *StepReport {
	report := &StepReport{Results: make([]StepResult, 0, len(steps))}

	for i, step := range steps {
		report.Attempted++
		result := StepResult{Index: i, Label: step.Label, Success: true}
		if err := step.Run(ctx); err != nil {
			result.Success = false
			result.Error = err.Error()
			report.Results = append(report.Results, result)
			report.Failed = true
			return report
		}
		report.Succeeded++
		report.Results = append(report.Results, result)
	}

	return report
}
