package refund

import (
	"strings"
	"time"
)

// CompensationStep is one undo action run when a refund completes.
type CompensationStep string

const (
	StepSaleAdjustment   CompensationStep = "sale_adjustment"
	StepInventoryRestock CompensationStep = "inventory_restock"
	StepLoyaltyReversal  CompensationStep = "loyalty_reversal"
	StepAdjustmentNotes  CompensationStep = "adjustment_notes"
)

// CompensationSteps returns the steps in execution order.
func CompensationSteps() []CompensationStep {
	return []CompensationStep{
		StepSaleAdjustment,
		StepInventoryRestock,
		StepLoyaltyReversal,
		StepAdjustmentNotes,
	}
}

// StepOutcome is what a step did, kept for the completion summary.
type StepOutcome struct {
	Step        CompensationStep `json:"step"`
	Skipped     bool             `json:"skipped,omitempty"`
	Summary     string           `json:"summary"`
	CompletedAt time.Time        `json:"completed_at"`
}

// StepFailure is the error a step returned in the latest attempt.
type StepFailure struct {
	Step  CompensationStep `json:"step"`
	Error string           `json:"error"`
}

// CompensationProgress is the persisted step cursor of a refund.
type CompensationProgress struct {
	Outcomes []StepOutcome `json:"outcomes,omitempty"`
	Failures []StepFailure `json:"failures,omitempty"`
	Attempts int           `json:"attempts"`
}

// IsDone reports whether step already ran (or was skipped) successfully.
func (p *CompensationProgress) IsDone(step CompensationStep) bool {
	for _, o := range p.Outcomes {
		if o.Step == step {
			return true
		}
	}
	return false
}

// Pending returns the steps still to run, in order.
func (p *CompensationProgress) Pending() []CompensationStep {
	pending := make([]CompensationStep, 0, 4)
	for _, step := range CompensationSteps() {
		if !p.IsDone(step) {
			pending = append(pending, step)
		}
	}
	return pending
}

// AllDone reports whether every step has an outcome.
func (p *CompensationProgress) AllDone() bool {
	return len(p.Pending()) == 0
}

// MarkDone records a successful step and clears a failure of the same step.
func (p *CompensationProgress) MarkDone(step CompensationStep, summary string, skipped bool) {
	if p.IsDone(step) {
		return
	}
	p.Outcomes = append(p.Outcomes, StepOutcome{
		Step:        step,
		Skipped:     skipped,
		Summary:     summary,
		CompletedAt: time.Now(),
	})
	p.clearFailure(step)
}

// MarkFailed records the error of step, replacing an earlier one for the same step.
func (p *CompensationProgress) MarkFailed(step CompensationStep, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	for i := range p.Failures {
		if p.Failures[i].Step == step {
			p.Failures[i].Error = msg
			return
		}
	}
	p.Failures = append(p.Failures, StepFailure{Step: step, Error: msg})
}

// FailedSteps lists the steps that failed in the latest attempt.
func (p *CompensationProgress) FailedSteps() []CompensationStep {
	steps := make([]CompensationStep, 0, len(p.Failures))
	for _, f := range p.Failures {
		steps = append(steps, f.Step)
	}
	return steps
}

// FailureMessage joins the recorded failures as "step: error" pairs.
func (p *CompensationProgress) FailureMessage() string {
	parts := make([]string, 0, len(p.Failures))
	for _, f := range p.Failures {
		parts = append(parts, string(f.Step)+": "+f.Error)
	}
	return strings.Join(parts, "; ")
}

func (p *CompensationProgress) clearFailure(step CompensationStep) {
	kept := p.Failures[:0]
	for _, f := range p.Failures {
		if f.Step != step {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	p.Failures = kept
}

// BeginAttempt increments the attempt counter and forgets stale failures.
func (p *CompensationProgress) BeginAttempt() {
	p.Attempts++
	p.Failures = nil
}

// Summaries lists the non-skipped outcome summaries in order.
func (p *CompensationProgress) Summaries() []string {
	out := make([]string, 0, len(p.Outcomes))
	for _, o := range p.Outcomes {
		if !o.Skipped && o.Summary != "" {
			out = append(out, o.Summary)
		}
	}
	return out
}
