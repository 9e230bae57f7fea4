package audit

import (
	"fmt"
	"math"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
)

// #region auditor

// Auditor computes the per-decision integrity index and classifies it.
// A pure function of its inputs and the fixed epsilon; it never mutates
// upstream state.
type Auditor struct {
	config Config
}

// NewAuditor creates an auditor with the given configuration.
func NewAuditor(config Config) *Auditor {
	return &Auditor{config: config}
}

// #endregion auditor

// #region tii

// ComputeTII evaluates Cf × Rr × (1 − |Δb|) / (Vd + ε). The score is not
// capped above: low variance legitimately amplifies a clean decision.
func ComputeTII(ctx DecisionContext) float64 {
	return ctx.ConfidenceFusion * ctx.ReflectiveResonance * (1 - math.Abs(ctx.BiasDelta)) / (ctx.DeviationVariance + Epsilon)
}

// #endregion tii

// #region audit

// Outcome bundles the record with the feedback built for a rejection.
// Feedback is nil unless the decision was REJECTED.
type Outcome struct {
	Record   Record
	Feedback *feedback.Message
}

// Audit classifies one pending decision against the coefficient and
// evolution state of its cycle. now is passed in so that replaying an
// identical cycle reproduces the identical record.
func (a *Auditor) Audit(
	cycleID string,
	now time.Time,
	coeff coefficient.Result,
	state evolution.State,
	ctx DecisionContext,
) Outcome {
	tii := ComputeTII(ctx)
	integrityState, reason := a.classify(tii, coeff, state)

	rec := Record{
		Timestamp:           now,
		CycleID:             cycleID,
		Instrument:          ctx.Instrument,
		Decision:            ctx.Decision,
		Confidence:          ctx.ConfidenceFusion,
		TIIScore:            tii,
		ReflectiveResonance: ctx.ReflectiveResonance,
		BiasDelta:           ctx.BiasDelta,
		IntegrityState:      integrityState,
		Reason:              reason,
	}

	var msg *feedback.Message
	if integrityState == StateRejected {
		rec.FeedbackSent = true
		msg = a.buildFeedback(cycleID, now, tii, ctx)
	}

	return Outcome{Record: rec, Feedback: msg}
}

// classify maps a TII score to its integrity state. Boundaries are closed
// at the floors and exhaustive; the priority order never changes.
func (a *Auditor) classify(tii float64, coeff coefficient.Result, state evolution.State) (IntegrityState, string) {
	switch {
	case tii >= a.config.AcceptFloor:
		return StateAccepted, "fusion-reflective alignment optimal"
	case tii >= a.config.ReviewFloor:
		return StateReview, fmt.Sprintf("minor reflective drift detected (meta integrity %.3f)", state.MetaIntegrityScore)
	default:
		return StateRejected, fmt.Sprintf("bias high or reflective misalignment (coefficient %.3f)", coeff.Coefficient)
	}
}

// AuditBatch audits a slice of decisions under one cycle's coefficient and
// state, suffixing the cycle id per decision.
func (a *Auditor) AuditBatch(
	cycleID string,
	now time.Time,
	coeff coefficient.Result,
	state evolution.State,
	ctxs []DecisionContext,
) []Outcome {
	outcomes := make([]Outcome, len(ctxs))
	for i, ctx := range ctxs {
		outcomes[i] = a.Audit(fmt.Sprintf("%s/%d", cycleID, i), now, coeff, state, ctx)
	}
	return outcomes
}

// #endregion audit

// #region feedback

// buildFeedback converts a rejection into corrective feedback for the
// evolution engine. Severity follows the TII score; the hint carries the
// scaled correction strength.
func (a *Auditor) buildFeedback(cycleID string, now time.Time, tii float64, ctx DecisionContext) *feedback.Message {
	severity := feedback.SeverityNegative
	switch {
	case tii >= a.config.PositiveFloor:
		severity = feedback.SeverityPositive
	case tii >= a.config.NeutralFloor:
		severity = feedback.SeverityNeutral
	}

	strength := tii * a.config.FeedbackScale
	return &feedback.Message{
		SourceCycleID:  cycleID,
		Instrument:     ctx.Instrument,
		CorrectionHint: fmt.Sprintf("recalibrate: correction strength %.3f", strength),
		Severity:       severity,
		TIIScore:       tii,
		BiasDelta:      ctx.BiasDelta,
		CreatedAt:      now,
	}
}

// #endregion feedback
