package replay

import (
	"context"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
	"github.com/danielpatrickdp/reflex-controller/internal/threshold"
)

// #region types
// RecordedCycle is a single recorded control cycle for replay.
type RecordedCycle struct {
	CycleID   string
	At        time.Time
	Snapshot  coefficient.SignalSnapshot
	Decisions []audit.DecisionContext
}

// ReplayConfig bundles the stage configs for a replay run.
type ReplayConfig struct {
	Coefficient coefficient.Config
	Threshold   threshold.Config
	Evolution   evolution.Config
	Audit       audit.Config
}

// DefaultReplayConfig returns reference defaults for all four stages.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		Coefficient: coefficient.DefaultConfig(),
		Threshold:   threshold.DefaultConfig(),
		Evolution:   evolution.DefaultConfig(),
		Audit:       audit.DefaultConfig(),
	}
}

// CycleResult captures the outcome of replaying one recorded cycle.
type CycleResult struct {
	CycleID     string
	Coefficient coefficient.Result
	Thresholds  threshold.Set
	States      []audit.IntegrityState
	FeedbackSent int

	// Engine after this cycle
	Mode    evolution.Mode
	Weights evolution.Weights
	Aborted bool // invariant violation; engine untouched this cycle
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalCycles int
	Accepted    int
	Reviewed    int
	Rejected    int
	Breaches    int
	FinalMode   evolution.Mode
	FinalWeights evolution.Weights
}

// #endregion types

// #region replay
// Replay iterates recorded cycles through the full in-memory pipeline:
// coefficient, thresholds, evolution step, audit, feedback flush. Fixture
// cycle ids replace generated ones, so identical fixtures replay identically.
func Replay(instrument string, cycles []RecordedCycle, config ReplayConfig) []CycleResult {
	calc := coefficient.NewCalculator(config.Coefficient)
	controller := threshold.NewController(config.Threshold)
	engine := evolution.NewEngine(config.Evolution)
	auditor := audit.NewAuditor(config.Audit)
	bus := feedback.NewBus(feedback.DefaultConfig(), nil)
	bus.Subscribe(engine)

	results := make([]CycleResult, 0, len(cycles))
	for _, rc := range cycles {
		coeff, _ := calc.Compute(rc.Snapshot)
		res := CycleResult{
			CycleID:     rc.CycleID,
			Coefficient: coeff,
			Thresholds:  controller.Recompute(coeff),
		}

		// Step first: this consumes the feedback flushed at the end of the
		// previous cycle, matching the live runner's ordering.
		if _, err := engine.Step(evolution.StepInput{CycleID: rc.CycleID, Coefficient: coeff}); err != nil {
			res.Aborted = true
		}

		outcomes := auditor.AuditBatch(rc.CycleID, rc.At, coeff, engine.State(), rc.Decisions)
		for _, o := range outcomes {
			res.States = append(res.States, o.Record.IntegrityState)
			if o.Feedback != nil {
				res.FeedbackSent++
				bus.Publish(*o.Feedback)
			}
		}
		bus.Flush(context.Background(), instrument)

		res.Mode = engine.Mode()
		res.Weights = engine.Weights()
		results = append(results, res)
	}
	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []CycleResult) ReplaySummary {
	s := ReplaySummary{TotalCycles: len(results)}
	prevMode := evolution.ModeStable
	for _, r := range results {
		for _, st := range r.States {
			switch st {
			case audit.StateAccepted:
				s.Accepted++
			case audit.StateReview:
				s.Reviewed++
			case audit.StateRejected:
				s.Rejected++
			}
		}
		if prevMode == evolution.ModeStable && r.Mode == evolution.ModeRecovering {
			s.Breaches++
		}
		prevMode = r.Mode
		s.FinalMode = r.Mode
		s.FinalWeights = r.Weights
	}
	return s
}

// #endregion replay
