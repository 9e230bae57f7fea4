package cycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/feed"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
	"github.com/danielpatrickdp/reflex-controller/internal/logging"
	"github.com/danielpatrickdp/reflex-controller/internal/state"
	"github.com/danielpatrickdp/reflex-controller/internal/threshold"
)

// #region runner-struct

// Runner drives one instrument's control cycle: fetch input, recompute
// the coefficient and thresholds, step the evolution engine, audit pending
// decisions, flush feedback for the next step, persist. Instruments never
// share a Runner.
type Runner struct {
	instrument string
	config     Config

	provider   InputProvider
	calc       *coefficient.Calculator
	thresholds *threshold.Controller
	engine     *evolution.Engine
	auditor    *audit.Auditor
	bus        *feedback.Bus
	archive    Archive
	health     HealthSink

	lastInput *feed.CycleInput // identical-input fast path
	degraded  bool
}

// #endregion runner-struct

// #region constructor

// NewRunner wires a runner for one instrument. archive and health may be
// nil; persistence and health recording are then skipped.
func NewRunner(
	instrument string,
	config Config,
	provider InputProvider,
	calc *coefficient.Calculator,
	thresholds *threshold.Controller,
	engine *evolution.Engine,
	auditor *audit.Auditor,
	bus *feedback.Bus,
	archive Archive,
	health HealthSink,
) *Runner {
	bus.Subscribe(engine)
	return &Runner{
		instrument: instrument,
		config:     config,
		provider:   provider,
		calc:       calc,
		thresholds: thresholds,
		engine:     engine,
		auditor:    auditor,
		bus:        bus,
		archive:    archive,
		health:     health,
	}
}

// Degraded reports whether the last cycle missed a feedback delivery
// window. Cleared by the next fully delivered flush.
func (r *Runner) Degraded() bool {
	return r.degraded
}

// #endregion constructor

// #region run-cycle

// RunCycle executes one full cycle at the given wall time. A stale
// snapshot or an identical repeat of the previous input skips the cycle
// and retains all state. An invariant violation in the engine aborts only
// this cycle; nothing is persisted for it.
func (r *Runner) RunCycle(ctx context.Context, now time.Time) (Report, error) {
	cycleID := uuid.New().String()
	report := Report{CycleID: cycleID, Instrument: r.instrument}

	input, err := r.provider.GetCycleInput(ctx, r.instrument)
	if err != nil {
		return report, fmt.Errorf("cycle %s: fetch input: %w", cycleID, err)
	}

	if age := now.Sub(input.Snapshot.Timestamp); age > r.config.StaleAfter {
		log.Printf("[CYCLE] %s: snapshot %s old, skipping", r.instrument, age)
		r.logHealth(cycleID, logging.EventStaleSkip, fmt.Sprintf("snapshot age %s", age))
		report.Skipped = true
		report.SkipReason = "stale snapshot"
		return report, nil
	}

	if r.lastInput != nil && sameInput(*r.lastInput, input) {
		report.Skipped = true
		report.SkipReason = "identical input"
		return report, nil
	}

	// 1. Coefficient
	result, warnings := r.calc.Compute(input.Snapshot)
	for _, w := range warnings {
		log.Printf("[CYCLE] %s: clamped %s %.4f -> %.4f", r.instrument, w.Field, w.Raw, w.Clamped)
		r.logHealth(cycleID, logging.EventRangeClamped,
			fmt.Sprintf("%s %.4f -> %.4f", w.Field, w.Raw, w.Clamped))
	}
	report.Coefficient = result
	report.Warnings = warnings

	// 2. Thresholds
	report.Thresholds = r.thresholds.Recompute(result)
	if r.config.ThresholdExportPath != "" {
		if err := threshold.Export(r.config.ThresholdExportPath, r.instrument, report.Thresholds); err != nil {
			log.Printf("[CYCLE] %s: threshold export failed: %v", r.instrument, err)
		}
	}

	// 3. Evolution step. Consumes the feedback flushed at the end of the
	// previous cycle, so a correction always lands on the next weight update.
	step, err := r.engine.Step(evolution.StepInput{CycleID: cycleID, Coefficient: result})
	if err != nil {
		if errors.Is(err, evolution.ErrInvariantViolation) {
			log.Printf("[EVO] %s: cycle %s aborted: %v", r.instrument, cycleID, err)
		}
		return report, fmt.Errorf("cycle %s: evolution step: %w", cycleID, err)
	}
	report.Step = step
	if step.DriftBreach {
		log.Printf("[EVO] %s: drift breach, entering recovery", r.instrument)
		r.logHealth(cycleID, logging.EventDriftBreach,
			fmt.Sprintf("meta %.4f variance %.4f", step.State.MetaIntegrityScore, step.State.FieldVariance))
	}
	if step.Recovered {
		log.Printf("[EVO] %s: recovered, resuming stable learning", r.instrument)
	}

	// 4. Audit pending decisions against this cycle's evolution state;
	// rejections publish feedback.
	report.Outcomes = r.auditor.AuditBatch(cycleID, now, result, step.State, input.Decisions)
	for _, outcome := range report.Outcomes {
		if r.archive != nil {
			if err := r.archive.AppendAudit(outcome.Record); err != nil {
				log.Printf("[AUDIT] %s: archive failed: %v", r.instrument, err)
			}
		}
		if outcome.Feedback != nil {
			r.bus.Publish(*outcome.Feedback)
		}
	}

	// 5. Feedback delivery into the engine's inbox for the next step.
	report.Flush = r.bus.Flush(ctx, r.instrument)
	if report.Flush.DeadLettered > 0 {
		r.logHealth(cycleID, logging.EventFeedbackDLQ,
			fmt.Sprintf("%d message(s) missed the delivery window", report.Flush.DeadLettered))
	}
	r.degraded = report.Flush.Degraded
	report.Degraded = r.degraded

	// 6. Persist
	if r.archive != nil {
		if err := r.persist(cycleID, now, result, step); err != nil {
			log.Printf("[CYCLE] %s: persist failed: %v", r.instrument, err)
		}
	}

	r.lastInput = &input
	return report, nil
}

// #endregion run-cycle

// #region persist

func (r *Runner) persist(cycleID string, now time.Time, result coefficient.Result, step evolution.StepResult) error {
	if err := r.archive.SaveEngine(state.EngineRecord{
		Instrument: r.instrument,
		CycleID:    cycleID,
		Weights:    step.Weights,
		State:      step.State,
		Mode:       step.Mode,
		UpdatedAt:  now,
	}); err != nil {
		return fmt.Errorf("save engine: %w", err)
	}

	if err := r.archive.AppendSnapshot(state.SnapshotRecord{
		Timestamp:                now,
		Instrument:               r.instrument,
		CycleID:                  cycleID,
		ReflectiveFieldResonance: step.State.ReflectiveFieldResonance,
		EvolutionDriftRate:       step.State.EvolutionDriftRate,
		MetaIntegrityScore:       step.State.MetaIntegrityScore,
		AdaptiveBiasAdjustment:   step.Gradient,
		PropagationState:         string(result.State),
		Alpha:                    step.Weights.Alpha,
		Beta:                     step.Weights.Beta,
		Gamma:                    step.Weights.Gamma,
	}); err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

// #endregion persist

// #region helpers

func (r *Runner) logHealth(cycleID, kind, detail string) {
	if r.health == nil {
		return
	}
	r.health(logging.HealthEntry{
		Instrument: r.instrument,
		CycleID:    cycleID,
		Kind:       kind,
		Detail:     detail,
	})
}

func sameInput(a, b feed.CycleInput) bool {
	if a.Snapshot != b.Snapshot || len(a.Decisions) != len(b.Decisions) {
		return false
	}
	for i := range a.Decisions {
		if a.Decisions[i] != b.Decisions[i] {
			return false
		}
	}
	return true
}

// #endregion helpers
