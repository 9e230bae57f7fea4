package cycle

import (
	"context"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/feed"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
	"github.com/danielpatrickdp/reflex-controller/internal/logging"
	"github.com/danielpatrickdp/reflex-controller/internal/state"
	"github.com/danielpatrickdp/reflex-controller/internal/threshold"
)

// #region ports

// InputProvider supplies one instrument's cycle input. Implemented by the
// gRPC feed client and by replay fixtures.
type InputProvider interface {
	GetCycleInput(ctx context.Context, instrument string) (feed.CycleInput, error)
}

// Archive persists per-cycle results. Implemented by the state store.
type Archive interface {
	AppendAudit(rec audit.Record) error
	AppendSnapshot(rec state.SnapshotRecord) error
	SaveEngine(rec state.EngineRecord) error
}

// HealthSink records operational events. Wired to logging.LogEvent in the
// binary; nil disables health recording.
type HealthSink func(entry logging.HealthEntry)

// #endregion ports

// #region report

// Report is what one control cycle produced for an instrument.
type Report struct {
	CycleID    string
	Instrument string

	Skipped    bool
	SkipReason string

	Coefficient coefficient.Result
	Warnings    []coefficient.Warning
	Thresholds  threshold.Set
	Outcomes    []audit.Outcome
	Flush       feedback.FlushResult
	Step        evolution.StepResult

	Degraded bool
}

// #endregion report

// #region config

// Config holds the per-instrument loop settings.
type Config struct {
	// Period is the cadence of scheduled cycles.
	Period time.Duration

	// StaleAfter skips a cycle whose snapshot is older than this,
	// retaining the previous cycle's state.
	StaleAfter time.Duration

	// ThresholdExportPath, when set, writes the recomputed threshold set
	// as YAML after every cycle.
	ThresholdExportPath string
}

// DefaultConfig returns the reference loop settings. The staleness window
// spans several periods so one late snapshot does not skip every cycle.
func DefaultConfig() Config {
	return Config{
		Period:     5 * time.Minute,
		StaleAfter: 15 * time.Minute,
	}
}

// #endregion config
