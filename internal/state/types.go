package state

import (
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
)

// #region engine-record
// EngineRecord is the durable per-instrument evolution state. One row per
// instrument; overwritten every committed cycle so a restart resumes from
// the last cycle rather than uniform weights.
type EngineRecord struct {
	Instrument string
	CycleID    string
	Weights    evolution.Weights
	State      evolution.State
	Mode       evolution.Mode
	UpdatedAt  time.Time
}

// #endregion engine-record

// #region snapshot-record
// SnapshotRecord is one row of the append-only evolution history, written
// after every cycle for offline inspection and replay fixtures.
type SnapshotRecord struct {
	Timestamp                time.Time
	Instrument               string
	CycleID                  string
	ReflectiveFieldResonance float64
	EvolutionDriftRate       float64
	MetaIntegrityScore       float64
	AdaptiveBiasAdjustment   float64
	PropagationState         string
	Alpha                    float64
	Beta                     float64
	Gamma                    float64
}

// #endregion snapshot-record

// #region dead-letter-record
// DeadLetterRecord is an undeliverable feedback message kept for operator
// review. Rows are never replayed automatically.
type DeadLetterRecord struct {
	ID            int64
	SourceCycleID string
	Instrument    string
	Severity      string
	TIIScore      float64
	Reason        string
	CreatedAt     time.Time
}

// #endregion dead-letter-record
