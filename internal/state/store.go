package state

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS evolution_state (
	instrument  TEXT PRIMARY KEY,
	cycle_id    TEXT NOT NULL,
	alpha       REAL NOT NULL,
	beta        REAL NOT NULL,
	gamma       REAL NOT NULL,
	resonance   REAL NOT NULL,
	drift_rate  REAL NOT NULL,
	meta_score  REAL NOT NULL,
	variance    REAL NOT NULL,
	mode        TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_log (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp            TEXT NOT NULL,
	cycle_id             TEXT NOT NULL,
	instrument           TEXT NOT NULL,
	decision             TEXT NOT NULL,
	confidence           REAL NOT NULL,
	tii_score            REAL NOT NULL,
	reflective_resonance REAL NOT NULL,
	bias_delta           REAL NOT NULL,
	integrity_state      TEXT NOT NULL,
	reason               TEXT,
	feedback_sent        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS evolution_snapshots (
	id                         INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp                  TEXT NOT NULL,
	instrument                 TEXT NOT NULL,
	cycle_id                   TEXT NOT NULL,
	reflective_field_resonance REAL NOT NULL,
	evolution_drift_rate       REAL NOT NULL,
	meta_integrity_score       REAL NOT NULL,
	adaptive_bias_adjustment   REAL NOT NULL,
	propagation_state          TEXT NOT NULL DEFAULT '',
	alpha                      REAL NOT NULL,
	beta                       REAL NOT NULL,
	gamma                      REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS health_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp   TEXT NOT NULL,
	instrument  TEXT NOT NULL,
	cycle_id    TEXT,
	kind        TEXT NOT NULL,
	detail      TEXT
);

CREATE TABLE IF NOT EXISTS dead_letters (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	source_cycle_id TEXT NOT NULL,
	instrument      TEXT NOT NULL,
	severity        TEXT NOT NULL,
	tii_score       REAL NOT NULL,
	reason          TEXT NOT NULL,
	created_at      TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store persists controller state in SQLite: the durable evolution state,
// the append-only audit and snapshot logs, health events, and the feedback
// dead-letter queue.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region engine-state
// SaveEngine upserts an instrument's evolution state. One row per
// instrument; the previous cycle's row is replaced.
func (s *Store) SaveEngine(rec EngineRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO evolution_state
		 (instrument, cycle_id, alpha, beta, gamma, resonance, drift_rate, meta_score, variance, mode, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(instrument) DO UPDATE SET
		 cycle_id = excluded.cycle_id,
		 alpha = excluded.alpha, beta = excluded.beta, gamma = excluded.gamma,
		 resonance = excluded.resonance, drift_rate = excluded.drift_rate,
		 meta_score = excluded.meta_score, variance = excluded.variance,
		 mode = excluded.mode, updated_at = excluded.updated_at`,
		rec.Instrument, rec.CycleID,
		rec.Weights.Alpha, rec.Weights.Beta, rec.Weights.Gamma,
		rec.State.ReflectiveFieldResonance, rec.State.EvolutionDriftRate,
		rec.State.MetaIntegrityScore, rec.State.FieldVariance,
		string(rec.Mode), rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save engine state: %w", err)
	}
	return nil
}

// LoadEngine reads an instrument's evolution state. The second return is
// false when the instrument has never committed a cycle.
func (s *Store) LoadEngine(instrument string) (EngineRecord, bool, error) {
	var rec EngineRecord
	var mode, updatedStr string

	err := s.db.QueryRow(
		`SELECT instrument, cycle_id, alpha, beta, gamma, resonance, drift_rate, meta_score, variance, mode, updated_at
		 FROM evolution_state WHERE instrument = ?`, instrument,
	).Scan(
		&rec.Instrument, &rec.CycleID,
		&rec.Weights.Alpha, &rec.Weights.Beta, &rec.Weights.Gamma,
		&rec.State.ReflectiveFieldResonance, &rec.State.EvolutionDriftRate,
		&rec.State.MetaIntegrityScore, &rec.State.FieldVariance,
		&mode, &updatedStr,
	)
	if err == sql.ErrNoRows {
		return EngineRecord{}, false, nil
	}
	if err != nil {
		return EngineRecord{}, false, fmt.Errorf("load engine state %s: %w", instrument, err)
	}

	rec.Mode = evolution.Mode(mode)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)
	return rec, true, nil
}

// #endregion engine-state

// #region audit-log
// AppendAudit archives one audit record. The log is append-only; rows are
// never updated or deleted.
func (s *Store) AppendAudit(rec audit.Record) error {
	feedbackSent := 0
	if rec.FeedbackSent {
		feedbackSent = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO audit_log
		 (timestamp, cycle_id, instrument, decision, confidence, tii_score, reflective_resonance, bias_delta, integrity_state, reason, feedback_sent)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.Format(time.RFC3339Nano), rec.CycleID, rec.Instrument,
		rec.Decision, rec.Confidence, rec.TIIScore, rec.ReflectiveResonance,
		rec.BiasDelta, string(rec.IntegrityState), rec.Reason, feedbackSent,
	)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// ListAudits returns an instrument's most recent audit records.
func (s *Store) ListAudits(instrument string, limit int) ([]audit.Record, error) {
	rows, err := s.db.Query(
		`SELECT timestamp, cycle_id, instrument, decision, confidence, tii_score, reflective_resonance, bias_delta, integrity_state, reason, feedback_sent
		 FROM audit_log WHERE instrument = ? ORDER BY id DESC LIMIT ?`,
		instrument, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	var records []audit.Record
	for rows.Next() {
		var rec audit.Record
		var tsStr, integrityState string
		var reason sql.NullString
		var feedbackSent int

		if err := rows.Scan(
			&tsStr, &rec.CycleID, &rec.Instrument, &rec.Decision,
			&rec.Confidence, &rec.TIIScore, &rec.ReflectiveResonance,
			&rec.BiasDelta, &integrityState, &reason, &feedbackSent,
		); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, tsStr)
		rec.IntegrityState = audit.IntegrityState(integrityState)
		if reason.Valid {
			rec.Reason = reason.String
		}
		rec.FeedbackSent = feedbackSent != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion audit-log

// #region snapshots
// AppendSnapshot archives one cycle's evolution metrics.
func (s *Store) AppendSnapshot(rec SnapshotRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO evolution_snapshots
		 (timestamp, instrument, cycle_id, reflective_field_resonance, evolution_drift_rate, meta_integrity_score, adaptive_bias_adjustment, propagation_state, alpha, beta, gamma)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.Format(time.RFC3339Nano), rec.Instrument, rec.CycleID,
		rec.ReflectiveFieldResonance, rec.EvolutionDriftRate, rec.MetaIntegrityScore,
		rec.AdaptiveBiasAdjustment, rec.PropagationState, rec.Alpha, rec.Beta, rec.Gamma,
	)
	if err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns an instrument's most recent snapshots, newest first.
func (s *Store) ListSnapshots(instrument string, limit int) ([]SnapshotRecord, error) {
	rows, err := s.db.Query(
		`SELECT timestamp, instrument, cycle_id, reflective_field_resonance, evolution_drift_rate, meta_integrity_score, adaptive_bias_adjustment, propagation_state, alpha, beta, gamma
		 FROM evolution_snapshots WHERE instrument = ? ORDER BY id DESC LIMIT ?`,
		instrument, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		var tsStr string
		if err := rows.Scan(
			&tsStr, &rec.Instrument, &rec.CycleID,
			&rec.ReflectiveFieldResonance, &rec.EvolutionDriftRate,
			&rec.MetaIntegrityScore, &rec.AdaptiveBiasAdjustment,
			&rec.PropagationState, &rec.Alpha, &rec.Beta, &rec.Gamma,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, tsStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion snapshots

// #region dead-letters
// DeadLetter persists an undeliverable feedback message. Implements
// feedback.DeadLetterSink.
func (s *Store) DeadLetter(msg feedback.Message, reason string) error {
	_, err := s.db.Exec(
		`INSERT INTO dead_letters (source_cycle_id, instrument, severity, tii_score, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.SourceCycleID, msg.Instrument, string(msg.Severity), msg.TIIScore,
		reason, msg.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("dead-letter feedback: %w", err)
	}
	return nil
}

// ListDeadLetters returns the most recent dead-lettered messages.
func (s *Store) ListDeadLetters(limit int) ([]DeadLetterRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, source_cycle_id, instrument, severity, tii_score, reason, created_at
		 FROM dead_letters ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list dead letters: %w", err)
	}
	defer rows.Close()

	var records []DeadLetterRecord
	for rows.Next() {
		var rec DeadLetterRecord
		var createdStr string
		if err := rows.Scan(
			&rec.ID, &rec.SourceCycleID, &rec.Instrument,
			&rec.Severity, &rec.TIIScore, &rec.Reason, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scan dead letter row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion dead-letters

// interface check
var _ feedback.DeadLetterSink = (*Store)(nil)
