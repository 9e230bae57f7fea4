package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-event
// LogEvent writes a health entry to the health_log table.
func LogEvent(db *sql.DB, entry HealthEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO health_log (timestamp, instrument, cycle_id, kind, detail)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.CreatedAt.Format(time.RFC3339Nano),
		entry.Instrument,
		nullIfEmpty(entry.CycleID),
		entry.Kind,
		nullIfEmpty(entry.Detail),
	)
	if err != nil {
		return fmt.Errorf("log health event: %w", err)
	}
	return nil
}

// #endregion log-event

// #region list-events
// ListEvents returns the most recent health entries across instruments.
func ListEvents(db *sql.DB, limit int) ([]HealthEntry, error) {
	rows, err := db.Query(
		`SELECT timestamp, instrument, cycle_id, kind, detail
		 FROM health_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list health events: %w", err)
	}
	defer rows.Close()

	var entries []HealthEntry
	for rows.Next() {
		var entry HealthEntry
		var tsStr string
		var cycleID, detail sql.NullString
		if err := rows.Scan(&tsStr, &entry.Instrument, &cycleID, &entry.Kind, &detail); err != nil {
			return nil, fmt.Errorf("scan health row: %w", err)
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339Nano, tsStr)
		if cycleID.Valid {
			entry.CycleID = cycleID.String
		}
		if detail.Valid {
			entry.Detail = detail.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// #endregion list-events

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
