package main

import (
	"database/sql"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/replay"
	"github.com/danielpatrickdp/reflex-controller/internal/state"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to reflex_controller.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	instrument := flag.String("instrument", "", "instrument filter for DB mode")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/reflex_controller.db [--instrument EURUSD]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *instrument)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	cycles := make([]replay.RecordedCycle, len(f.Cycles))
	for i := range f.Cycles {
		cycles[i] = f.Cycles[i].ToRecordedCycle(f.Instrument)
	}

	results := replay.Replay(f.Instrument, cycles, f.Config.ToReplayConfig())
	mismatches := replay.Verify(f, results)

	summary := replay.Summarize(results)
	fmt.Printf("Replayed %d cycles: %d accepted, %d review, %d rejected, %d breaches (final mode %s)\n",
		summary.TotalCycles, summary.Accepted, summary.Reviewed, summary.Rejected,
		summary.Breaches, summary.FinalMode)

	if len(mismatches) == 0 {
		fmt.Println("All expectations match.")
		return 0
	}
	for _, m := range mismatches {
		fmt.Printf("DIFF %-12s %-22s want=%-10s got=%s\n", m.CycleID, m.Field, m.Want, m.Got)
	}
	fmt.Printf("\nSummary: %d divergence(s)\n", len(mismatches))
	return 1
}

// #endregion fixture-mode

// #region db-mode

// auditRow is the slice of an audit_log row needed to re-derive its TII.
type auditRow struct {
	CycleID             string
	Decision            string
	Confidence          float64
	TIIScore            float64
	ReflectiveResonance float64
	BiasDelta           float64
	IntegrityState      string
}

// runDBMode re-audits archived decisions against the current classifier
// and reports rows whose integrity state would change. The deviation
// variance is reconstructed from the stored TII score.
func runDBMode(dbPath, instrument string) int {
	store, err := state.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	rows, err := queryAudits(store.DB(), instrument)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query audit log: %v\n", err)
		return 2
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no audit records found")
		return 2
	}

	fmt.Printf("%-14s| %-10s| %-10s| %s\n", "Cycle", "Archived", "Replayed", "Match")
	fmt.Printf("%-14s+%-11s+%-11s+%s\n", "--------------", "-----------", "-----------", "------")

	// Classification depends only on the TII score; the coefficient and
	// evolution state feed the human-readable reason, so zero values suffice.
	auditor := audit.NewAuditor(audit.DefaultConfig())
	matches := 0
	for _, r := range rows {
		ctx := toDecisionContext(r, instrument)
		outcome := auditor.Audit(r.CycleID, time.Time{}, coefficient.Result{}, evolution.State{}, ctx)
		got := string(outcome.Record.IntegrityState)

		match := "DIFF"
		if got == r.IntegrityState {
			match = "OK"
			matches++
		}
		fmt.Printf("%-14s| %-10s| %-10s| %s\n", shortID(r.CycleID), r.IntegrityState, got, match)
	}

	diverge := len(rows) - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", len(rows), matches, diverge)
	if diverge > 0 {
		return 1
	}
	return 0
}

func queryAudits(db *sql.DB, instrument string) ([]auditRow, error) {
	query := `SELECT cycle_id, decision, confidence, tii_score, reflective_resonance, bias_delta, integrity_state
		 FROM audit_log`
	args := []interface{}{}
	if instrument != "" {
		query += ` WHERE instrument = ?`
		args = append(args, instrument)
	}
	query += ` ORDER BY id ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []auditRow
	for rows.Next() {
		var r auditRow
		if err := rows.Scan(&r.CycleID, &r.Decision, &r.Confidence, &r.TIIScore,
			&r.ReflectiveResonance, &r.BiasDelta, &r.IntegrityState); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// toDecisionContext rebuilds the audited decision. Vd is the one input the
// log does not carry; it is recovered by inverting the TII quotient.
func toDecisionContext(r auditRow, instrument string) audit.DecisionContext {
	ctx := audit.DecisionContext{
		Instrument:          instrument,
		Decision:            r.Decision,
		ConfidenceFusion:    r.Confidence,
		ReflectiveResonance: r.ReflectiveResonance,
		BiasDelta:           r.BiasDelta,
	}
	if r.TIIScore > 0 {
		numerator := r.Confidence * r.ReflectiveResonance * (1 - math.Abs(r.BiasDelta))
		ctx.DeviationVariance = numerator/r.TIIScore - audit.Epsilon
		if ctx.DeviationVariance < 0 {
			ctx.DeviationVariance = 0
		}
	}
	return ctx
}

// #endregion db-mode

// #region helpers

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// #endregion helpers
