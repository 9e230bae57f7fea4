package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/reflex-controller/internal/logging"
	"github.com/danielpatrickdp/reflex-controller/internal/state"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to reflex_controller.db")
	instrument := flag.String("instrument", "EURUSD", "instrument to inspect")
	last := flag.Int("last", 20, "show N most recent rows")
	audits := flag.Bool("audits", false, "show audit log instead of evolution history")
	health := flag.Bool("health", false, "show health events instead of evolution history")
	deadLetters := flag.Bool("dead-letters", false, "show dead-lettered feedback")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/reflex_controller.db [--instrument X] [--last N] [--audits|--health|--dead-letters] [--json]")
		os.Exit(2)
	}

	store, err := state.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case *audits:
		err = runAuditMode(store, *instrument, *last, *jsonOut)
	case *health:
		err = runHealthMode(store, *last, *jsonOut)
	case *deadLetters:
		err = runDeadLetterMode(store, *last, *jsonOut)
	default:
		err = runHistoryMode(store, *instrument, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region history-mode

func runHistoryMode(store *state.Store, instrument string, last int, jsonOut bool) error {
	snapshots, err := store.ListSnapshots(instrument, last)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(os.Stderr, "no snapshots found")
		return nil
	}

	// Store returns DESC; reverse for chronological reading.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	if jsonOut {
		return printJSON(snapshots)
	}

	fmt.Printf("%-14s  %9s  %9s  %9s  %9s  %-12s  %-22s  %s\n",
		"Cycle", "Resonance", "Drift", "Meta", "Bias", "Propagation", "Weights (α β γ)", "Time")
	for _, s := range snapshots {
		fmt.Printf("%-14s  %9.4f  %9.4f  %9.4f  %9.4f  %-12s  %6.3f %6.3f %6.3f  %s\n",
			shortID(s.CycleID), s.ReflectiveFieldResonance, s.EvolutionDriftRate,
			s.MetaIntegrityScore, s.AdaptiveBiasAdjustment, s.PropagationState,
			s.Alpha, s.Beta, s.Gamma,
			s.Timestamp.Format("2006-01-02T15:04:05Z"))
	}

	rec, found, err := store.LoadEngine(instrument)
	if err != nil {
		return err
	}
	if found {
		fmt.Printf("\nCurrent: mode=%s variance=%.4f (cycle %s)\n",
			rec.Mode, rec.State.FieldVariance, shortID(rec.CycleID))
	}
	return nil
}

// #endregion history-mode

// #region audit-mode

func runAuditMode(store *state.Store, instrument string, last int, jsonOut bool) error {
	records, err := store.ListAudits(instrument, last)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "no audit records found")
		return nil
	}

	if jsonOut {
		return printJSON(records)
	}

	fmt.Printf("%-14s  %-5s  %8s  %-9s  %-8s  %s\n",
		"Cycle", "Dec", "TII", "State", "Feedback", "Reason")
	for _, r := range records {
		fb := "-"
		if r.FeedbackSent {
			fb = "sent"
		}
		fmt.Printf("%-14s  %-5s  %8.4f  %-9s  %-8s  %s\n",
			shortID(r.CycleID), r.Decision, r.TIIScore, r.IntegrityState, fb, r.Reason)
	}
	return nil
}

// #endregion audit-mode

// #region health-mode

func runHealthMode(store *state.Store, last int, jsonOut bool) error {
	entries, err := logging.ListEvents(store.DB(), last)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no health events found")
		return nil
	}

	if jsonOut {
		return printJSON(entries)
	}

	fmt.Printf("%-10s  %-14s  %-14s  %s\n", "Instrument", "Cycle", "Kind", "Detail")
	for _, e := range entries {
		fmt.Printf("%-10s  %-14s  %-14s  %s\n",
			e.Instrument, shortID(e.CycleID), e.Kind, e.Detail)
	}
	return nil
}

// #endregion health-mode

// #region dead-letter-mode

func runDeadLetterMode(store *state.Store, last int, jsonOut bool) error {
	records, err := store.ListDeadLetters(last)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "no dead letters found")
		return nil
	}

	if jsonOut {
		return printJSON(records)
	}

	fmt.Printf("%-10s  %-14s  %-9s  %8s  %s\n", "Instrument", "Source", "Severity", "TII", "Reason")
	for _, r := range records {
		fmt.Printf("%-10s  %-14s  %-9s  %8.4f  %s\n",
			r.Instrument, shortID(r.SourceCycleID), r.Severity, r.TIIScore, r.Reason)
	}
	return nil
}

// #endregion dead-letter-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// #endregion output
