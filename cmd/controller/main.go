package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/cycle"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/feed"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
	"github.com/danielpatrickdp/reflex-controller/internal/logging"
	"github.com/danielpatrickdp/reflex-controller/internal/state"
	"github.com/danielpatrickdp/reflex-controller/internal/threshold"
)

// #region main
func main() {
	dbPath := envOr("REFLEX_DB", "reflex_controller.db")
	feedAddr := envOr("FEED_ADDR", "localhost:50051")
	instruments := strings.Split(envOr("INSTRUMENTS", "EURUSD"), ",")
	exportDir := os.Getenv("THRESHOLD_EXPORT_DIR")

	configs, err := loadStageConfigs(os.Getenv("REFLEX_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	loopConfig := configs.loopConfig()
	loopConfig.Period = envDuration("CYCLE_PERIOD_MS", loopConfig.Period)
	loopConfig.StaleAfter = envDuration("STALE_AFTER_MS", loopConfig.StaleAfter)

	store, err := state.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	feedClient, err := feed.NewClient(feedAddr)
	if err != nil {
		log.Fatalf("failed to connect to signal feed at %s: %v", feedAddr, err)
	}
	defer feedClient.Close()

	health := func(entry logging.HealthEntry) {
		if err := logging.LogEvent(store.DB(), entry); err != nil {
			log.Printf("health log error: %v", err)
		}
	}

	scheduler := cycle.NewScheduler()
	for _, raw := range instruments {
		instrument := strings.TrimSpace(raw)
		if instrument == "" {
			continue
		}

		config := loopConfig
		if exportDir != "" {
			config.ThresholdExportPath = filepath.Join(exportDir,
				strings.ToLower(instrument)+"_thresholds.yml")
		}

		engine, err := restoreEngine(store, instrument, configs.Evolution)
		if err != nil {
			log.Fatalf("restore %s engine: %v", instrument, err)
		}

		scheduler.Add(cycle.NewRunner(
			instrument,
			config,
			feedClient,
			coefficient.NewCalculator(configs.Coefficient),
			threshold.NewController(configs.Threshold),
			engine,
			audit.NewAuditor(configs.Audit),
			feedback.NewBus(configs.feedbackConfig(), store),
			store,
			health,
		))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Reflex Controller ready.")
	fmt.Printf("  DB: %s | Feed: %s | Instruments: %s\n", dbPath, feedAddr, strings.Join(instruments, ", "))

	scheduler.Run(ctx)
	fmt.Println("Reflex Controller stopped.")
}

// #endregion main

// #region restore

// restoreEngine resumes an instrument from its last committed cycle, or
// starts fresh on uniform weights.
func restoreEngine(store *state.Store, instrument string, config evolution.Config) (*evolution.Engine, error) {
	rec, found, err := store.LoadEngine(instrument)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Printf("[CYCLE] %s: no saved state, starting on uniform weights", instrument)
		return evolution.NewEngine(config), nil
	}

	log.Printf("[CYCLE] %s: resuming from cycle %s (mode %s)", instrument, rec.CycleID, rec.Mode)
	return evolution.NewEngineFrom(config, rec.Weights, rec.State, rec.Mode), nil
}

// #endregion restore

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// #endregion helpers
