package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/cycle"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
	"github.com/danielpatrickdp/reflex-controller/internal/threshold"
)

// #region stage-configs

// stageConfigs is the daemon's full configuration surface: every stage's
// parameters under one YAML document. Keys absent from the file keep their
// reference defaults, so a file may override a single constant.
type stageConfigs struct {
	Coefficient coefficient.Config `yaml:"coefficient"`
	Threshold   threshold.Config   `yaml:"threshold"`
	Evolution   evolution.Config   `yaml:"evolution"`
	Audit       audit.Config       `yaml:"audit"`
	Feedback    feedbackSettings   `yaml:"feedback"`
	Loop        loopSettings       `yaml:"loop"`
}

// feedbackSettings carries the bus timings as milliseconds for the file.
type feedbackSettings struct {
	DeliveryTimeoutMS int `yaml:"delivery_timeout_ms"`
	QueueDepth        int `yaml:"queue_depth"`
}

// loopSettings carries the cycle timings as milliseconds for the file.
type loopSettings struct {
	CyclePeriodMS int `yaml:"cycle_period_ms"`
	StaleAfterMS  int `yaml:"stale_after_ms"`
}

// #endregion stage-configs

// #region defaults

func defaultStageConfigs() stageConfigs {
	busDefaults := feedback.DefaultConfig()
	loopDefaults := cycle.DefaultConfig()
	return stageConfigs{
		Coefficient: coefficient.DefaultConfig(),
		Threshold:   threshold.DefaultConfig(),
		Evolution:   evolution.DefaultConfig(),
		Audit:       audit.DefaultConfig(),
		Feedback: feedbackSettings{
			DeliveryTimeoutMS: int(busDefaults.DeliveryTimeout / time.Millisecond),
			QueueDepth:        busDefaults.QueueDepth,
		},
		Loop: loopSettings{
			CyclePeriodMS: int(loopDefaults.Period / time.Millisecond),
			StaleAfterMS:  int(loopDefaults.StaleAfter / time.Millisecond),
		},
	}
}

// #endregion defaults

// #region loader

// loadStageConfigs returns the reference defaults, overridden by the YAML
// file at path when one is given.
func loadStageConfigs(path string) (stageConfigs, error) {
	configs := defaultStageConfigs()
	if path == "" {
		return configs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return configs, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return configs, fmt.Errorf("parse config %s: %w", path, err)
	}
	return configs, nil
}

// feedbackConfig converts the file settings to the bus configuration.
func (s stageConfigs) feedbackConfig() feedback.Config {
	return feedback.Config{
		DeliveryTimeout: time.Duration(s.Feedback.DeliveryTimeoutMS) * time.Millisecond,
		QueueDepth:      s.Feedback.QueueDepth,
	}
}

// loopConfig converts the file settings to the cycle configuration.
func (s stageConfigs) loopConfig() cycle.Config {
	return cycle.Config{
		Period:     time.Duration(s.Loop.CyclePeriodMS) * time.Millisecond,
		StaleAfter: time.Duration(s.Loop.StaleAfterMS) * time.Millisecond,
	}
}

// #endregion loader
