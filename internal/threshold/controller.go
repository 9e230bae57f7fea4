package threshold

import (
	"fmt"
	"os"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"gopkg.in/yaml.v3"
)

// #region controller

// Controller recomputes the downstream threshold set from the latest
// coefficient result. Stateless between cycles beyond its configuration,
// so every output is a pure function of the input.
type Controller struct {
	config Config
}

// NewController creates a controller with the given configuration.
func NewController(config Config) *Controller {
	return &Controller{config: config}
}

// #endregion controller

// #region recompute

// Recompute derives the threshold set for one cycle. When the coefficient
// is flagged unstable, the gradient term is amplified for an immediate
// one-shot step instead of the smoothed adaptation.
func (c *Controller) Recompute(result coefficient.Result) Set {
	gradient := result.Gradient
	if result.Unstable {
		gradient *= c.config.UnstableAmplifier
	}

	return Set{
		EMAAlignmentWeight:         apply(c.config.EMAAlignment, gradient, result.IntegrityIndex),
		VWAPSensitivity:            apply(c.config.VWAPSensitivity, gradient, result.IntegrityIndex),
		FusionPrecisionTolerance:   apply(c.config.FusionPrecision, gradient, result.IntegrityIndex),
		ReflexConfidenceMultiplier: apply(c.config.ReflexConfidence, gradient, result.IntegrityIndex),
	}
}

// apply evaluates one affine rule and clamps into its safe bounds.
func apply(r Rule, gradient, integrity float64) float64 {
	v := r.Base + r.GradientGain*gradient + r.IntegrityGain*(integrity-1)
	if v < r.Floor {
		return r.Floor
	}
	if v > r.Ceiling {
		return r.Ceiling
	}
	return v
}

// #endregion recompute

// #region export

// exportDoc is the on-disk shape of an exported threshold set.
type exportDoc struct {
	Timestamp  string `yaml:"timestamp"`
	Instrument string `yaml:"instrument"`
	Set        `yaml:",inline"`
}

// Export writes the threshold set as YAML for the external fusion layer.
// The file is replaced atomically via a temp file in the same directory.
func Export(path, instrument string, set Set) error {
	doc := exportDoc{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Instrument: instrument,
		Set:        set,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal thresholds: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write thresholds: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace thresholds: %w", err)
	}
	return nil
}

// #endregion export
