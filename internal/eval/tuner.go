package eval

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/scorer"
)

// DefaultSteps are the calibration nudges tried per mode.
var DefaultSteps = []float64{-0.1, -0.05, 0.05, 0.1}

const maxTunePasses = 5

// TuneCalibration searches per-mode calibration factors one mode at a time,
// in canonical order, keeping a nudge only when accuracy strictly improves.
// It stops after a pass with no improvement. base is not modified.
func TuneCalibration(ctx context.Context, base scorer.Weights, samples []Sample, steps []float64) (scorer.Weights, Report, error) {
	if len(steps) == 0 {
		steps = DefaultSteps
	}

	best := base.Clone()
	bestReport, err := evaluate(ctx, best, samples)
	if err != nil {
		return scorer.Weights{}, Report{}, err
	}

	for pass := 0; pass < maxTunePasses; pass++ {
		improved := false
		for _, m := range mode.All() {
			for _, step := range steps {
				factor := best.Calibration[m] + step
				if factor <= 0 {
					continue
				}
				candidate := best.Clone()
				candidate.Calibration[m] = factor

				report, err := evaluate(ctx, candidate, samples)
				if err != nil {
					return scorer.Weights{}, Report{}, err
				}
				if report.Accuracy > bestReport.Accuracy {
					best, bestReport = candidate, report
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}

	if best.Name == base.Name {
		best.Name = base.Name + "-tuned"
	}
	return best, bestReport, nil
}

func evaluate(ctx context.Context, w scorer.Weights, samples []Sample) (Report, error) {
	s, err := scorer.New(w)
	if err != nil {
		return Report{}, fmt.Errorf("build scorer: %w", err)
	}
	return Run(ctx, engine.New(s), samples)
}
