package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/eval"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/scorer"
)

func newTuneCmd(root *rootOptions) *cobra.Command {
	var (
		samplesPath string
		outPath     string
		steps       []float64
	)
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Search calibration factors that improve sample accuracy",
		Long:  "Search per-mode calibration factors that improve accuracy on the samples. The input weights are never modified; use --out to write the tuned table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := eval.LoadSamples(samplesPath)
			if err != nil {
				return err
			}
			base, err := root.loadWeights()
			if err != nil {
				return err
			}
			s, err := scorer.New(base)
			if err != nil {
				return fmt.Errorf("invalid weights: %w", err)
			}

			before, err := eval.Run(cmd.Context(), engine.New(s), samples)
			if err != nil {
				return err
			}
			tuned, after, err := eval.TuneCalibration(cmd.Context(), base, samples, steps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "accuracy: %.3f -> %.3f\n\ncalibration:\n", before.Accuracy, after.Accuracy)
			for _, m := range mode.All() {
				fmt.Fprintf(out, "  %-12s %.2f -> %.2f\n", m, base.Calibration[m], tuned.Calibration[m])
			}
			fmt.Fprintf(out, "\n%s", after.Format())

			if outPath == "" {
				return nil
			}
			if err := scorer.SaveWeights(outPath, tuned); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nwrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&samplesPath, "samples", defaultSamplesPath, "gold sample YAML file")
	cmd.Flags().StringVar(&outPath, "out", "", "write tuned weights to this YAML file")
	cmd.Flags().Float64SliceVar(&steps, "steps", nil, "calibration nudges to try (default -0.1,-0.05,0.05,0.1)")
	return cmd
}
