package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/augur/internal/eval"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		samplesPath string
		minAccuracy float64
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the weights against labelled samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := eval.LoadSamples(samplesPath)
			if err != nil {
				return err
			}
			e, err := root.engine()
			if err != nil {
				return err
			}

			report, err := eval.Run(cmd.Context(), e, samples)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, report.Format())
			}

			if report.Accuracy < minAccuracy {
				return fmt.Errorf("accuracy %.3f below minimum %.3f", report.Accuracy, minAccuracy)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&samplesPath, "samples", defaultSamplesPath, "gold sample YAML file")
	cmd.Flags().Float64Var(&minAccuracy, "min-accuracy", 0, "fail when accuracy is below this value")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
