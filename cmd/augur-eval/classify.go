package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	var (
		previous string
		explain  bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Decide the mode for one entry",
		Long:  "Decide the mode for one entry. With no arguments the entry is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			prev := mode.None
			if previous != "" {
				p, ok := mode.Parse(previous)
				if !ok {
					return fmt.Errorf("unknown previous mode %q", previous)
				}
				prev = p
			}

			e, err := root.engine()
			if err != nil {
				return err
			}
			ex := e.Explain(text, prev)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if explain {
					return enc.Encode(ex)
				}
				return enc.Encode(ex.Result)
			}
			printExplanation(out, ex, explain)
			return nil
		},
	}
	cmd.Flags().StringVar(&previous, "previous", "", "previous mode for this owner")
	cmd.Flags().BoolVar(&explain, "explain", false, "show fired rules and adjustments")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printExplanation(w io.Writer, ex engine.Explanation, verbose bool) {
	fmt.Fprintf(w, "mode: %s\n", ex.Mode)
	if ex.Previous != mode.None {
		fmt.Fprintf(w, "previous: %s (changed: %v)\n", ex.Previous, ex.Changed())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nmode\tboost\tscore\t")
	for _, m := range mode.All() {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t\n", m, ex.Boosts.Get(m), ex.Scores[m])
	}
	tw.Flush()

	if !verbose {
		return
	}
	s := ex.Signals
	fmt.Fprintf(w, "\nsignals: emotion=%d risk=%d responsibility=%d paralysis=%d priority=%d energy=%d novelty=%d\n",
		s.EmotionVsLogic, s.RiskAvoidance, s.ResponsibilityAvoidance, s.AnalysisParalysis,
		s.PriorityConfusion, s.EnergyLevel, s.NoveltyDrive)
	fmt.Fprintf(w, "signal rules: %s\n", joinOrNone(ex.SignalRules))
	fmt.Fprintf(w, "pattern rules: %s\n", joinOrNone(ex.PatternRules))
	fmt.Fprintf(w, "adjustments: %s\n", joinOrNone(ex.Adjustments))
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
