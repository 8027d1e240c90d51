package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/apperr"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/dataset"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/probe"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/report"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/score"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/ui"
)

var (
	evaluateInput       string
	evaluateOutput      string
	evaluateSkipAccess  bool
	evaluateSkipLicense bool
	evaluateTimeoutSec  int
	evaluateLogLevel    string
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a collected dataset against the four reproducibility pillars",
	Long: "Reads a collected dataset, scores every reproducibility-relevant property on " +
		"Availability, Accessibility, Linkability and License, aggregates the scores per " +
		"contribution and writes the summary, detailed, statistics and LaTeX reports.",
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("evaluate.log-level")
	if err != nil {
		return apperr.User(err.Error())
	}
	quiet := level == "quiet"
	if level == "debug" {
		probe.SetLogger(cmd.ErrOrStderr())
	}

	input := viper.GetString("evaluate.input")
	if input == "" {
		return apperr.User("--input is required")
	}
	outputDir := viper.GetString("evaluate.output")
	if outputDir == "" {
		outputDir = "results"
	}

	doc, err := dataset.Read(input)
	if err != nil {
		// Unreadable input is a configuration error: fail fast.
		return apperr.Userf("%v", err)
	}

	checkAccess := !viper.GetBool("evaluate.skip-accessibility")
	checkLicense := !viper.GetBool("evaluate.skip-licenses")

	timeout := time.Duration(viper.GetInt("evaluate.check-timeout")) * time.Second
	scorer := &score.Scorer{
		URLs:               probe.NewURLProbe(timeout),
		Licenses:           probe.NewLicenseClient(10 * time.Second),
		CheckAccessibility: checkAccess,
		CheckLicense:       checkLicense,
	}

	evalUI := ui.NewEvaluateUI(cmd.OutOrStdout(), quiet)
	evalUI.Start(len(doc.Contributions), checkAccess, checkLicense)

	results := make([]score.ContributionEvaluation, 0, len(doc.Contributions))
	for _, contrib := range doc.Contributions {
		if len(contrib.ReproducibilityProperties) == 0 {
			// Nothing to score; skip the contribution, not the run.
			continue
		}
		start := time.Now()
		r := scorer.EvaluateContribution(score.ContributionRef{
			ContributionID: contrib.ContributionID,
			PaperID:        contrib.PaperID,
			PaperTitle:     contrib.PaperTitle,
		}, contrib.ReproducibilityProperties)
		results = append(results, r)
		evalUI.Row(r, time.Since(start).Seconds())
	}

	stats := score.ComputeStatistics(results)
	evalUI.Report(stats)

	files, err := report.WriteAll(outputDir, results, stats)
	if err != nil {
		return err
	}
	evalUI.Saved(outputDir, files)
	return nil
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateInput, "input", "i", "", "Input dataset path (required)")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "output", "o", "results", "Output directory for reports")
	evaluateCmd.Flags().BoolVar(&evaluateSkipAccess, "skip-accessibility", false, "Skip live URL reachability checks")
	evaluateCmd.Flags().BoolVar(&evaluateSkipLicense, "skip-licenses", false, "Skip live repository license lookups")
	evaluateCmd.Flags().IntVar(&evaluateTimeoutSec, "check-timeout", 8, "Per-URL check timeout in seconds")
	evaluateCmd.Flags().StringVar(&evaluateLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("evaluate.input", evaluateCmd.Flags().Lookup("input"))
	viper.BindPFlag("evaluate.output", evaluateCmd.Flags().Lookup("output"))
	viper.BindPFlag("evaluate.skip-accessibility", evaluateCmd.Flags().Lookup("skip-accessibility"))
	viper.BindPFlag("evaluate.skip-licenses", evaluateCmd.Flags().Lookup("skip-licenses"))
	viper.BindPFlag("evaluate.check-timeout", evaluateCmd.Flags().Lookup("check-timeout"))
	viper.BindPFlag("evaluate.log-level", evaluateCmd.Flags().Lookup("log-level"))
}
