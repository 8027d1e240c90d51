package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/apperr"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/collect"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/dataset"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/orkg"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/rules"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/ui"
)

var (
	collectOutput   string
	collectMinType  int
	collectMaxContr int
	collectPageSize int
	collectMaxPages int
	collectBoot     int
	collectRules    string
	collectTestOnly bool
	collectYes      bool
	collectLogLevel string
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect a balanced contribution dataset from the ORKG API",
	Long: "Collects contributions from the ORKG API until every balancing category " +
		"(url_repo, url_other, resource_onto, resource_internal, literal) reaches the " +
		"configured minimum, or the page/contribution budget runs out.",
	RunE: runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("collect.log-level")
	if err != nil {
		return apperr.User(err.Error())
	}
	quiet := level == "quiet"
	if level == "debug" {
		orkg.SetLogger(cmd.ErrOrStderr())
		collect.SetLogger(cmd.ErrOrStderr())
	}

	minPerType := viper.GetInt("collect.min-per-type")
	if minPerType <= 0 {
		return apperr.Userf("invalid --min-per-type %d (must be positive)", minPerType)
	}
	maxContr := viper.GetInt("collect.max-contributions")
	if maxContr <= 0 {
		return apperr.Userf("invalid --max-contributions %d (must be positive)", maxContr)
	}

	ruleTables := rules.Default()
	if path := viper.GetString("collect.rules"); path != "" {
		ruleTables, err = rules.Load(path)
		if err != nil {
			return apperr.Userf("load rules: %v", err)
		}
	}

	collectUI := ui.NewCollectUI(cmd.OutOrStdout(), quiet)
	client := orkg.New(30 * time.Second)

	total, err := client.Ping()
	if err != nil {
		return fmt.Errorf("cannot reach ORKG API: %w", err)
	}
	collectUI.Connected(total)

	if viper.GetBool("collect.test-only") {
		return nil
	}

	output := viper.GetString("collect.output")
	if output == "" {
		output = "orkg_contributions.json"
	}
	if err := confirmOverwrite(output); err != nil {
		return err
	}

	collectUI.Start(minPerType, maxContr)

	collector := collect.New(client, collect.Config{
		MinPerCategory:   minPerType,
		MaxContributions: maxContr,
		PageSize:         viper.GetInt("collect.page-size"),
		MaxPages:         viper.GetInt("collect.max-pages"),
		Bootstrap:        viper.GetInt("collect.bootstrap"),
		Rules:            ruleTables,
	}, collect.Events{
		PageStart: collectUI.PageStart,
		PageError: collectUI.PageError,
		Accepted: func(c dataset.Contribution, added map[classify.Category]int, accepted int) {
			collectUI.Accepted(c.ContributionID, added, accepted)
		},
	})

	res := collector.Run()
	collectUI.Summary(res.CategoryCounts, minPerType, len(res.Contributions), res.Balanced, res.Elapsed.Seconds())

	if len(res.Contributions) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s no contributions collected, nothing to save\n", ui.GetWarnMark())
		return nil
	}

	doc := dataset.New(res.Contributions)
	if err := dataset.Write(output, doc); err != nil {
		return err
	}
	collectUI.Saved(output)
	return nil
}

// confirmOverwrite asks before clobbering an existing dataset unless --yes
// was given. Declining cancels the run without failing it.
func confirmOverwrite(path string) error {
	if viper.GetBool("collect.yes") {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
				Value(&confirm).
				Affirmative("Overwrite").
				Negative("Cancel"),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return apperr.ErrCancelled
	}
	return nil
}

func init() {
	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "orkg_contributions.json", "Output dataset path")
	collectCmd.Flags().IntVarP(&collectMinType, "min-per-type", "m", 40, "Minimum properties per balancing category")
	collectCmd.Flags().IntVar(&collectMaxContr, "max-contributions", 500, "Maximum contributions to collect")
	collectCmd.Flags().IntVar(&collectPageSize, "page-size", 50, "Paper page size requested from the API")
	collectCmd.Flags().IntVar(&collectMaxPages, "max-pages", 1000, "Maximum pages to fetch")
	collectCmd.Flags().IntVar(&collectBoot, "bootstrap", 50, "Accept every contribution until this many are collected")
	collectCmd.Flags().StringVar(&collectRules, "rules", "", "YAML file overriding the classification rule tables")
	collectCmd.Flags().BoolVar(&collectTestOnly, "test-only", false, "Probe the API connection and exit")
	collectCmd.Flags().BoolVarP(&collectYes, "yes", "y", false, "Overwrite an existing dataset without asking")
	collectCmd.Flags().StringVar(&collectLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("collect.output", collectCmd.Flags().Lookup("output"))
	viper.BindPFlag("collect.min-per-type", collectCmd.Flags().Lookup("min-per-type"))
	viper.BindPFlag("collect.max-contributions", collectCmd.Flags().Lookup("max-contributions"))
	viper.BindPFlag("collect.page-size", collectCmd.Flags().Lookup("page-size"))
	viper.BindPFlag("collect.max-pages", collectCmd.Flags().Lookup("max-pages"))
	viper.BindPFlag("collect.bootstrap", collectCmd.Flags().Lookup("bootstrap"))
	viper.BindPFlag("collect.rules", collectCmd.Flags().Lookup("rules"))
	viper.BindPFlag("collect.test-only", collectCmd.Flags().Lookup("test-only"))
	viper.BindPFlag("collect.yes", collectCmd.Flags().Lookup("yes"))
	viper.BindPFlag("collect.log-level", collectCmd.Flags().Lookup("log-level"))
}
