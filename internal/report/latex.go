package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/score"
)

// WriteLaTeX writes the three results tables (pillar scores, property-level
// pass rates, tier distribution) as a LaTeX fragment using booktabs rules.
func WriteLaTeX(path string, s score.Statistics) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%% Reproducibility Evaluation Results\n")
	fmt.Fprintf(&b, "%% Generated: %s\n", s.Timestamp)
	fmt.Fprintf(&b, "%% Rule: Inapplicable = 100%% (automatic pass)\n\n")

	n := s.TotalContributions

	b.WriteString("\\begin{table}[htbp]\n\\centering\n")
	fmt.Fprintf(&b, "\\caption{Reproducibility Score Results (n=%d)}\n", n)
	b.WriteString("\\label{tab:repro-scores}\n\\begin{tabular}{lcccc}\n\\toprule\n")
	b.WriteString("\\textbf{Pillar} & \\textbf{Mean} & \\textbf{Std} & \\textbf{Median} & \\textbf{Range} \\\\\n\\midrule\n")
	writePillarRow(&b, "Availability", s.Pillars.Availability)
	writePillarRow(&b, "Accessibility", s.Pillars.Accessibility)
	writePillarRow(&b, "Linkability", s.Pillars.Linkability)
	writePillarRow(&b, "License", s.Pillars.License)
	b.WriteString("\\midrule\n")
	fmt.Fprintf(&b, "\\textbf{Overall} & %.1f\\%% & %.1f & %.1f & %.0f--%.0f \\\\\n",
		s.Pillars.Overall.Mean, s.Pillars.Overall.Std, s.Pillars.Overall.Median,
		s.Pillars.Overall.Min, s.Pillars.Overall.Max)
	b.WriteString("\\bottomrule\n\\end{tabular}\n\\end{table}\n\n")

	b.WriteString("\\begin{table}[htbp]\n\\centering\n")
	b.WriteString("\\caption{Property-Level Pass Rates}\n")
	b.WriteString("\\label{tab:property-rates}\n\\begin{tabular}{lccc}\n\\toprule\n")
	b.WriteString("\\textbf{Check} & \\textbf{Applicable} & \\textbf{Pass} & \\textbf{Rate} \\\\\n\\midrule\n")
	fmt.Fprintf(&b, "URL Accessibility & %d & %d & %.1f\\%% \\\\\n",
		s.URLAccessibility.Total, s.URLAccessibility.Accessible, s.URLAccessibility.Rate)
	fmt.Fprintf(&b, "Resource Linkability & %d & %d & %.1f\\%% \\\\\n",
		s.ResourceLinkability.Total, s.ResourceLinkability.Linked, s.ResourceLinkability.Rate)
	fmt.Fprintf(&b, "Repository License & %d & %d & %.1f\\%% \\\\\n",
		s.RepoLicense.Total, s.RepoLicense.Licensed, s.RepoLicense.Rate)
	b.WriteString("\\bottomrule\n\\end{tabular}\n\\end{table}\n\n")

	b.WriteString("\\begin{table}[htbp]\n\\centering\n")
	b.WriteString("\\caption{Reproducibility Tier Distribution}\n")
	b.WriteString("\\label{tab:repro-tiers}\n\\begin{tabular}{lcc}\n\\toprule\n")
	b.WriteString("\\textbf{Tier} & \\textbf{Count} & \\textbf{Percent} \\\\\n\\midrule\n")
	writeTierRow(&b, "Excellent ($\\geq$80\\%)", s.Tiers.Excellent, n)
	writeTierRow(&b, "Good (60--79\\%)", s.Tiers.Good, n)
	writeTierRow(&b, "Fair (40--59\\%)", s.Tiers.Fair, n)
	writeTierRow(&b, "Poor ($<$40\\%)", s.Tiers.Poor, n)
	b.WriteString("\\bottomrule\n\\end{tabular}\n\\end{table}\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write latex tables: %w", err)
	}
	return nil
}

func writePillarRow(b *strings.Builder, name string, sum score.Summary) {
	fmt.Fprintf(b, "%s & %.1f\\%% & %.1f & %.1f & %.0f--%.0f \\\\\n",
		name, sum.Mean, sum.Std, sum.Median, sum.Min, sum.Max)
}

func writeTierRow(b *strings.Builder, label string, count, total int) {
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(count) / float64(total)
	}
	fmt.Fprintf(b, "%s & %d & %.1f\\%% \\\\\n", label, count, pct)
}
