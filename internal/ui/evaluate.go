package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/score"
)

// EvaluateUI renders the evaluation run: a live per-contribution score table
// followed by the final report.
type EvaluateUI struct {
	writer io.Writer
	quiet  bool
}

// NewEvaluateUI creates a UI handler for the evaluate command.
func NewEvaluateUI(w io.Writer, quiet bool) *EvaluateUI {
	return &EvaluateUI{writer: w, quiet: quiet}
}

// Start prints the run header and the score table heading.
func (e *EvaluateUI) Start(n int, checkAccess, checkLicense bool) {
	if e.quiet {
		return
	}
	fmt.Fprintln(e.writer, Title.Render(fmt.Sprintf("Evaluating %d contributions", n)))
	fmt.Fprintln(e.writer, FormatKeyValue("HTTP checks", fmt.Sprintf("%t", checkAccess)))
	fmt.Fprintln(e.writer, FormatKeyValue("License API", fmt.Sprintf("%t", checkLicense)))
	fmt.Fprintln(e.writer, Dim.Render("Rule: inapplicable = 100% | trimmed mean drops min/max when n >= 4"))
	fmt.Fprintln(e.writer)
	fmt.Fprintf(e.writer, "%-12s %4s %7s %7s %7s %7s %8s %s\n",
		"ID", "#", "Avail", "Access", "Link", "Lic", "Overall", "Tier")
	fmt.Fprintln(e.writer, Muted.Render(strings.Repeat("-", 72)))
}

// Row prints one scored contribution.
func (e *EvaluateUI) Row(r score.ContributionEvaluation, seconds float64) {
	if e.quiet {
		return
	}
	tier := e.tierStyle(r.Tier).Render(fmt.Sprintf("%-10s", r.Tier))
	fmt.Fprintf(e.writer, "%-12s %4d %6.1f%% %6.1f%% %6.1f%% %6.1f%% %7.1f%% %s (%.1fs)\n",
		r.ContributionID, r.NumProperties,
		r.Availability, r.Accessibility, r.Linkability, r.License,
		r.Overall, tier, seconds)
}

// Report renders the final statistics block.
func (e *EvaluateUI) Report(s score.Statistics) {
	if e.quiet {
		return
	}
	var b strings.Builder

	b.WriteString(SectionHeader.Render("Reproducibility evaluation report") + "\n\n")
	b.WriteString(FormatKeyValue("Contributions", fmt.Sprintf("%d", s.TotalContributions)) + "\n")
	b.WriteString(FormatKeyValue("Properties", fmt.Sprintf("%d (URLs:%d Resources:%d Literals:%d)",
		s.Properties.Total, s.Properties.URLs, s.Properties.Resources, s.Properties.Literals)) + "\n\n")

	b.WriteString(Bold.Render("Pillar scores") + "\n")
	b.WriteString(fmt.Sprintf("  %-15s %8s %8s %8s %12s\n", "Pillar", "Mean", "Std", "Median", "Range"))
	e.writePillar(&b, "Availability", s.Pillars.Availability)
	e.writePillar(&b, "Accessibility", s.Pillars.Accessibility)
	e.writePillar(&b, "Linkability", s.Pillars.Linkability)
	e.writePillar(&b, "License", s.Pillars.License)
	e.writePillar(&b, "OVERALL", s.Pillars.Overall)
	b.WriteString("\n")

	n := s.TotalContributions
	b.WriteString(Bold.Render("Tiers") + "\n")
	b.WriteString(fmt.Sprintf("  Excellent (>=80%%): %3d (%s)\n", s.Tiers.Excellent, tierPct(s.Tiers.Excellent, n)))
	b.WriteString(fmt.Sprintf("  Good (60-79%%):     %3d (%s)\n", s.Tiers.Good, tierPct(s.Tiers.Good, n)))
	b.WriteString(fmt.Sprintf("  Fair (40-59%%):     %3d (%s)\n", s.Tiers.Fair, tierPct(s.Tiers.Fair, n)))
	b.WriteString(fmt.Sprintf("  Poor (<40%%):       %3d (%s)\n", s.Tiers.Poor, tierPct(s.Tiers.Poor, n)))
	b.WriteString("\n")

	b.WriteString(Bold.Render("Detailed analysis") + "\n")
	b.WriteString(fmt.Sprintf("  URL Accessibility:    %d/%d (%.1f%%)\n",
		s.URLAccessibility.Accessible, s.URLAccessibility.Total, s.URLAccessibility.Rate))
	b.WriteString(fmt.Sprintf("  Resource Linkability: %d/%d (%.1f%%)\n",
		s.ResourceLinkability.Linked, s.ResourceLinkability.Total, s.ResourceLinkability.Rate))
	b.WriteString(fmt.Sprintf("  Repo Licenses:        %d/%d (%.1f%%)",
		s.RepoLicense.Licensed, s.RepoLicense.Total, s.RepoLicense.Rate))
	if top := topLicenses(s.RepoLicense.Types, 5); top != "" {
		b.WriteString("\n  " + Dim.Render("Top: "+top))
	}

	fmt.Fprintln(e.writer)
	fmt.Fprintln(e.writer, HighlightBox.Render(b.String()))
}

// Saved confirms the report exports.
func (e *EvaluateUI) Saved(dir string, files []string) {
	fmt.Fprintf(e.writer, "\n%s Saved to %s: %s\n",
		GetCheckMark(), Secondary.Render(dir), strings.Join(files, ", "))
}

func (e *EvaluateUI) writePillar(b *strings.Builder, name string, sum score.Summary) {
	b.WriteString(fmt.Sprintf("  %-15s %7.1f%% %7.1f%% %7.1f%% %6.0f-%.0f%%\n",
		name, sum.Mean, sum.Std, sum.Median, sum.Min, sum.Max))
}

func (e *EvaluateUI) tierStyle(tier string) styleWrapper {
	switch tier {
	case score.TierExcellent:
		return Success
	case score.TierGood:
		return Secondary
	case score.TierFair:
		return Warning
	default:
		return Error
	}
}

func tierPct(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(count)/float64(total))
}

// topLicenses formats the most frequent license names, ties broken by name.
func topLicenses(types map[string]int, limit int) string {
	if len(types) == 0 {
		return ""
	}
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if types[names[i]] != types[names[j]] {
			return types[names[i]] > types[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s:%d", name, types[name])
	}
	return strings.Join(parts, ", ")
}
