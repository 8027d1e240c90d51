package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
)

// CollectUI renders the line-oriented progress of a collection run.
type CollectUI struct {
	writer io.Writer
	quiet  bool
}

// NewCollectUI creates a UI handler for the collect command.
func NewCollectUI(w io.Writer, quiet bool) *CollectUI {
	return &CollectUI{writer: w, quiet: quiet}
}

// Start prints the run header.
func (c *CollectUI) Start(minPerCategory, maxContributions int) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.writer, Title.Render("Balanced dataset collection"))
	fmt.Fprintln(c.writer, FormatKeyValue("Target per category", fmt.Sprintf("%d", minPerCategory)))
	fmt.Fprintln(c.writer, FormatKeyValue("Categories", joinCategories(classify.Categories())))
	fmt.Fprintln(c.writer, FormatKeyValue("Max contributions", fmt.Sprintf("%d", maxContributions)))
	fmt.Fprintln(c.writer)
}

// Connected reports a successful API probe.
func (c *CollectUI) Connected(totalPapers int) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.writer, "%s Connected - %d papers available\n", GetCheckMark(), totalPapers)
}

// PageStart prints one line per fetched page with the current balance state.
func (c *CollectUI) PageStart(page, totalPages, accepted int, counts map[classify.Category]int, needed []classify.Category) {
	if c.quiet {
		return
	}
	pages := "?"
	if totalPages > 0 {
		pages = fmt.Sprintf("%d", totalPages)
	}
	fmt.Fprintf(c.writer, "%s contributions=%d still need: %s\n",
		SectionHeader.Render(fmt.Sprintf("[Page %d/%s]", page, pages)),
		accepted, joinCategories(needed))
	fmt.Fprintf(c.writer, "  %s\n", Dim.Render(formatCounts(counts)))
}

// Accepted prints one line per accepted contribution with the categories it
// added.
func (c *CollectUI) Accepted(contributionID string, added map[classify.Category]int, accepted int) {
	if c.quiet {
		return
	}
	var parts []string
	for _, cat := range classify.Categories() {
		if added[cat] > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", cat, added[cat]))
		}
	}
	fmt.Fprintf(c.writer, "  %s %s [%d] +%s\n",
		GetCheckMark(), contributionID, accepted, strings.Join(parts, ", "))
}

// PageError reports a failed page fetch; the run ends with what it has.
func (c *CollectUI) PageError(page int, err error) {
	fmt.Fprintf(c.writer, "%s page %d failed: %v\n", GetCrossMark(), page, err)
}

// Summary prints the final distribution table and flags any categories that
// stayed below target.
func (c *CollectUI) Summary(counts map[classify.Category]int, minPerCategory, accepted int, balanced bool, elapsedSec float64) {
	if c.quiet {
		return
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	var b strings.Builder
	b.WriteString(SectionHeader.Render("Collection complete") + "\n")
	b.WriteString(FormatKeyValue("Time", fmt.Sprintf("%.1fs", elapsedSec)) + "\n")
	b.WriteString(FormatKeyValue("Contributions", fmt.Sprintf("%d", accepted)) + "\n")
	b.WriteString(FormatKeyValue("Balanced", fmt.Sprintf("%t", balanced)) + "\n\n")
	b.WriteString(Bold.Render(fmt.Sprintf("Property distribution (target: %d each)", minPerCategory)) + "\n")
	for _, cat := range classify.Categories() {
		n := counts[cat]
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		mark := GetCheckMark()
		if n < minPerCategory {
			mark = GetCrossMark()
		}
		b.WriteString(fmt.Sprintf("  %s %-20s %4d (%5.1f%%)\n", mark, cat, n, pct))
	}
	b.WriteString(fmt.Sprintf("    %-20s %4d (100.0%%)", "TOTAL", total))

	fmt.Fprintln(c.writer)
	fmt.Fprintln(c.writer, Box.Render(b.String()))

	if !balanced {
		var missing []string
		for _, cat := range classify.Categories() {
			if counts[cat] < minPerCategory {
				missing = append(missing, fmt.Sprintf("%s (have %d, need %d)", cat, counts[cat], minPerCategory))
			}
		}
		fmt.Fprintf(c.writer, "%s Could not find enough: %s\n", GetWarnMark(), strings.Join(missing, ", "))
		fmt.Fprintln(c.writer, Dim.Render("  This may be due to data scarcity in the source corpus for these categories."))
	}
}

// Saved confirms the dataset write.
func (c *CollectUI) Saved(path string) {
	fmt.Fprintf(c.writer, "\n%s Saved to %s\n", GetCheckMark(), Secondary.Render(path))
}

func joinCategories(cats []classify.Category) string {
	if len(cats) == 0 {
		return "(none)"
	}
	parts := make([]string, len(cats))
	for i, cat := range cats {
		parts[i] = string(cat)
	}
	return strings.Join(parts, ", ")
}

func formatCounts(counts map[classify.Category]int) string {
	keys := make([]string, 0, len(counts))
	for cat := range counts {
		keys = append(keys, string(cat))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, counts[classify.Category(k)]))
	}
	return strings.Join(parts, " ")
}
