// Package report writes the derived views of an evaluation run: the
// per-contribution summary CSV, the per-property detailed CSV, the
// machine-readable statistics document, and the typeset LaTeX tables.
// All outputs are pure projections of the evaluation results.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/score"
)

// Output file names inside the results directory.
const (
	SummaryFile    = "scores.csv"
	DetailedFile   = "detailed.csv"
	StatisticsFile = "statistics.json"
	LaTeXFile      = "tables.tex"
)

// WriteAll writes every report into dir (created if missing) and returns the
// file names written.
func WriteAll(dir string, results []score.ContributionEvaluation, stats score.Statistics) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	if err := WriteSummaryCSV(filepath.Join(dir, SummaryFile), results); err != nil {
		return nil, err
	}
	if err := WriteDetailedCSV(filepath.Join(dir, DetailedFile), results); err != nil {
		return nil, err
	}
	if err := WriteStatisticsJSON(filepath.Join(dir, StatisticsFile), stats); err != nil {
		return nil, err
	}
	if err := WriteLaTeX(filepath.Join(dir, LaTeXFile), stats); err != nil {
		return nil, err
	}
	return []string{SummaryFile, DetailedFile, StatisticsFile, LaTeXFile}, nil
}

// WriteSummaryCSV writes one row per contribution.
func WriteSummaryCSV(path string, results []score.ContributionEvaluation) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{
			"Contribution_ID", "Paper_ID", "Paper_Title", "Num_Props",
			"Availability%", "Accessibility%", "Linkability%", "License%",
			"Overall%", "Tier",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, r := range results {
			row := []string{
				r.ContributionID, r.PaperID, truncate(r.PaperTitle, 70),
				fmt.Sprintf("%d", r.NumProperties),
				fmt.Sprintf("%.1f", r.Availability),
				fmt.Sprintf("%.1f", r.Accessibility),
				fmt.Sprintf("%.1f", r.Linkability),
				fmt.Sprintf("%.1f", r.License),
				fmt.Sprintf("%.1f", r.Overall),
				r.Tier,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteDetailedCSV writes one row per evaluated property.
func WriteDetailedCSV(path string, results []score.ContributionEvaluation) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{
			"Contribution_ID", "Paper_ID", "Paper_Title",
			"Predicate_ID", "Predicate_Label", "Object_ID", "Property_Type", "Value",
			"Availability%", "Avail_Reason",
			"Accessibility%", "Access_Reason",
			"Linkability%", "Link_Reason",
			"License%", "Lic_Reason",
			"Repo_Type", "Ontology_Source", "License_Name",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, r := range results {
			for _, p := range r.Properties {
				row := []string{
					p.ContributionID, p.PaperID, truncate(p.PaperTitle, 50),
					p.PredicateID, p.PredicateLabel,
					p.ObjectID, string(p.PropertyType), truncate(p.Value, 80),
					fmt.Sprintf("%.0f", p.Availability), p.AvailabilityReason,
					fmt.Sprintf("%.0f", p.Accessibility), p.AccessibilityReason,
					fmt.Sprintf("%.0f", p.Linkability), p.LinkabilityReason,
					fmt.Sprintf("%.0f", p.License), p.LicenseReason,
					p.RepoType, p.OntologySource, p.LicenseName,
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteStatisticsJSON writes the statistics document as indented JSON.
func WriteStatisticsJSON(path string, stats score.Statistics) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encode statistics: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}
	return nil
}

func writeCSV(path string, fill func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
