// Package dataset defines the persisted collection document: collection
// metadata plus the contribution records with their full and filtered
// property lists.
package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
)

// Contribution is one collected contribution with its classified properties.
type Contribution struct {
	ContributionID    string `json:"contribution_id"`
	ContributionLabel string `json:"contribution_label"`
	PaperID           string `json:"paper_id"`
	PaperTitle        string `json:"paper_title"`
	PaperDOI          string `json:"paper_doi,omitempty"`

	AllProperties             []classify.Property `json:"all_properties"`
	ReproducibilityProperties []classify.Property `json:"reproducibility_properties"`

	CollectedAt time.Time `json:"collected_at"`
}

// Metadata describes one collection run.
type Metadata struct {
	RunID                string                        `json:"run_id"`
	CollectedAt          time.Time                     `json:"collected_at"`
	TotalContributions   int                           `json:"total_contributions"`
	TotalProperties      int                           `json:"total_properties"`
	PropertyDistribution map[classify.Category]int     `json:"property_distribution"`
	PropertyPercentages  map[classify.Category]float64 `json:"property_percentages"`
	RepoTypes            map[string]int                `json:"repo_types"`
	OntologySources      map[string]int                `json:"ontology_sources"`
	Source               string                        `json:"source"`
}

// Document is the on-disk dataset format.
type Document struct {
	Metadata      Metadata       `json:"metadata"`
	Contributions []Contribution `json:"contributions"`
}

// New assembles a document from collected contributions, computing the
// metadata histograms over the reproducibility-relevant properties.
func New(contributions []Contribution) *Document {
	counts := map[classify.Category]int{}
	for _, c := range classify.Categories() {
		counts[c] = 0
	}
	repoTypes := map[string]int{}
	ontoSources := map[string]int{}

	total := 0
	for _, c := range contributions {
		for _, p := range c.ReproducibilityProperties {
			counts[p.Category()]++
			total++
			if p.RepoType != "" {
				repoTypes[p.RepoType]++
			}
			if p.OntologySource != "" {
				ontoSources[p.OntologySource]++
			}
		}
	}

	percentages := map[classify.Category]float64{}
	for cat, n := range counts {
		if total > 0 {
			percentages[cat] = math.Round(1000*float64(n)/float64(total)) / 10
		} else {
			percentages[cat] = 0
		}
	}

	return &Document{
		Metadata: Metadata{
			RunID:                uuid.NewString(),
			CollectedAt:          time.Now(),
			TotalContributions:   len(contributions),
			TotalProperties:      total,
			PropertyDistribution: counts,
			PropertyPercentages:  percentages,
			RepoTypes:            repoTypes,
			OntologySources:      ontoSources,
			Source:               "ORKG API",
		},
		Contributions: contributions,
	}
}

// Write saves the document as indented JSON, creating parent directories as
// needed.
func Write(path string, doc *Document) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// Read loads a dataset document from path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return &doc, nil
}
