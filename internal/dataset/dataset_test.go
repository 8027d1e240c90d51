package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
)

func sampleContributions() []Contribution {
	return []Contribution{
		{
			ContributionID: "R101",
			PaperID:        "R100",
			PaperTitle:     "A paper",
			PaperDOI:       "10.1000/xyz",
			ReproducibilityProperties: []classify.Property{
				{PropertyType: classify.TypeURL, IsURL: true, IsRepoURL: true, RepoType: "github", Value: "https://github.com/o/r"},
				{PropertyType: classify.TypeResource, IsResource: true, IsOntologyLinked: true, OntologySource: "wikidata"},
				{PropertyType: classify.TypeLiteral, IsLiteral: true, Value: "v1.0"},
			},
			CollectedAt: time.Now(),
		},
		{
			ContributionID: "R201",
			PaperID:        "R200",
			ReproducibilityProperties: []classify.Property{
				{PropertyType: classify.TypeLiteral, IsLiteral: true, Value: "batch size 64"},
			},
			CollectedAt: time.Now(),
		},
	}
}

func TestNew(t *testing.T) {
	doc := New(sampleContributions())

	m := doc.Metadata
	if m.RunID == "" {
		t.Fatalf("expected run id")
	}
	if m.TotalContributions != 2 || m.TotalProperties != 4 {
		t.Fatalf("totals = %d/%d", m.TotalContributions, m.TotalProperties)
	}
	if m.PropertyDistribution[classify.CategoryURLRepo] != 1 ||
		m.PropertyDistribution[classify.CategoryResourceOnto] != 1 ||
		m.PropertyDistribution[classify.CategoryLiteral] != 2 {
		t.Fatalf("distribution = %v", m.PropertyDistribution)
	}
	if m.PropertyDistribution[classify.CategoryURLOther] != 0 {
		t.Fatalf("distribution = %v", m.PropertyDistribution)
	}
	if m.PropertyPercentages[classify.CategoryLiteral] != 50 {
		t.Fatalf("percentages = %v", m.PropertyPercentages)
	}
	if m.RepoTypes["github"] != 1 || m.OntologySources["wikidata"] != 1 {
		t.Fatalf("repo=%v onto=%v", m.RepoTypes, m.OntologySources)
	}
	if m.Source != "ORKG API" {
		t.Fatalf("source = %q", m.Source)
	}
}

func TestNew_Empty(t *testing.T) {
	doc := New(nil)
	if doc.Metadata.TotalContributions != 0 || doc.Metadata.TotalProperties != 0 {
		t.Fatalf("metadata = %+v", doc.Metadata)
	}
	for cat, pct := range doc.Metadata.PropertyPercentages {
		if pct != 0 {
			t.Fatalf("category %s pct = %v", cat, pct)
		}
	}
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "dataset.json")
	doc := New(sampleContributions())

	if err := Write(path, doc); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got.Metadata.RunID != doc.Metadata.RunID {
		t.Fatalf("run id = %q, want %q", got.Metadata.RunID, doc.Metadata.RunID)
	}
	if len(got.Contributions) != 2 {
		t.Fatalf("len = %d", len(got.Contributions))
	}
	p := got.Contributions[0].ReproducibilityProperties[0]
	if p.PropertyType != classify.TypeURL || !p.IsRepoURL || p.RepoType != "github" {
		t.Fatalf("property = %+v", p)
	}
}

func TestRead_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Read(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}
