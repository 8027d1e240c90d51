package classify

import (
	"testing"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/rules"
)

func TestClassify(t *testing.T) {
	r := rules.Default()

	t.Run("repo url", func(t *testing.T) {
		p := Classify(Statement{
			PredicateID:    "P1",
			PredicateLabel: "source code",
			ObjectID:       "L1",
			ObjectLabel:    "https://github.com/org/tool",
			ObjectClass:    "literal",
		}, r)
		if p.PropertyType != TypeURL || !p.IsURL || !p.IsRepoURL {
			t.Fatalf("got %+v", p)
		}
		if p.RepoType != "github" || p.RepoOwner != "org" || p.RepoName != "tool" {
			t.Fatalf("repo = %s/%s/%s", p.RepoType, p.RepoOwner, p.RepoName)
		}
		if !p.ReproducibilityRelevant {
			t.Fatalf("expected relevant")
		}
		if p.Category() != CategoryURLRepo {
			t.Fatalf("category = %s", p.Category())
		}
	})

	t.Run("url wins over resource class", func(t *testing.T) {
		p := Classify(Statement{
			ObjectLabel: "https://example.org/data.zip",
			ObjectClass: "resource",
		}, r)
		if p.PropertyType != TypeURL || p.IsResource {
			t.Fatalf("got %+v", p)
		}
		if p.Category() != CategoryURLOther {
			t.Fatalf("category = %s", p.Category())
		}
	})

	t.Run("ontology linked resource", func(t *testing.T) {
		p := Classify(Statement{
			ObjectID:    "wikidata:Q42",
			ObjectLabel: "Douglas Adams",
			ObjectClass: "resource",
		}, r)
		if p.PropertyType != TypeResource || !p.IsOntologyLinked {
			t.Fatalf("got %+v", p)
		}
		if p.OntologySource != "wikidata" {
			t.Fatalf("source = %q", p.OntologySource)
		}
		if p.Category() != CategoryResourceOnto {
			t.Fatalf("category = %s", p.Category())
		}
	})

	t.Run("internal resource", func(t *testing.T) {
		p := Classify(Statement{
			ObjectID:    "R123",
			ObjectLabel: "Deep learning model",
			ObjectClass: "resource",
		}, r)
		if p.PropertyType != TypeResource || p.IsOntologyLinked {
			t.Fatalf("got %+v", p)
		}
		if p.Category() != CategoryResourceInternal {
			t.Fatalf("category = %s", p.Category())
		}
	})

	t.Run("literal", func(t *testing.T) {
		p := Classify(Statement{
			ObjectLabel: "v1.0",
			ObjectClass: "literal",
		}, r)
		if p.PropertyType != TypeLiteral || !p.IsLiteral {
			t.Fatalf("got %+v", p)
		}
		if p.Category() != CategoryLiteral {
			t.Fatalf("category = %s", p.Category())
		}
	})

	t.Run("empty value is literal", func(t *testing.T) {
		p := Classify(Statement{ObjectClass: ""}, r)
		if p.PropertyType != TypeLiteral {
			t.Fatalf("got %+v", p)
		}
	})

	t.Run("classification is total", func(t *testing.T) {
		stmts := []Statement{
			{ObjectLabel: "http://example.org", ObjectClass: "class"},
			{ObjectLabel: "plain text", ObjectClass: "resource"},
			{ObjectLabel: "", ObjectClass: "predicate"},
			{ObjectLabel: "ftp://old.example.org/file", ObjectClass: "literal"},
		}
		for _, stmt := range stmts {
			p := Classify(stmt, r)
			if p.PropertyType != TypeURL && p.PropertyType != TypeResource && p.PropertyType != TypeLiteral {
				t.Fatalf("statement %+v got type %q", stmt, p.PropertyType)
			}
		}
	})
}

func TestRelevant(t *testing.T) {
	props := []Property{
		{PredicateLabel: "a", ReproducibilityRelevant: true},
		{PredicateLabel: "b"},
		{PredicateLabel: "c", ReproducibilityRelevant: true},
	}
	got := Relevant(props)
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].PredicateLabel != "a" || got[1].PredicateLabel != "c" {
		t.Fatalf("got %+v", got)
	}
}

func TestCategoryCounts(t *testing.T) {
	counts := CategoryCounts([]Property{
		{PropertyType: TypeURL, IsRepoURL: true},
		{PropertyType: TypeURL},
		{PropertyType: TypeLiteral},
		{PropertyType: TypeLiteral},
	})
	// Every category is present even with zero hits.
	if len(counts) != len(Categories()) {
		t.Fatalf("len = %d", len(counts))
	}
	if counts[CategoryURLRepo] != 1 || counts[CategoryURLOther] != 1 || counts[CategoryLiteral] != 2 {
		t.Fatalf("counts = %v", counts)
	}
	if counts[CategoryResourceOnto] != 0 || counts[CategoryResourceInternal] != 0 {
		t.Fatalf("counts = %v", counts)
	}
}
