package collect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/dataset"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/orkg"
)

// fakeSource serves synthetic paper pages. Every contribution id maps to a
// fixed statement bundle.
type fakeSource struct {
	pages   [][]orkg.Paper
	bundles map[string][]orkg.Statement
	pageErr error

	paperCalls  int
	bundleCalls int
}

func (f *fakeSource) Papers(page, size int) (*orkg.PaperPage, error) {
	f.paperCalls++
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	resp := &orkg.PaperPage{}
	resp.Page.TotalPages = len(f.pages)
	if page < len(f.pages) {
		resp.Content = f.pages[page]
	}
	return resp, nil
}

func (f *fakeSource) Bundle(contributionID string) ([]orkg.Statement, error) {
	f.bundleCalls++
	b, ok := f.bundles[contributionID]
	if !ok {
		return nil, errors.New("no bundle")
	}
	return b, nil
}

func statement(predicateLabel, objectID, objectLabel, class string) orkg.Statement {
	var s orkg.Statement
	s.Predicate.ID = "P1"
	s.Predicate.Label = predicateLabel
	s.Object.ID = objectID
	s.Object.Label = objectLabel
	s.Object.Class = class
	return s
}

// literalBundle yields one reproducibility-relevant literal property.
func literalBundle() []orkg.Statement {
	return []orkg.Statement{statement("source code", "L1", "v1.0", "literal")}
}

// richBundle yields one relevant property in every balancing category.
func richBundle() []orkg.Statement {
	return []orkg.Statement{
		statement("source code", "L1", "https://github.com/o/r", "literal"),
		statement("dataset url", "L2", "https://example.org/data.zip", "literal"),
		statement("uses method", "wikidata:Q1", "Method", "resource"),
		statement("uses model", "R42", "Model", "resource"),
		statement("software version", "L3", "v1.0", "literal"),
	}
}

func onePage(contribs ...string) *fakeSource {
	paper := orkg.Paper{ID: "R1", Title: "Paper"}
	bundles := map[string][]orkg.Statement{}
	for _, id := range contribs {
		paper.Contributions = append(paper.Contributions, orkg.ContributionRef{ID: id, Label: "Contribution"})
		bundles[id] = richBundle()
	}
	return &fakeSource{pages: [][]orkg.Paper{{paper}}, bundles: bundles}
}

func testConfig() Config {
	return Config{
		MinPerCategory:   2,
		MaxContributions: 100,
		PageSize:         10,
		MaxPages:         10,
		Bootstrap:        1,
		AcceptDelay:      -1,
	}
}

func TestRun_BalancedTermination(t *testing.T) {
	src := onePage("C1", "C2", "C3", "C4", "C5")
	res := New(src, testConfig(), Events{}).Run()

	if !res.Balanced {
		t.Fatalf("expected balanced, counts = %v", res.CategoryCounts)
	}
	// Two rich contributions satisfy min 2 everywhere; scanning stops mid-page.
	if len(res.Contributions) != 2 {
		t.Fatalf("accepted = %d", len(res.Contributions))
	}
	if src.bundleCalls != 2 {
		t.Fatalf("bundle calls = %d", src.bundleCalls)
	}
	for _, cat := range classify.Categories() {
		if res.CategoryCounts[cat] < 2 {
			t.Fatalf("category %s = %d", cat, res.CategoryCounts[cat])
		}
	}
}

func TestRun_CapNeverExceeded(t *testing.T) {
	src := onePage("C1", "C2", "C3", "C4", "C5", "C6")
	cfg := testConfig()
	cfg.MinPerCategory = 1000 // unreachable
	cfg.MaxContributions = 3
	res := New(src, cfg, Events{}).Run()

	if res.Balanced {
		t.Fatalf("expected unbalanced")
	}
	if len(res.Contributions) != 3 {
		t.Fatalf("accepted = %d", len(res.Contributions))
	}
}

func TestRun_FinitePagesOnUnreachableTarget(t *testing.T) {
	// Endless identical pages; the target can never be reached because the
	// bundles only ever produce literals.
	paper := orkg.Paper{ID: "R1", Contributions: []orkg.ContributionRef{{ID: "C1"}}}
	pages := make([][]orkg.Paper, 100)
	for i := range pages {
		pages[i] = []orkg.Paper{paper}
	}
	src := &fakeSource{pages: pages, bundles: map[string][]orkg.Statement{"C1": literalBundle()}}

	cfg := testConfig()
	cfg.MinPerCategory = 50
	cfg.MaxPages = 5
	res := New(src, cfg, Events{}).Run()

	if res.Balanced {
		t.Fatalf("expected unbalanced")
	}
	if res.PagesFetched != 5 || src.paperCalls != 5 {
		t.Fatalf("pages = %d calls = %d", res.PagesFetched, src.paperCalls)
	}
}

func TestRun_EmptyPageEndsRun(t *testing.T) {
	src := &fakeSource{pages: [][]orkg.Paper{{}}}
	res := New(src, testConfig(), Events{}).Run()
	if len(res.Contributions) != 0 || res.PagesFetched != 0 {
		t.Fatalf("got %+v", res)
	}
}

func TestRun_PageErrorEndsRunWithPartialResult(t *testing.T) {
	src := onePage("C1")
	cfg := testConfig()
	cfg.MinPerCategory = 50

	var gotPage int
	var gotErr error
	events := Events{PageError: func(page int, err error) { gotPage, gotErr = page, err }}

	// First page succeeds, second errors.
	collector := New(src, cfg, events)
	src.pages = append(src.pages, nil)
	res := collector.Run()
	if len(res.Contributions) != 1 {
		t.Fatalf("accepted = %d", len(res.Contributions))
	}

	src2 := &fakeSource{pageErr: errors.New("boom")}
	res2 := New(src2, cfg, events).Run()
	if len(res2.Contributions) != 0 {
		t.Fatalf("accepted = %d", len(res2.Contributions))
	}
	if gotPage != 0 || gotErr == nil {
		t.Fatalf("page = %d err = %v", gotPage, gotErr)
	}
}

func TestRun_BootstrapAcceptsUnhelpfulContributions(t *testing.T) {
	// All-literal bundles: once literal is satisfied they no longer help,
	// but below the bootstrap threshold they are accepted anyway.
	paper := orkg.Paper{ID: "R1"}
	bundles := map[string][]orkg.Statement{}
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("C%d", i)
		paper.Contributions = append(paper.Contributions, orkg.ContributionRef{ID: id})
		bundles[id] = literalBundle()
	}
	src := &fakeSource{pages: [][]orkg.Paper{{paper}}, bundles: bundles}

	cfg := testConfig()
	cfg.MinPerCategory = 1 // literal satisfied after the first accept
	cfg.Bootstrap = 4
	cfg.MaxPages = 1
	res := New(src, cfg, Events{}).Run()

	// Balanced never triggers (other categories stay empty), so all six are
	// considered; the first five fall within the bootstrap window (accepted
	// count <= 4 when considered), the sixth is rejected as unhelpful.
	if len(res.Contributions) != 5 {
		t.Fatalf("accepted = %d", len(res.Contributions))
	}
}

func TestRun_PostBootstrapRejectsUnhelpful(t *testing.T) {
	paper := orkg.Paper{ID: "R1"}
	bundles := map[string][]orkg.Statement{
		"LIT1": literalBundle(),
		"LIT2": literalBundle(),
		"LIT3": literalBundle(),
		"RICH": richBundle(),
	}
	for _, id := range []string{"LIT1", "LIT2", "LIT3", "RICH"} {
		paper.Contributions = append(paper.Contributions, orkg.ContributionRef{ID: id})
	}
	src := &fakeSource{pages: [][]orkg.Paper{{paper}}, bundles: bundles}

	cfg := testConfig()
	cfg.MinPerCategory = 2
	cfg.Bootstrap = 1
	cfg.MaxPages = 1
	res := New(src, cfg, Events{}).Run()

	// LIT1 and LIT2 fill the literal target; LIT3 no longer helps and the
	// accepted count is past the threshold, so it is rejected. RICH still
	// helps the short categories.
	ids := map[string]bool{}
	for _, c := range res.Contributions {
		ids[c.ContributionID] = true
	}
	if !ids["LIT1"] || !ids["LIT2"] || !ids["RICH"] {
		t.Fatalf("accepted = %v", ids)
	}
	if ids["LIT3"] {
		t.Fatalf("LIT3 should be rejected, accepted = %v", ids)
	}
}

func TestRun_SkipsContributionsWithoutRelevantProperties(t *testing.T) {
	paper := orkg.Paper{ID: "R1", Contributions: []orkg.ContributionRef{
		{ID: "IRRELEVANT"}, {ID: "MISSING"}, {ID: "GOOD", Label: "Good one"},
	}}
	src := &fakeSource{
		pages: [][]orkg.Paper{{paper}},
		bundles: map[string][]orkg.Statement{
			"IRRELEVANT": {statement("has research problem", "R9", "Problem", "resource")},
			"GOOD":       richBundle(),
		},
	}
	cfg := testConfig()
	cfg.MinPerCategory = 5
	cfg.MaxPages = 1
	res := New(src, cfg, Events{}).Run()

	if len(res.Contributions) != 1 || res.Contributions[0].ContributionID != "GOOD" {
		t.Fatalf("contributions = %+v", res.Contributions)
	}
	if res.Contributions[0].ContributionLabel != "Good one" {
		t.Fatalf("label = %q", res.Contributions[0].ContributionLabel)
	}
}

func TestRun_EventsFire(t *testing.T) {
	src := onePage("C1", "C2")
	var pageStarts, accepts int
	events := Events{
		PageStart: func(page, totalPages, accepted int, counts map[classify.Category]int, needed []classify.Category) {
			pageStarts++
			if len(needed) == 0 {
				t.Fatalf("expected needed categories at start")
			}
		},
		Accepted: func(contrib dataset.Contribution, added map[classify.Category]int, accepted int) {
			accepts++
		},
	}
	res := New(src, testConfig(), events).Run()
	if pageStarts != 1 {
		t.Fatalf("page starts = %d", pageStarts)
	}
	if accepts != len(res.Contributions) {
		t.Fatalf("accepts = %d, contributions = %d", accepts, len(res.Contributions))
	}
}

func TestNeeded(t *testing.T) {
	counts := map[classify.Category]int{
		classify.CategoryURLRepo: 5,
		classify.CategoryLiteral: 1,
	}
	needed := Needed(counts, 3)
	if len(needed) != 4 {
		t.Fatalf("needed = %v", needed)
	}
	for _, cat := range needed {
		if cat == classify.CategoryURLRepo {
			t.Fatalf("url_repo should be satisfied")
		}
	}
}
