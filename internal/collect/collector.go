// Package collect drives the balanced dataset collection loop: paginate over
// the paper source, classify each contribution's statements, and accept
// contributions until every balancing category has reached its target count
// or a page/contribution budget runs out.
package collect

import (
	"time"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/dataset"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/orkg"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/rules"
)

// Source is the paginated paper source. *orkg.Client satisfies it; tests
// feed synthetic pages.
type Source interface {
	Papers(page, size int) (*orkg.PaperPage, error)
	Bundle(contributionID string) ([]orkg.Statement, error)
}

// Config bounds one collection run.
type Config struct {
	// MinPerCategory is the target count every balancing category must
	// reach for the run to finish balanced.
	MinPerCategory int
	// MaxContributions caps the accepted list regardless of balance.
	MaxContributions int
	// PageSize is the paper page size requested from the source.
	PageSize int
	// MaxPages bounds pagination so an unreachable target still
	// terminates.
	MaxPages int
	// Bootstrap is the accepted-count threshold below which every
	// contribution with relevant properties is taken, so early pages
	// cannot starve the dataset. Past it, a contribution must add at
	// least one property in a still-short category.
	Bootstrap int
	// AcceptDelay is slept after each accepted contribution to respect
	// source rate limits. Negative disables.
	AcceptDelay time.Duration

	Rules *rules.Rules
}

func (c Config) withDefaults() Config {
	if c.MinPerCategory <= 0 {
		c.MinPerCategory = 40
	}
	if c.MaxContributions <= 0 {
		c.MaxContributions = 500
	}
	if c.PageSize <= 0 {
		c.PageSize = 50
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 1000
	}
	if c.Bootstrap <= 0 {
		c.Bootstrap = 50
	}
	if c.AcceptDelay == 0 {
		c.AcceptDelay = 50 * time.Millisecond
	}
	if c.Rules == nil {
		c.Rules = rules.Default()
	}
	return c
}

// Events are optional progress callbacks; nil fields are skipped.
type Events struct {
	PageStart func(page, totalPages, accepted int, counts map[classify.Category]int, needed []classify.Category)
	Accepted  func(contrib dataset.Contribution, added map[classify.Category]int, accepted int)
	PageError func(page int, err error)
}

// Result is the outcome of one collection run. An unbalanced result is a
// normal outcome when the source simply does not hold enough of a category.
type Result struct {
	Contributions  []dataset.Contribution
	CategoryCounts map[classify.Category]int
	Balanced       bool
	PagesFetched   int
	Elapsed        time.Duration
}

// Needed lists the categories still below target, in canonical order.
func Needed(counts map[classify.Category]int, min int) []classify.Category {
	var out []classify.Category
	for _, cat := range classify.Categories() {
		if counts[cat] < min {
			out = append(out, cat)
		}
	}
	return out
}

// Collector owns the mutable collection state for one run. It is not safe
// for concurrent use and is not meant to be reused.
type Collector struct {
	source Source
	cfg    Config
	events Events

	counts   map[classify.Category]int
	accepted []dataset.Contribution
	page     int
}

// New returns a collector over source with defaults applied to cfg.
func New(source Source, cfg Config, events Events) *Collector {
	return &Collector{
		source: source,
		cfg:    cfg.withDefaults(),
		events: events,
	}
}

// Run executes the collection loop until balance is reached or a budget is
// exhausted. Page fetch failures end the run with whatever was collected;
// per-contribution failures (missing bundle, no relevant properties) skip
// just that contribution.
func (c *Collector) Run() *Result {
	start := time.Now()

	c.counts = map[classify.Category]int{}
	for _, cat := range classify.Categories() {
		c.counts[cat] = 0
	}
	c.accepted = nil
	c.page = 0

	for !c.balanced() && c.page < c.cfg.MaxPages && len(c.accepted) < c.cfg.MaxContributions {
		resp, err := c.source.Papers(c.page, c.cfg.PageSize)
		if err != nil {
			if c.events.PageError != nil {
				c.events.PageError(c.page, err)
			}
			break
		}
		if len(resp.Content) == 0 {
			break
		}

		if c.events.PageStart != nil {
			c.events.PageStart(c.page, resp.Page.TotalPages, len(c.accepted), c.snapshot(), Needed(c.counts, c.cfg.MinPerCategory))
		}

		c.scanPage(resp.Content)
		c.page++
	}

	return &Result{
		Contributions:  c.accepted,
		CategoryCounts: c.counts,
		Balanced:       c.balanced(),
		PagesFetched:   c.page,
		Elapsed:        time.Since(start),
	}
}

func (c *Collector) scanPage(papers []orkg.Paper) {
	for _, paper := range papers {
		for _, ref := range paper.Contributions {
			if c.balanced() || len(c.accepted) >= c.cfg.MaxContributions {
				return
			}
			c.consider(paper, ref)
		}
	}
}

func (c *Collector) consider(paper orkg.Paper, ref orkg.ContributionRef) {
	statements, err := c.source.Bundle(ref.ID)
	if err != nil || len(statements) == 0 {
		// No statement bundle means zero relevant properties; skip, not
		// an error.
		logf(ref.ID, "skipped: no statements (err=%v)", err)
		return
	}

	allProps := make([]classify.Property, 0, len(statements))
	for _, stmt := range statements {
		allProps = append(allProps, classify.Classify(stmt.AsStatement(), c.cfg.Rules))
	}
	reproProps := classify.Relevant(allProps)
	if len(reproProps) == 0 {
		logf(ref.ID, "skipped: no reproducibility-relevant properties")
		return
	}

	added := classify.CategoryCounts(reproProps)
	if !c.helps(added) && len(c.accepted) > c.cfg.Bootstrap {
		logf(ref.ID, "rejected: does not help balance")
		return
	}

	label := ref.Label
	if label == "" {
		label = "Contribution"
	}
	contrib := dataset.Contribution{
		ContributionID:            ref.ID,
		ContributionLabel:         label,
		PaperID:                   paper.ID,
		PaperTitle:                paper.Title,
		PaperDOI:                  paper.DOI(),
		AllProperties:             allProps,
		ReproducibilityProperties: reproProps,
		CollectedAt:               time.Now(),
	}
	c.accepted = append(c.accepted, contrib)
	for cat, n := range added {
		c.counts[cat] += n
	}

	if c.events.Accepted != nil {
		c.events.Accepted(contrib, added, len(c.accepted))
	}
	if c.cfg.AcceptDelay > 0 {
		time.Sleep(c.cfg.AcceptDelay)
	}
}

func (c *Collector) balanced() bool {
	for _, cat := range classify.Categories() {
		if c.counts[cat] < c.cfg.MinPerCategory {
			return false
		}
	}
	return true
}

// helps reports whether the contribution adds at least one property in a
// category still below target.
func (c *Collector) helps(added map[classify.Category]int) bool {
	for _, cat := range Needed(c.counts, c.cfg.MinPerCategory) {
		if added[cat] > 0 {
			return true
		}
	}
	return false
}

func (c *Collector) snapshot() map[classify.Category]int {
	out := make(map[classify.Category]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
