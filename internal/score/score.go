// Package score implements the four-pillar reproducibility rubric: per-
// property binary scoring, per-contribution trimmed-mean aggregation, and
// dataset-level statistics.
//
// Scoring rule table:
//
//	| Type           | Availability | Accessibility | Linkability | License     |
//	|----------------|--------------|---------------|-------------|-------------|
//	| URL (repo)     | check value  | check HTTP    | 100% (N/A)  | check API   |
//	| URL (non-repo) | check value  | check HTTP    | 100% (N/A)  | 100% (N/A)  |
//	| Resource       | check value  | 100% (N/A)    | check onto  | 100% (N/A)  |
//	| Literal        | check value  | 100% (N/A)    | 100% (N/A)  | 100% (N/A)  |
//
// A pillar that does not apply to a property scores an automatic 100 so that
// inapplicability never penalises a contribution.
package score

import (
	"strings"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/probe"
)

// Pillar is one of the four scoring dimensions.
type Pillar string

const (
	PillarAvailability  Pillar = "availability"
	PillarAccessibility Pillar = "accessibility"
	PillarLinkability   Pillar = "linkability"
	PillarLicense       Pillar = "license"
)

// Pillars returns the four pillars in their canonical order.
func Pillars() []Pillar {
	return []Pillar{PillarAvailability, PillarAccessibility, PillarLinkability, PillarLicense}
}

// Applicable reports whether a pillar check applies to the property. An
// inapplicable pillar always scores 100.
func Applicable(pillar Pillar, p classify.Property) bool {
	switch pillar {
	case PillarAvailability:
		return true
	case PillarAccessibility:
		return p.PropertyType == classify.TypeURL
	case PillarLinkability:
		return p.PropertyType == classify.TypeResource
	case PillarLicense:
		return p.PropertyType == classify.TypeURL && p.IsRepoURL
	default:
		return false
	}
}

// nullTokens are literal values that count as "no value" for availability.
var nullTokens = map[string]struct{}{
	"n/a":  {},
	"none": {},
	"null": {},
}

// URLChecker probes a URL for reachability.
type URLChecker interface {
	CheckURL(rawURL string) (ok bool, detail string)
}

// LicenseChecker looks up a repository license by host type.
type LicenseChecker interface {
	CheckLicense(repoType, owner, name string) (ok bool, licenseName, detail string)
}

// ContributionRef identifies the contribution a property belongs to; it is
// carried through the evaluation for the report exports.
type ContributionRef struct {
	ContributionID string
	PaperID        string
	PaperTitle     string
}

// PropertyEvaluation is one property plus its four pillar scores. Scores are
// exactly 0 or 100; there is no partial credit.
type PropertyEvaluation struct {
	ContributionID string `json:"contribution_id"`
	PaperID        string `json:"paper_id"`
	PaperTitle     string `json:"paper_title"`

	PredicateID    string                `json:"predicate_id"`
	PredicateLabel string                `json:"predicate_label"`
	ObjectID       string                `json:"object_id"`
	PropertyType   classify.PropertyType `json:"property_type"`
	Value          string                `json:"value"`

	Availability        float64 `json:"availability"`
	AvailabilityReason  string  `json:"availability_reason"`
	Accessibility       float64 `json:"accessibility"`
	AccessibilityReason string  `json:"accessibility_reason"`
	Linkability         float64 `json:"linkability"`
	LinkabilityReason   string  `json:"linkability_reason"`
	License             float64 `json:"license"`
	LicenseReason       string  `json:"license_reason"`

	RepoType       string `json:"repo_type,omitempty"`
	OntologySource string `json:"ontology_source,omitempty"`
	LicenseName    string `json:"license_name,omitempty"`
}

// Scorer applies the rubric to classified properties. The live checkers are
// only consulted when the corresponding Check* toggle is set; otherwise the
// pillar passes with reason "Skipped".
type Scorer struct {
	URLs     URLChecker
	Licenses LicenseChecker

	CheckAccessibility bool
	CheckLicense       bool
}

// ScoreProperty evaluates a single property against all four pillars.
// Pillars are independent: availability failing does not affect the others.
func (s *Scorer) ScoreProperty(ref ContributionRef, p classify.Property) PropertyEvaluation {
	ev := PropertyEvaluation{
		ContributionID: ref.ContributionID,
		PaperID:        ref.PaperID,
		PaperTitle:     ref.PaperTitle,
		PredicateID:    p.PredicateID,
		PredicateLabel: p.PredicateLabel,
		ObjectID:       p.ObjectID,
		PropertyType:   p.PropertyType,
		Value:          probe.Truncate(p.Value, 150),
		RepoType:       p.RepoType,
		OntologySource: p.OntologySource,

		// Inapplicable pillars pass automatically.
		Availability:        100,
		Accessibility:       100,
		AccessibilityReason: "Inapplicable (not URL)",
		Linkability:         100,
		LinkabilityReason:   "Inapplicable (not resource)",
		License:             100,
		LicenseReason:       "Inapplicable (not repo URL)",
	}

	s.scoreAvailability(&ev, p)
	if Applicable(PillarAccessibility, p) {
		s.scoreAccessibility(&ev, p)
	}
	if Applicable(PillarLinkability, p) {
		s.scoreLinkability(&ev, p)
	}
	if Applicable(PillarLicense, p) {
		s.scoreLicense(&ev, p)
	}

	return ev
}

func (s *Scorer) scoreAvailability(ev *PropertyEvaluation, p classify.Property) {
	trimmed := strings.TrimSpace(p.Value)
	_, nullLike := nullTokens[strings.ToLower(trimmed)]
	if trimmed != "" && !nullLike {
		ev.Availability = 100
		ev.AvailabilityReason = "Valid: has value"
		return
	}
	ev.Availability = 0
	ev.AvailabilityReason = "Not Valid: empty/null"
}

func (s *Scorer) scoreAccessibility(ev *PropertyEvaluation, p classify.Property) {
	if !s.CheckAccessibility {
		ev.Accessibility = 100
		ev.AccessibilityReason = "Skipped"
		return
	}
	ok, detail := s.URLs.CheckURL(p.Value)
	if ok {
		ev.Accessibility = 100
		ev.AccessibilityReason = "Valid: " + detail
	} else {
		ev.Accessibility = 0
		ev.AccessibilityReason = "Not Valid: " + detail
	}
}

func (s *Scorer) scoreLinkability(ev *PropertyEvaluation, p classify.Property) {
	if p.IsOntologyLinked {
		source := p.OntologySource
		if source == "" {
			source = "ontology"
		}
		ev.Linkability = 100
		ev.LinkabilityReason = "Valid: linked to " + source
		return
	}
	objectID := p.ObjectID
	if objectID == "" {
		objectID = "?"
	}
	ev.Linkability = 0
	ev.LinkabilityReason = "Not Valid: internal ORKG resource " + objectID
}

func (s *Scorer) scoreLicense(ev *PropertyEvaluation, p classify.Property) {
	if !s.CheckLicense {
		ev.License = 100
		ev.LicenseReason = "Skipped"
		return
	}
	ok, name, detail := s.Licenses.CheckLicense(p.RepoType, p.RepoOwner, p.RepoName)
	ev.LicenseName = name
	if ok {
		ev.License = 100
		ev.LicenseReason = "Valid: " + detail
	} else {
		ev.License = 0
		ev.LicenseReason = "Not Valid: " + detail
	}
}

// EvaluateContribution scores every property and reduces the pillar score
// lists to one ContributionEvaluation.
func (s *Scorer) EvaluateContribution(ref ContributionRef, props []classify.Property) ContributionEvaluation {
	evals := make([]PropertyEvaluation, 0, len(props))
	for _, p := range props {
		evals = append(evals, s.ScoreProperty(ref, p))
	}
	return Aggregate(ref, evals)
}
