package score

import "sort"

// Tier labels for the coarse banding of an overall score.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierFair      = "Fair"
	TierPoor      = "Poor"
)

// TierFor bands an overall score. Lower bounds are inclusive: exactly 80 is
// Excellent, exactly 60 is Good, exactly 40 is Fair.
func TierFor(overall float64) string {
	switch {
	case overall >= 80:
		return TierExcellent
	case overall >= 60:
		return TierGood
	case overall >= 40:
		return TierFair
	default:
		return TierPoor
	}
}

// TrimmedMean averages scores after discarding exactly one minimum and one
// maximum value, provided there are at least four entries. Shorter lists are
// averaged untrimmed. An empty list is a vacuous pass (100): it cannot occur
// for a contribution with at least one relevant property, but the fallback
// is defined.
func TrimmedMean(scores []float64) float64 {
	if len(scores) == 0 {
		return 100
	}
	if len(scores) < 4 {
		return mean(scores)
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	return mean(sorted[1 : len(sorted)-1])
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// ContributionEvaluation is a contribution plus its per-pillar trimmed means,
// overall score and tier. It is recomputed wholesale from the property
// evaluations, never patched incrementally.
type ContributionEvaluation struct {
	ContributionID string `json:"contribution_id"`
	PaperID        string `json:"paper_id"`
	PaperTitle     string `json:"paper_title"`
	NumProperties  int    `json:"num_properties"`

	Availability  float64 `json:"availability"`
	Accessibility float64 `json:"accessibility"`
	Linkability   float64 `json:"linkability"`
	License       float64 `json:"license"`
	Overall       float64 `json:"overall"`
	Tier          string  `json:"tier"`

	Properties []PropertyEvaluation `json:"properties"`
}

// Aggregate reduces per-property pillar scores into one evaluation. The
// overall score is the plain mean of the four pillar means, not re-trimmed.
func Aggregate(ref ContributionRef, evals []PropertyEvaluation) ContributionEvaluation {
	avail := make([]float64, 0, len(evals))
	access := make([]float64, 0, len(evals))
	link := make([]float64, 0, len(evals))
	license := make([]float64, 0, len(evals))
	for _, ev := range evals {
		avail = append(avail, ev.Availability)
		access = append(access, ev.Accessibility)
		link = append(link, ev.Linkability)
		license = append(license, ev.License)
	}

	availMean := TrimmedMean(avail)
	accessMean := TrimmedMean(access)
	linkMean := TrimmedMean(link)
	licenseMean := TrimmedMean(license)
	overall := (availMean + accessMean + linkMean + licenseMean) / 4

	return ContributionEvaluation{
		ContributionID: ref.ContributionID,
		PaperID:        ref.PaperID,
		PaperTitle:     ref.PaperTitle,
		NumProperties:  len(evals),
		Availability:   availMean,
		Accessibility:  accessMean,
		Linkability:    linkMean,
		License:        licenseMean,
		Overall:        overall,
		Tier:           TierFor(overall),
		Properties:     evals,
	}
}
