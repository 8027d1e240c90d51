package score

import (
	"math"
	"sort"
	"time"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
)

// Summary is the five-number description of one score distribution, rounded
// to one decimal.
type Summary struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Statistics is the dataset-level aggregate over all contribution
// evaluations. Purely derived; recomputed from scratch every time.
type Statistics struct {
	TotalContributions int    `json:"total_contributions"`
	Timestamp          string `json:"timestamp"`

	Pillars struct {
		Availability  Summary `json:"availability"`
		Accessibility Summary `json:"accessibility"`
		Linkability   Summary `json:"linkability"`
		License       Summary `json:"license"`
		Overall       Summary `json:"overall"`
	} `json:"pillars"`

	Tiers struct {
		Excellent int `json:"excellent"`
		Good      int `json:"good"`
		Fair      int `json:"fair"`
		Poor      int `json:"poor"`
	} `json:"tiers"`

	Properties struct {
		Total     int `json:"total"`
		URLs      int `json:"urls"`
		Resources int `json:"resources"`
		Literals  int `json:"literals"`
		Repos     int `json:"repos"`
	} `json:"properties"`

	URLAccessibility struct {
		Total      int     `json:"total"`
		Accessible int     `json:"accessible"`
		Rate       float64 `json:"rate"`
	} `json:"url_accessibility"`

	ResourceLinkability struct {
		Total  int     `json:"total"`
		Linked int     `json:"linked"`
		Rate   float64 `json:"rate"`
	} `json:"resource_linkability"`

	RepoLicense struct {
		Total    int            `json:"total"`
		Licensed int            `json:"licensed"`
		Rate     float64        `json:"rate"`
		Types    map[string]int `json:"types"`
	} `json:"repo_license"`
}

// ComputeStatistics derives the dataset aggregate from results. Pass rates
// with an empty applicable set report 100 (vacuous full pass).
func ComputeStatistics(results []ContributionEvaluation) Statistics {
	var s Statistics
	s.TotalContributions = len(results)
	s.Timestamp = time.Now().Format(time.RFC3339)
	s.RepoLicense.Types = map[string]int{}

	avail := make([]float64, 0, len(results))
	access := make([]float64, 0, len(results))
	link := make([]float64, 0, len(results))
	license := make([]float64, 0, len(results))
	overall := make([]float64, 0, len(results))

	for _, r := range results {
		avail = append(avail, r.Availability)
		access = append(access, r.Accessibility)
		link = append(link, r.Linkability)
		license = append(license, r.License)
		overall = append(overall, r.Overall)

		switch r.Tier {
		case TierExcellent:
			s.Tiers.Excellent++
		case TierGood:
			s.Tiers.Good++
		case TierFair:
			s.Tiers.Fair++
		default:
			s.Tiers.Poor++
		}

		for _, p := range r.Properties {
			s.Properties.Total++
			switch p.PropertyType {
			case classify.TypeURL:
				s.Properties.URLs++
				s.URLAccessibility.Total++
				if p.Accessibility == 100 {
					s.URLAccessibility.Accessible++
				}
				if p.RepoType != "" {
					s.Properties.Repos++
					s.RepoLicense.Total++
					if p.License == 100 {
						s.RepoLicense.Licensed++
					}
					if p.LicenseName != "" {
						s.RepoLicense.Types[p.LicenseName]++
					}
				}
			case classify.TypeResource:
				s.Properties.Resources++
				s.ResourceLinkability.Total++
				if p.Linkability == 100 {
					s.ResourceLinkability.Linked++
				}
			default:
				s.Properties.Literals++
			}
		}
	}

	s.Pillars.Availability = summarize(avail)
	s.Pillars.Accessibility = summarize(access)
	s.Pillars.Linkability = summarize(link)
	s.Pillars.License = summarize(license)
	s.Pillars.Overall = summarize(overall)

	s.URLAccessibility.Rate = passRate(s.URLAccessibility.Accessible, s.URLAccessibility.Total)
	s.ResourceLinkability.Rate = passRate(s.ResourceLinkability.Linked, s.ResourceLinkability.Total)
	s.RepoLicense.Rate = passRate(s.RepoLicense.Licensed, s.RepoLicense.Total)

	return s
}

func summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	mn, mx := xs[0], xs[0]
	for _, x := range xs {
		mn = math.Min(mn, x)
		mx = math.Max(mx, x)
	}
	return Summary{
		Mean:   Round1(mean(xs)),
		Std:    Round1(sampleStd(xs)),
		Median: Round1(median(xs)),
		Min:    Round1(mn),
		Max:    Round1(mx),
	}
}

// passRate reports passing/total as a percentage, 100 when nothing was
// applicable.
func passRate(passing, total int) float64 {
	if total == 0 {
		return 100
	}
	return Round1(100 * float64(passing) / float64(total))
}

// sampleStd is the sample standard deviation, 0 when fewer than two values.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return 0.5 * (cp[mid-1] + cp[mid])
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
