// Package classify reduces raw knowledge-graph statements to typed Property
// records. Classification is total: every statement is assigned exactly one
// of the url / resource / literal types, plus the derived flags the scorer
// and the balanced collector work from.
package classify

import (
	"strings"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/rules"
)

// PropertyType is the top-level classification of a statement's object.
type PropertyType string

const (
	TypeURL      PropertyType = "url"
	TypeResource PropertyType = "resource"
	TypeLiteral  PropertyType = "literal"
)

// Category refines PropertyType for dataset balancing.
type Category string

const (
	CategoryURLRepo          Category = "url_repo"
	CategoryURLOther         Category = "url_other"
	CategoryResourceOnto     Category = "resource_onto"
	CategoryResourceInternal Category = "resource_internal"
	CategoryLiteral          Category = "literal"
)

// Categories returns all balancing categories in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryURLRepo,
		CategoryURLOther,
		CategoryResourceOnto,
		CategoryResourceInternal,
		CategoryLiteral,
	}
}

// Statement is the raw predicate–object triple as delivered by the graph API.
type Statement struct {
	PredicateID    string
	PredicateLabel string
	ObjectID       string
	ObjectLabel    string
	ObjectClass    string // "resource", "literal", "class", ...
}

// Property is one statement reduced to a typed record. Created once per
// statement and never mutated afterwards. The JSON field names match the
// persisted dataset format.
type Property struct {
	PredicateID    string       `json:"predicate_id"`
	PredicateLabel string       `json:"predicate_label"`
	ObjectID       string       `json:"object_id"`
	ObjectClass    string       `json:"object_class"`
	PropertyType   PropertyType `json:"property_type"`
	Value          string       `json:"value"`

	IsURL     bool   `json:"is_url"`
	IsRepoURL bool   `json:"is_repo_url"`
	RepoType  string `json:"repo_type,omitempty"`
	RepoOwner string `json:"repo_owner,omitempty"`
	RepoName  string `json:"repo_name,omitempty"`

	IsResource       bool   `json:"is_resource"`
	IsOntologyLinked bool   `json:"is_ontology_linked"`
	OntologySource   string `json:"ontology_source,omitempty"`

	IsLiteral bool `json:"is_literal"`

	ReproducibilityRelevant bool `json:"reproducibility_relevant"`
}

// Classify maps a raw statement to a Property using the given rule tables.
//
// A value starting with an http(s) scheme is a url regardless of object
// class; there is no further URL-syntax validation. Otherwise a "resource"
// object class makes it a resource, anything else a literal. An empty value
// still classifies as literal and is penalised later by the availability
// check, not here.
func Classify(stmt Statement, r *rules.Rules) Property {
	value := stmt.ObjectLabel

	p := Property{
		PredicateID:    stmt.PredicateID,
		PredicateLabel: stmt.PredicateLabel,
		ObjectID:       stmt.ObjectID,
		ObjectClass:    stmt.ObjectClass,
		Value:          value,

		ReproducibilityRelevant: r.Relevant(stmt.PredicateLabel),
	}

	switch {
	case strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://"):
		p.PropertyType = TypeURL
		p.IsURL = true
		if repoType, owner, name, ok := r.MatchRepo(value); ok {
			p.IsRepoURL = true
			p.RepoType = repoType
			p.RepoOwner = owner
			p.RepoName = name
		}
	case stmt.ObjectClass == "resource":
		p.PropertyType = TypeResource
		p.IsResource = true
		if source, ok := r.OntologySource(stmt.ObjectID, value); ok {
			p.IsOntologyLinked = true
			p.OntologySource = source
		}
	default:
		p.PropertyType = TypeLiteral
		p.IsLiteral = true
	}

	return p
}

// Category returns the balancing category of the property.
func (p Property) Category() Category {
	switch p.PropertyType {
	case TypeURL:
		if p.IsRepoURL {
			return CategoryURLRepo
		}
		return CategoryURLOther
	case TypeResource:
		if p.IsOntologyLinked {
			return CategoryResourceOnto
		}
		return CategoryResourceInternal
	default:
		return CategoryLiteral
	}
}

// Relevant filters props down to the reproducibility-relevant ones. Only
// these are scored; the rest exist in the dataset for completeness.
func Relevant(props []Property) []Property {
	var out []Property
	for _, p := range props {
		if p.ReproducibilityRelevant {
			out = append(out, p)
		}
	}
	return out
}

// CategoryCounts tallies props by balancing category.
func CategoryCounts(props []Property) map[Category]int {
	counts := make(map[Category]int, len(Categories()))
	for _, c := range Categories() {
		counts[c] = 0
	}
	for _, p := range props {
		counts[p.Category()]++
	}
	return counts
}
