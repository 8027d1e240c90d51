// Package rules holds the ordered lookup tables that drive property
// classification: repository host patterns, ontology namespace prefixes, and
// the reproducibility keyword vocabulary. The tables ship with compiled
// defaults and can be replaced or extended from a YAML document so that a new
// hosting service or ontology does not require touching scoring logic.
package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// RepoPattern matches one hosting service. Patterns are tried in order and
// the first match wins. A pattern with two capture groups yields
// (owner, name); a pattern with one capture group (archival record services)
// yields the record id as the name with the host type as owner.
type RepoPattern struct {
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`

	re *regexp.Regexp
}

// OntologyPrefix marks one well-known ontology namespace. Matching is a
// case-insensitive substring test, not anchored.
type OntologyPrefix struct {
	Prefix string `yaml:"prefix"`
	Source string `yaml:"source"`
}

// Rules bundles the three tables. A zero-value Rules is not usable; obtain
// one via Default or Load.
type Rules struct {
	RepoPatterns     []RepoPattern    `yaml:"repo_patterns"`
	OntologyPrefixes []OntologyPrefix `yaml:"ontology_prefixes"`
	Keywords         []string         `yaml:"reproducibility_keywords"`
}

// Default returns the compiled built-in tables, mirroring the rubric the
// dataset was designed around.
func Default() *Rules {
	r := &Rules{
		RepoPatterns: []RepoPattern{
			{Pattern: `github\.com/([^/]+)/([^/\s\?#]+)`, Type: "github"},
			{Pattern: `gitlab\.com/([^/]+)/([^/\s\?#]+)`, Type: "gitlab"},
			{Pattern: `bitbucket\.org/([^/]+)/([^/\s\?#]+)`, Type: "bitbucket"},
			{Pattern: `zenodo\.org/record/(\d+)`, Type: "zenodo"},
			{Pattern: `doi\.org/10\.5281/zenodo\.(\d+)`, Type: "zenodo"},
			{Pattern: `huggingface\.co/([^/]+)/([^/\s\?#]+)`, Type: "huggingface"},
		},
		OntologyPrefixes: []OntologyPrefix{
			{Prefix: "wikidata:", Source: "wikidata"},
			{Prefix: "wd:", Source: "wikidata"},
			{Prefix: "http://www.wikidata.org/", Source: "wikidata"},
			{Prefix: "https://www.wikidata.org/", Source: "wikidata"},
			{Prefix: "http://purl.org/", Source: "purl"},
			{Prefix: "https://purl.org/", Source: "purl"},
			{Prefix: "http://www.w3.org/", Source: "w3"},
			{Prefix: "https://www.w3.org/", Source: "w3"},
			{Prefix: "http://schema.org/", Source: "schema.org"},
			{Prefix: "https://schema.org/", Source: "schema.org"},
			{Prefix: "http://dbpedia.org/", Source: "dbpedia"},
			{Prefix: "https://dbpedia.org/", Source: "dbpedia"},
			{Prefix: "doi:", Source: "doi"},
			{Prefix: "orcid:", Source: "orcid"},
		},
		Keywords: []string{
			"source code", "code", "implementation", "repository", "github",
			"dataset", "data", "benchmark", "model", "method", "url",
			"download", "license", "software", "script", "notebook",
			"framework", "library", "tool", "approach", "technique", "algorithm",
		},
	}
	if err := r.compile(); err != nil {
		// Built-in patterns are constants; a failure here is a programming error.
		panic(err)
	}
	return r
}

// Load reads a YAML rules document from path. Sections absent from the
// document fall back to the built-in defaults, so a file may override just
// one table.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	def := Default()
	if len(r.RepoPatterns) == 0 {
		r.RepoPatterns = def.RepoPatterns
	}
	if len(r.OntologyPrefixes) == 0 {
		r.OntologyPrefixes = def.OntologyPrefixes
	}
	if len(r.Keywords) == 0 {
		r.Keywords = def.Keywords
	}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Rules) compile() error {
	for i := range r.RepoPatterns {
		p := &r.RepoPatterns[i]
		if p.re != nil {
			continue
		}
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			return fmt.Errorf("compile repo pattern %q: %w", p.Pattern, err)
		}
		p.re = re
	}
	return nil
}

// MatchRepo tries the repository patterns in order against url and returns
// the host type, owner and name of the first match. A trailing ".git" is
// stripped from the name.
func (r *Rules) MatchRepo(url string) (repoType, owner, name string, ok bool) {
	if url == "" {
		return "", "", "", false
	}
	for i := range r.RepoPatterns {
		p := &r.RepoPatterns[i]
		m := p.re.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		if len(m) >= 3 {
			return p.Type, m[1], strings.TrimSuffix(m[2], ".git"), true
		}
		// Single capture group: archival record id, no distinct owner.
		return p.Type, p.Type, m[1], true
	}
	return "", "", "", false
}

// OntologySource reports the ontology a resource is linked to, checking the
// object id and the text value for any known namespace prefix.
func (r *Rules) OntologySource(objectID, value string) (string, bool) {
	id := strings.ToLower(objectID)
	val := strings.ToLower(value)
	for _, p := range r.OntologyPrefixes {
		prefix := strings.ToLower(p.Prefix)
		if strings.Contains(id, prefix) || strings.Contains(val, prefix) {
			return p.Source, true
		}
	}
	return "", false
}

// Relevant reports whether a predicate label names a reproducibility-related
// property (case-insensitive keyword containment).
func (r *Rules) Relevant(predicateLabel string) bool {
	label := strings.ToLower(predicateLabel)
	for _, kw := range r.Keywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}
