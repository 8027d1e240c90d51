// Package orkg is a thin client for the two Open Research Knowledge Graph
// endpoints the pipeline needs: the paginated paper listing and the
// per-contribution statement bundle.
package orkg

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/classify"
)

// DefaultBaseURL is the production ORKG REST API.
const DefaultBaseURL = "https://orkg.org/api"

// paperMediaType is the versioned media type the papers endpoint requires.
const paperMediaType = "application/vnd.orkg.paper.v2+json"

const userAgent = "Mozilla/5.0"

// Client calls the ORKG REST API. The zero value uses http.DefaultClient
// against the production API; both are overridable (tests point BaseURL at
// an httptest server).
type Client struct {
	Client  *http.Client
	BaseURL string
}

// New returns a client with a per-request timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{Client: &http.Client{Timeout: timeout}}
}

// Paper is one paper record with its nested contribution references.
type Paper struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Identifiers   map[string][]string `json:"identifiers"`
	Contributions []ContributionRef   `json:"contributions"`
}

// DOI returns the paper's first DOI identifier, if any.
func (p Paper) DOI() string {
	if dois := p.Identifiers["doi"]; len(dois) > 0 {
		return dois[0]
	}
	return ""
}

// ContributionRef is a contribution as listed under a paper.
type ContributionRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PageInfo carries the pagination envelope of a paper listing.
type PageInfo struct {
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
}

// PaperPage is one page of the paper listing.
type PaperPage struct {
	Content []Paper  `json:"content"`
	Page    PageInfo `json:"page"`
}

// Statement is one predicate–object triple from a statement bundle.
type Statement struct {
	Predicate struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"predicate"`
	Object struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Class string `json:"_class"`
	} `json:"object"`
}

// AsStatement adapts the wire triple to the classifier's input shape. An
// absent object class defaults to literal.
func (s Statement) AsStatement() classify.Statement {
	class := s.Object.Class
	if class == "" {
		class = "literal"
	}
	return classify.Statement{
		PredicateID:    s.Predicate.ID,
		PredicateLabel: s.Predicate.Label,
		ObjectID:       s.Object.ID,
		ObjectLabel:    s.Object.Label,
		ObjectClass:    class,
	}
}

// Papers fetches one page of the paper listing.
func (c *Client) Papers(page, size int) (*PaperPage, error) {
	var out PaperPage
	url := fmt.Sprintf("%s/papers?size=%d&page=%d", c.baseURL(), size, page)
	if err := c.getJSON(url, paperMediaType, &out); err != nil {
		return nil, fmt.Errorf("fetch papers page %d: %w", page, err)
	}
	return &out, nil
}

// Bundle fetches the full statement bundle of a contribution.
func (c *Client) Bundle(contributionID string) ([]Statement, error) {
	var out struct {
		Statements []Statement `json:"statements"`
	}
	url := fmt.Sprintf("%s/statements/%s/bundle", c.baseURL(), contributionID)
	if err := c.getJSON(url, "application/json", &out); err != nil {
		return nil, fmt.Errorf("fetch statement bundle %s: %w", contributionID, err)
	}
	return out.Statements, nil
}

// Ping fetches a single-paper page to verify connectivity and returns the
// total number of papers the API reports.
func (c *Client) Ping() (int, error) {
	page, err := c.Papers(0, 1)
	if err != nil {
		return 0, err
	}
	return page.Page.TotalElements, nil
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base
}

func (c *Client) getJSON(url, accept string, out any) error {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	if accept == paperMediaType {
		req.Header.Set("Content-Type", paperMediaType+";charset=UTF-8")
	}

	resp, err := client.Do(req)
	if err != nil {
		logf("GET %s error=%v", url, err)
		return err
	}
	defer resp.Body.Close()
	logf("GET %s status=%d", url, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
