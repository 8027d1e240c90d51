// Package probe implements the two live checkers used during scoring: the
// URL reachability probe and the repository license lookup. Both convert
// every transport failure into a negative check result instead of an error,
// so one dead link never aborts an evaluation run.
package probe

import (
	"fmt"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0"

// DefaultCheckTimeout bounds a single reachability probe.
const DefaultCheckTimeout = 8 * time.Second

// URLProbe checks whether a URL is reachable. It issues a HEAD request and
// falls back to GET when the server answers 405 Method Not Allowed.
type URLProbe struct {
	Client *http.Client
}

// NewURLProbe returns a probe with a per-request timeout.
func NewURLProbe(timeout time.Duration) *URLProbe {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &URLProbe{Client: &http.Client{Timeout: timeout}}
}

// CheckURL reports whether rawURL is reachable, with a short human-readable
// detail ("HTTP 200", "HTTP 404", "Error: ...").
func (p *URLProbe) CheckURL(rawURL string) (bool, string) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	ok, detail, status := p.request(client, http.MethodHead, rawURL)
	if !ok && status == http.StatusMethodNotAllowed {
		// Some hosts reject HEAD outright; one GET retry is the only
		// retry policy in the whole pipeline.
		logf("HEAD rejected with 405, retrying GET url=%s", rawURL)
		ok, detail, _ = p.request(client, http.MethodGet, rawURL)
	}
	logf("check url=%s ok=%t detail=%s", rawURL, ok, detail)
	return ok, detail
}

func (p *URLProbe) request(client *http.Client, method, rawURL string) (ok bool, detail string, status int) {
	req, err := http.NewRequest(method, rawURL, nil)
	if err != nil {
		return false, "Error: " + Truncate(err.Error(), 30), 0
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false, "Error: " + Truncate(err.Error(), 30), 0
	}
	defer resp.Body.Close()

	if resp.StatusCode < 400 {
		return true, fmt.Sprintf("HTTP %d", resp.StatusCode), resp.StatusCode
	}
	return false, fmt.Sprintf("HTTP %d", resp.StatusCode), resp.StatusCode
}

// Truncate shortens s to at most n bytes for compact reason strings.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
