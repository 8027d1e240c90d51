package probe

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// noAssertion is the SPDX sentinel GitHub returns when a repository carries a
// license file it cannot identify. It does not count as a usable license.
const noAssertion = "NOASSERTION"

// DefaultLookupDelay is slept after every license lookup to respect
// third-party API rate limits.
const DefaultLookupDelay = 200 * time.Millisecond

// LicenseClient looks up repository licenses. Only github- and zenodo-style
// hosts are supported; every other host type fails the check.
//
// Base URLs are overridable for tests.
type LicenseClient struct {
	Client        *http.Client
	GitHubBaseURL string // defaults to "https://api.github.com"
	ZenodoBaseURL string // defaults to "https://zenodo.org"

	// Delay is slept after each lookup. Negative disables; zero means
	// DefaultLookupDelay.
	Delay time.Duration
}

// NewLicenseClient returns a client with a per-request timeout and the
// default rate-limit delay.
func NewLicenseClient(timeout time.Duration) *LicenseClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LicenseClient{Client: &http.Client{Timeout: timeout}}
}

// CheckLicense reports whether the repository asserts a usable license.
// The detail string is "License: <name>", "No license found", "No license",
// "API failed" or "Unsupported: <type>".
func (c *LicenseClient) CheckLicense(repoType, owner, name string) (ok bool, licenseName, detail string) {
	defer c.sleep()
	defer func() { logf("license %s/%s/%s ok=%t detail=%s", repoType, owner, name, ok, detail) }()
	switch repoType {
	case "github":
		return c.checkGitHub(owner, name)
	case "zenodo":
		return c.checkZenodo(name)
	default:
		return false, "", "Unsupported: " + repoType
	}
}

func (c *LicenseClient) sleep() {
	switch {
	case c.Delay < 0:
	case c.Delay == 0:
		time.Sleep(DefaultLookupDelay)
	default:
		time.Sleep(c.Delay)
	}
}

func (c *LicenseClient) checkGitHub(owner, repo string) (bool, string, string) {
	base := strings.TrimRight(c.GitHubBaseURL, "/")
	if base == "" {
		base = "https://api.github.com"
	}

	var body struct {
		ID      json.Number `json:"id"`
		License *struct {
			SPDXID string `json:"spdx_id"`
			Name   string `json:"name"`
		} `json:"license"`
	}
	if !c.getJSON(fmt.Sprintf("%s/repos/%s/%s", base, owner, repo), &body) {
		return false, "", "API failed"
	}

	lic := body.License
	if lic != nil && lic.SPDXID != "" && lic.SPDXID != noAssertion {
		name := lic.Name
		if name == "" {
			name = lic.SPDXID
		}
		return true, name, "License: " + name
	}
	if body.ID != "" {
		return false, "", "No license found"
	}
	return false, "", "API failed"
}

func (c *LicenseClient) checkZenodo(recordID string) (bool, string, string) {
	base := strings.TrimRight(c.ZenodoBaseURL, "/")
	if base == "" {
		base = "https://zenodo.org"
	}

	var body struct {
		ID       json.Number `json:"id"`
		Metadata struct {
			License json.RawMessage `json:"license"`
		} `json:"metadata"`
	}
	if !c.getJSON(fmt.Sprintf("%s/api/records/%s", base, recordID), &body) {
		return false, "", "API failed"
	}

	if name := zenodoLicenseName(body.Metadata.License); name != "" {
		return true, name, "License: " + name
	}
	if body.ID != "" {
		return false, "", "No license"
	}
	return false, "", "API failed"
}

// zenodoLicenseName handles both license encodings the Zenodo API has used:
// a plain string and an object with an "id" field.
func zenodoLicenseName(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}

// getJSON fetches url and decodes a 200 response into out. Any transport or
// decode failure yields false; the caller maps that to "API failed".
func (c *LicenseClient) getJSON(url string, out any) bool {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return false
	}
	return json.NewDecoder(resp.Body).Decode(out) == nil
}
