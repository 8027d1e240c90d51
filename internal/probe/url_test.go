package probe

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestCheckURL(t *testing.T) {
	t.Run("head ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodHead {
				t.Fatalf("method = %s", r.Method)
			}
			if got := r.Header.Get("User-Agent"); got != "Mozilla/5.0" {
				t.Fatalf("User-Agent = %q", got)
			}
		}))
		defer srv.Close()

		p := NewURLProbe(0)
		ok, detail := p.CheckURL(srv.URL)
		if !ok || detail != "HTTP 200" {
			t.Fatalf("ok=%t detail=%q", ok, detail)
		}
	})

	t.Run("405 falls back to get", func(t *testing.T) {
		var methods []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
		}))
		defer srv.Close()

		p := &URLProbe{}
		ok, detail := p.CheckURL(srv.URL)
		if !ok || detail != "HTTP 200" {
			t.Fatalf("ok=%t detail=%q", ok, detail)
		}
		if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
			t.Fatalf("methods = %v", methods)
		}
	})

	t.Run("redirect-range status counts as reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotModified)
		}))
		defer srv.Close()

		p := &URLProbe{}
		ok, detail := p.CheckURL(srv.URL)
		if !ok || detail != "HTTP 304" {
			t.Fatalf("ok=%t detail=%q", ok, detail)
		}
	})

	t.Run("404 fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		p := &URLProbe{}
		ok, detail := p.CheckURL(srv.URL)
		if ok || detail != "HTTP 404" {
			t.Fatalf("ok=%t detail=%q", ok, detail)
		}
	})

	t.Run("transport error yields truncated reason", func(t *testing.T) {
		p := &URLProbe{Client: &http.Client{
			Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				return nil, errors.New(strings.Repeat("boom ", 20))
			}),
		}}
		ok, detail := p.CheckURL("http://unreachable.invalid")
		if ok {
			t.Fatalf("expected failure")
		}
		if !strings.HasPrefix(detail, "Error: ") {
			t.Fatalf("detail = %q", detail)
		}
		if len(detail) > len("Error: ")+30 {
			t.Fatalf("detail too long: %q", detail)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		p := &URLProbe{}
		ok, detail := p.CheckURL("http://bad url with spaces")
		if ok || !strings.HasPrefix(detail, "Error: ") {
			t.Fatalf("ok=%t detail=%q", ok, detail)
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 30); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate(strings.Repeat("a", 40), 30); len(got) != 30 {
		t.Fatalf("len = %d", len(got))
	}
}

func TestSetLoggerAndLogf_Writes(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)
	logf("hello %s", "world")
	if !strings.Contains(buf.String(), "hello world") {
		t.Fatalf("got %q", buf.String())
	}
}
