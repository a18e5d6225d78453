package jobpost

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const postingHTML = `<html><body>
<nav>Home | Jobs</nav>
<div class="job-description">
  <h1>Senior Go Engineer</h1>

  <p>Build resilient APIs.</p>
  <script>track()</script>
</div>
<footer>© Acme</footer>
</body></html>`

func TestMainTextPrefersJobDescription(t *testing.T) {
	got, err := MainText(strings.NewReader(postingHTML))
	if err != nil {
		t.Fatalf("MainText: %v", err)
	}
	want := "Senior Go Engineer\nBuild resilient APIs."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMainTextFallsBackToBody(t *testing.T) {
	got, err := MainText(strings.NewReader(`<html><body><p>Just text</p><footer>x</footer></body></html>`))
	if err != nil {
		t.Fatalf("MainText: %v", err)
	}
	if got != "Just text" {
		t.Fatalf("got %q", got)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "resume-o-matic") {
			t.Errorf("unexpected user agent %q", ua)
		}
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	f := NewFetcher()
	text, err := f.Fetch(context.Background(), srv.URL+"/job")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasPrefix(text, "Senior Go Engineer") {
		t.Fatalf("unexpected text %q", text)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	var fetchErr *Error
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 fetch error, got %v", err)
	}

	if _, err := f.Fetch(context.Background(), "ftp://example.com/job"); err == nil {
		t.Fatal("expected invalid URL error")
	}
}
