package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"fanlink/links"
)

func testEnricher() *Enricher {
	return &Enricher{
		httpClient: &http.Client{Timeout: 2 * time.Second},
		logger:     log.WithFields(log.Fields{"module": "metadata"}),
	}
}

func TestYoutubeVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"music", "https://music.youtube.com/watch?v=abc", "abc"},
		{"other host", "https://vimeo.com/12345", ""},
		{"garbage", "::nope", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := youtubeVideoID(tt.url); got != tt.want {
				t.Errorf("youtubeVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestOpenGraphTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "json-ld wins",
			body: `<html><head>
				<script type="application/ld+json">{"name":"From JSON-LD"}</script>
				<meta property="og:title" content="From OG"/>
			</head></html>`,
			want: "From JSON-LD",
		},
		{
			name: "og fallback",
			body: `<html><head><meta property="og:title" content="From OG"/></head></html>`,
			want: "From OG",
		},
		{
			name: "title tag last resort",
			body: `<html><head><title>Plain Title</title></head></html>`,
			want: "Plain Title",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := testEnricher().openGraphTitle(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("openGraphTitle() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("openGraphTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenGraphTitleMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head></head><body>nothing</body></html>"))
	}))
	defer srv.Close()

	if _, err := testEnricher().openGraphTitle(context.Background(), srv.URL); err == nil {
		t.Error("expected an error for a page with no title metadata")
	}
}

func TestEnrichLinksCustom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:title" content="Merch Store"/></head></html>`))
	}))
	defer srv.Close()

	in := []links.Link{
		{ID: "c", Platform: links.PlatformCustom, URL: srv.URL},
		{ID: "k", Platform: links.PlatformCustom, URL: srv.URL, Label: "Keep Me"},
	}

	got := testEnricher().EnrichLinks(context.Background(), in)
	if got[0].Label != "Merch Store" {
		t.Errorf("label = %q, want scraped title", got[0].Label)
	}
	if got[1].Label != "Keep Me" {
		t.Errorf("existing label overwritten: %q", got[1].Label)
	}
	if in[0].Label != "" {
		t.Error("EnrichLinks mutated its input")
	}
}

func TestEnrichLinksSkipsDisabledProviders(t *testing.T) {
	// No spotify client, no youtube key: these links pass through.
	in := []links.Link{
		{Platform: links.PlatformSpotify, URL: "https://open.spotify.com/track/abc", Label: "Spotify"},
		{Platform: links.PlatformYouTube, URL: "https://youtu.be/abc123XYZ90", Label: "YouTube"},
	}
	got := testEnricher().EnrichLinks(context.Background(), in)
	for i := range got {
		if got[i] != in[i] {
			t.Errorf("link %d changed without a provider: %+v", i, got[i])
		}
	}
}
