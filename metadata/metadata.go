// Package metadata fills in labels the editor never typed: Spotify
// track titles, YouTube video titles, Open Graph titles for custom
// links. Everything here is best-effort; a failed lookup leaves the
// link exactly as it was.
package metadata

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"

	"fanlink/config"
	"fanlink/links"
)

var errUnsupportedURL = errors.New("unsupported url shape")

type Enricher struct {
	spotify    *spotifyclient.Client
	youtubeKey string
	httpClient *http.Client
	logger     *log.Entry
}

// NewEnricher builds an enricher from the loaded config. Disabled or
// unconfigured providers are simply skipped during enrichment.
func NewEnricher(ctx context.Context) *Enricher {
	e := &Enricher{
		youtubeKey: config.Config.Youtube.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger: log.WithFields(log.Fields{
			"module": "metadata",
		}),
	}

	if config.Config.Spotify.Enabled {
		client, err := newSpotifyClient(ctx)
		if err != nil {
			e.logger.Warnf("spotify metadata disabled: %v", err)
		} else {
			e.spotify = client
		}
	}
	return e
}

// EnrichLinks fills empty labels where a provider can supply one. The
// input slice is not modified.
func (e *Enricher) EnrichLinks(ctx context.Context, list []links.Link) []links.Link {
	out := make([]links.Link, len(list))
	copy(out, list)

	for i := range out {
		if out[i].Label != "" && out[i].Label != links.Registry[out[i].Platform].Name {
			continue
		}
		if out[i].URL == "" {
			continue
		}

		title, err := e.lookupTitle(ctx, out[i])
		if err != nil || title == "" {
			continue
		}
		out[i].Label = title
	}
	return out
}

func (e *Enricher) lookupTitle(ctx context.Context, link links.Link) (string, error) {
	switch link.Platform {
	case links.PlatformSpotify:
		if e.spotify == nil {
			return "", nil
		}
		return e.spotifyTitle(ctx, link.URL)
	case links.PlatformYouTube:
		if e.youtubeKey == "" {
			return "", nil
		}
		return e.youtubeTitle(ctx, link.URL)
	case links.PlatformCustom:
		return e.openGraphTitle(ctx, link.URL)
	}
	return "", nil
}
