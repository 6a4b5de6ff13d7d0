package metadata

import (
	"context"
	"regexp"

	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"fanlink/config"
)

var spotifyIDRegex = regexp.MustCompile(`/(track|album)/([a-zA-Z0-9]+)`)

func newSpotifyClient(ctx context.Context) (*spotifyclient.Client, error) {
	cfg := &clientcredentials.Config{
		ClientID:     config.Config.Spotify.ClientID,
		ClientSecret: config.Config.Spotify.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := cfg.Token(ctx)
	if err != nil {
		return nil, err
	}
	httpClient := spotifyauth.New().Client(ctx, token)
	return spotifyclient.New(httpClient), nil
}

// spotifyTitle resolves a track or album URL to its display title.
func (e *Enricher) spotifyTitle(ctx context.Context, rawURL string) (string, error) {
	matches := spotifyIDRegex.FindStringSubmatch(rawURL)
	if len(matches) < 3 {
		return "", errUnsupportedURL
	}
	id := spotifyclient.ID(matches[2])

	switch matches[1] {
	case "track":
		track, err := e.spotify.GetTrack(ctx, id)
		if err != nil {
			log.Warnf("spotify track lookup failed for %s: %v", id, err)
			return "", err
		}
		return track.Name, nil
	default:
		album, err := e.spotify.GetAlbum(ctx, id)
		if err != nil {
			log.Warnf("spotify album lookup failed for %s: %v", id, err)
			return "", err
		}
		return album.Name, nil
	}
}
