package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

func youtubeVideoID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	if host == "youtu.be" {
		return strings.Trim(parsed.Path, "/")
	}
	if strings.HasSuffix(host, "youtube.com") {
		return parsed.Query().Get("v")
	}
	return ""
}

// youtubeTitle looks up a video's title through the Data API.
func (e *Enricher) youtubeTitle(ctx context.Context, rawURL string) (string, error) {
	videoID := youtubeVideoID(rawURL)
	if videoID == "" {
		return "", errUnsupportedURL
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(e.youtubeKey))
	if err != nil {
		log.Errorf("error creating YouTube client: %v", err)
		return "", fmt.Errorf("error creating YouTube client: %w", err)
	}

	response, err := service.Videos.List([]string{"snippet"}).Id(videoID).Do()
	if err != nil {
		log.Errorf("error querying YouTube: %v", err)
		return "", fmt.Errorf("error querying YouTube: %w", err)
	}
	if len(response.Items) == 0 {
		return "", errors.New("video not found")
	}
	return response.Items[0].Snippet.Title, nil
}
