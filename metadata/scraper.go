package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// openGraphTitle fetches a custom link's page and pulls a display
// title out of it, JSON-LD first, Open Graph tags as fallback.
func (e *Enricher) openGraphTitle(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}

	// Set realistic User-Agent to avoid blocks
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	log.Tracef("fetching link preview: %s", pageURL)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title, err := titleFromJSONLD(doc); err == nil {
		return title, nil
	}
	return titleFromOpenGraph(doc)
}

func titleFromJSONLD(doc *goquery.Document) (string, error) {
	var title string

	doc.Find("script[type='application/ld+json']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		var data map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			log.Tracef("failed to parse JSON-LD block %d: %v", i, err)
			return true // Continue to next script tag
		}
		if name, ok := data["name"].(string); ok && name != "" {
			title = name
			return false
		}
		return true
	})

	if title == "" {
		return "", errors.New("no JSON-LD name found")
	}
	return title, nil
}

func titleFromOpenGraph(doc *goquery.Document) (string, error) {
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && content != "" {
		return content, nil
	}
	if title := doc.Find("title").First().Text(); title != "" {
		return title, nil
	}
	return "", errors.New("no title metadata found")
}
