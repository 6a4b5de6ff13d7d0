// Package embed translates platform URLs into embeddable iframe
// sources. Resolution is pure string work: no network calls, no state.
package embed

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"fanlink/links"
)

// Allow is the fixed permissions policy handed to the iframe host
// alongside every resolved URL.
const Allow = "autoplay; clipboard-write; encrypted-media; fullscreen; picture-in-picture"

var (
	spotifyPathRegex = regexp.MustCompile(`/(track|album|artist|playlist)/([a-zA-Z0-9]+)`)
	youtubeIDRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ResolveURL maps a (platform, url) pair to the provider's embed URL.
// Unknown platforms and unparseable URLs return ("", false); the caller
// renders a disabled control rather than an empty iframe.
func ResolveURL(platform links.Platform, rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}

	switch platform {
	case links.PlatformSpotify:
		return resolveSpotify(rawURL)
	case links.PlatformAppleMusic:
		return resolveAppleMusic(rawURL)
	case links.PlatformSoundCloud:
		return resolveSoundCloud(rawURL)
	case links.PlatformYouTube:
		return resolveYouTube(rawURL)
	}

	log.Tracef("no embed support for platform %s", platform)
	return "", false
}

func resolveSpotify(rawURL string) (string, bool) {
	matches := spotifyPathRegex.FindStringSubmatch(rawURL)
	if len(matches) < 3 {
		log.Warnf("unrecognized Spotify URL shape: %s", rawURL)
		return "", false
	}
	return fmt.Sprintf("https://open.spotify.com/embed/%s/%s", matches[1], matches[2]), true
}

// resolveAppleMusic swaps the storefront host for the embed host. The
// `i` query parameter selects a song inside an album and must survive
// so playback starts on the anchored track. The path is re-encoded so
// no raw quote or angle character reaches the iframe markup.
func resolveAppleMusic(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || links.Detect(rawURL) != links.PlatformAppleMusic {
		return "", false
	}

	embedURL := "https://embed.music.apple.com" + parsed.EscapedPath()
	if anchor := parsed.Query().Get("i"); anchor != "" {
		embedURL += "?i=" + url.QueryEscape(anchor)
	}
	return embedURL, true
}

func resolveSoundCloud(rawURL string) (string, bool) {
	if _, err := url.Parse(rawURL); err != nil || links.Detect(rawURL) != links.PlatformSoundCloud {
		return "", false
	}
	return "https://w.soundcloud.com/player/?url=" + url.QueryEscape(rawURL), true
}

// resolveYouTube accepts both watch?v= and youtu.be short forms,
// keeping only the 11-character video id. All other query parameters
// are dropped.
func resolveYouTube(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	var videoID string
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	switch {
	case host == "youtu.be":
		videoID = strings.Trim(parsed.Path, "/")
	case host == "youtube.com" || host == "m.youtube.com" || host == "music.youtube.com":
		videoID = parsed.Query().Get("v")
	default:
		return "", false
	}

	if !youtubeIDRegex.MatchString(videoID) {
		log.Warnf("could not extract YouTube video id from %s", rawURL)
		return "", false
	}
	return "https://www.youtube.com/embed/" + videoID, true
}
