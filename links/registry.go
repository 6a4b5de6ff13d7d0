package links

import (
	"net/url"
	"strings"
)

// PlatformInfo is the static per-platform record. Adding a platform is
// a data addition here, not new control flow anywhere else.
type PlatformInfo struct {
	Name            string
	Color           string
	DefaultBehavior Behavior
	Category        Category
	Hosts           []string
}

var Registry = map[Platform]PlatformInfo{
	PlatformSpotify: {
		Name:            "Spotify",
		Color:           "#1DB954",
		DefaultBehavior: BehaviorEmbed,
		Category:        CategoryStreaming,
		Hosts:           []string{"open.spotify.com", "spotify.com"},
	},
	PlatformAppleMusic: {
		Name:            "Apple Music",
		Color:           "#FA243C",
		DefaultBehavior: BehaviorEmbed,
		Category:        CategoryStreaming,
		Hosts:           []string{"music.apple.com", "itunes.apple.com"},
	},
	PlatformSoundCloud: {
		Name:            "SoundCloud",
		Color:           "#FF5500",
		DefaultBehavior: BehaviorEmbed,
		Category:        CategoryStreaming,
		Hosts:           []string{"soundcloud.com", "on.soundcloud.com"},
	},
	PlatformYouTube: {
		Name:            "YouTube",
		Color:           "#FF0000",
		DefaultBehavior: BehaviorEmbed,
		Category:        CategoryStreaming,
		Hosts:           []string{"youtube.com", "www.youtube.com", "youtu.be", "m.youtube.com", "music.youtube.com"},
	},
	PlatformInstagram: {
		Name:            "Instagram",
		Color:           "#E4405F",
		DefaultBehavior: BehaviorRedirect,
		Category:        CategorySocial,
		Hosts:           []string{"instagram.com", "www.instagram.com"},
	},
	PlatformTwitter: {
		Name:            "Twitter",
		Color:           "#1DA1F2",
		DefaultBehavior: BehaviorRedirect,
		Category:        CategorySocial,
		Hosts:           []string{"twitter.com", "x.com"},
	},
	PlatformTikTok: {
		Name:            "TikTok",
		Color:           "#010101",
		DefaultBehavior: BehaviorRedirect,
		Category:        CategorySocial,
		Hosts:           []string{"tiktok.com", "www.tiktok.com"},
	},
	PlatformFacebook: {
		Name:            "Facebook",
		Color:           "#1877F2",
		DefaultBehavior: BehaviorRedirect,
		Category:        CategorySocial,
		Hosts:           []string{"facebook.com", "www.facebook.com", "fb.com"},
	},
	PlatformCustom: {
		Name:            "",
		Color:           "#777777",
		DefaultBehavior: BehaviorRedirect,
		Category:        CategoryCustom,
	},
}

// legacyOrder is the fixed precedence for per-platform legacy fields.
var legacyOrder = []Platform{
	PlatformSpotify,
	PlatformAppleMusic,
	PlatformSoundCloud,
	PlatformYouTube,
	PlatformInstagram,
	PlatformTwitter,
	PlatformTikTok,
	PlatformFacebook,
}

// Detect matches a raw URL against the registry's host patterns and
// returns the owning platform, or PlatformCustom when nothing matches.
func Detect(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return PlatformCustom
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")

	for _, platform := range legacyOrder {
		for _, candidate := range Registry[platform].Hosts {
			candidate = strings.TrimPrefix(candidate, "www.")
			if host == candidate || strings.HasSuffix(host, "."+candidate) {
				return platform
			}
		}
	}
	return PlatformCustom
}
