package embed

import (
	"strings"
	"testing"

	"fanlink/links"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		platform links.Platform
		url      string
		want     string
		wantOK   bool
	}{
		{
			name:     "spotify track",
			platform: links.PlatformSpotify,
			url:      "https://open.spotify.com/track/0VjIjW4GlUZAMYd2vXMi3b",
			want:     "https://open.spotify.com/embed/track/0VjIjW4GlUZAMYd2vXMi3b",
			wantOK:   true,
		},
		{
			name:     "spotify album with query",
			platform: links.PlatformSpotify,
			url:      "https://open.spotify.com/album/4yP0hdKOZPNshxUOjY0cZj?si=tracking",
			want:     "https://open.spotify.com/embed/album/4yP0hdKOZPNshxUOjY0cZj",
			wantOK:   true,
		},
		{
			name:     "spotify playlist",
			platform: links.PlatformSpotify,
			url:      "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			want:     "https://open.spotify.com/embed/playlist/37i9dQZF1DXcBWIGoYBM5M",
			wantOK:   true,
		},
		{
			name:     "spotify unrecognized path",
			platform: links.PlatformSpotify,
			url:      "https://open.spotify.com/show/12345",
			wantOK:   false,
		},
		{
			name:     "apple album",
			platform: links.PlatformAppleMusic,
			url:      "https://music.apple.com/us/album/folklore/1528112358",
			want:     "https://embed.music.apple.com/us/album/folklore/1528112358",
			wantOK:   true,
		},
		{
			name:     "apple song anchor preserved",
			platform: links.PlatformAppleMusic,
			url:      "https://music.apple.com/us/album/folklore/1528112358?i=1528112663",
			want:     "https://embed.music.apple.com/us/album/folklore/1528112358?i=1528112663",
			wantOK:   true,
		},
		{
			name:     "apple wrong host",
			platform: links.PlatformAppleMusic,
			url:      "https://example.com/us/album/x/1",
			wantOK:   false,
		},
		{
			name:     "apple lookalike host",
			platform: links.PlatformAppleMusic,
			url:      "https://evilapple.com/us/album/x/1",
			wantOK:   false,
		},
		{
			name:     "apple host as subdomain of attacker",
			platform: links.PlatformAppleMusic,
			url:      "https://music.apple.com.attacker.net/us/album/x/1",
			wantOK:   false,
		},
		{
			name:     "apple markup in path is re-encoded",
			platform: links.PlatformAppleMusic,
			url:      `https://music.apple.com/us/album/x/1"></iframe><script>alert(1)</script>`,
			want:     "https://embed.music.apple.com/us/album/x/1%22%3E%3C/iframe%3E%3Cscript%3Ealert%281%29%3C/script%3E",
			wantOK:   true,
		},
		{
			name:     "soundcloud track",
			platform: links.PlatformSoundCloud,
			url:      "https://soundcloud.com/artist/some-track",
			want:     "https://w.soundcloud.com/player/?url=https%3A%2F%2Fsoundcloud.com%2Fartist%2Fsome-track",
			wantOK:   true,
		},
		{
			name:     "youtube watch",
			platform: links.PlatformYouTube,
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc",
			want:     "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantOK:   true,
		},
		{
			name:     "youtube short form",
			platform: links.PlatformYouTube,
			url:      "https://youtu.be/abc123XYZ90",
			want:     "https://www.youtube.com/embed/abc123XYZ90",
			wantOK:   true,
		},
		{
			name:     "youtube bad id",
			platform: links.PlatformYouTube,
			url:      "https://www.youtube.com/watch?v=short",
			wantOK:   false,
		},
		{
			name:     "social platform",
			platform: links.PlatformInstagram,
			url:      "https://instagram.com/artist",
			wantOK:   false,
		},
		{
			name:     "empty url",
			platform: links.PlatformSpotify,
			url:      "",
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveURL(tt.platform, tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ResolveURL() ok = %v, want %v (got %q)", ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveYouTubeStripsParams(t *testing.T) {
	got, ok := ResolveURL(links.PlatformYouTube, "https://youtu.be/abc123XYZ90?t=42&si=xyz")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if !strings.Contains(got, "abc123XYZ90") {
		t.Errorf("embed URL %q missing video id", got)
	}
	if strings.Contains(got, "?") {
		t.Errorf("embed URL %q carries query parameters, want none", got)
	}
}
