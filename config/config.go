package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Options   Options
	Spotify   SpotifyConfig
	Youtube   YoutubeConfig
	Analytics AnalyticsConfig
	Playback  PlaybackConfig
}

type Options struct {
	Port string
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Enabled      bool
}

type YoutubeConfig struct {
	APIKey string
}

type AnalyticsConfig struct {
	Enabled    bool
	BufferSize int
}

type PlaybackConfig struct {
	CloseDelayMs int // Floating player teardown delay, covers the exit animation
}

func (a *AnalyticsConfig) IsEnabled() bool {
	return a.Enabled
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Options: Options{
			Port: os.Getenv("PORT"),
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			Enabled:      os.Getenv("SPOTIFY_ENABLED") == "true",
		},
		Youtube: YoutubeConfig{
			APIKey: os.Getenv("YOUTUBE_API_KEY"),
		},
		Analytics: AnalyticsConfig{
			Enabled:    os.Getenv("ANALYTICS_ENABLED") != "false",
			BufferSize: getAnalyticsBuffer(),
		},
		Playback: PlaybackConfig{
			CloseDelayMs: getCloseDelay(),
		},
	}

	Config = config
}

func getAnalyticsBuffer() int {
	bufferStr := os.Getenv("ANALYTICS_BUFFER")
	if bufferStr == "" {
		return 100
	}
	buffer, err := strconv.Atoi(bufferStr)
	if err != nil || buffer <= 0 {
		return 100
	}
	if buffer > 10000 {
		return 10000 // Cap to keep memory bounded
	}
	return buffer
}

func getCloseDelay() int {
	delayStr := os.Getenv("PLAYBACK_CLOSE_DELAY_MS")
	if delayStr == "" {
		return 300
	}
	delay, err := strconv.Atoi(delayStr)
	if err != nil || delay <= 0 {
		return 300
	}
	if delay > 5000 {
		return 5000 // Anything longer just looks broken
	}
	return delay
}
