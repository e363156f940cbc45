package spotify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"
)

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Spotify URI format",
			input:    "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M",
			expected: "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:     "Spotify URL format",
			input:    "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			expected: "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:     "Spotify URL with query params",
			input:    "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc123",
			expected: "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:     "Plain playlist ID",
			input:    "37i9dQZF1DXcBWIGoYBM5M",
			expected: "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "HTTP URL (not HTTPS)",
			input:    "http://open.spotify.com/playlist/testID",
			expected: "testID",
		},
		{
			name:     "URL with multiple query params",
			input:    "https://open.spotify.com/playlist/abc123?si=xyz&utm_source=copy",
			expected: "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractPlaylistID(tt.input)
			assert.Equal(t, tt.expected, result,
				"extractPlaylistID(%s) should return %s", tt.input, tt.expected)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "rate limit error with 429",
			err:      errors.New("Error 429: rate limit exceeded"),
			expected: true,
		},
		{
			name:     "rate limit text",
			err:      errors.New("rate limit exceeded"),
			expected: true,
		},
		{
			name:     "server error 500",
			err:      errors.New("Error 500: internal server error"),
			expected: true,
		},
		{
			name:     "server error 502",
			err:      errors.New("502 Bad Gateway"),
			expected: true,
		},
		{
			name:     "server error 503",
			err:      errors.New("503 Service Unavailable"),
			expected: true,
		},
		{
			name:     "server error 504",
			err:      errors.New("504 Gateway Timeout"),
			expected: true,
		},
		{
			name:     "client error 400",
			err:      errors.New("400 Bad Request"),
			expected: false,
		},
		{
			name:     "not found error",
			err:      errors.New("404 not found"),
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isRetryable(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConvertTrack(t *testing.T) {
	payload := `{
		"id": "4vLYewWIvqHfKtJDk8c8tq",
		"name": "So What",
		"duration_ms": 545123,
		"explicit": true,
		"popularity": 71,
		"artists": [
			{"id": "0kbYTNQb4Pb1rPbbaF0pT4", "name": "Miles Davis"},
			{"id": "2hGh5VOeOYzpfXlBzGLGpT", "name": "John Coltrane"}
		],
		"album": {"name": "Kind of Blue", "release_date": "1959-08-17"}
	}`

	var ft spotify.FullTrack
	require.NoError(t, json.Unmarshal([]byte(payload), &ft))

	got := convertTrack(&ft)
	assert.Equal(t, "4vLYewWIvqHfKtJDk8c8tq", got.ID)
	assert.Equal(t, "So What", got.Name)
	assert.Equal(t, 545, got.DurationSec)
	assert.True(t, got.Explicit)
	assert.Equal(t, 71, got.Popularity)
	assert.Equal(t, "Kind of Blue", got.Album)
	assert.Equal(t, "1959-08-17", got.ReleaseDate)
	require.Len(t, got.Artists, 2)
	assert.Equal(t, Artist{ID: "0kbYTNQb4Pb1rPbbaF0pT4", Name: "Miles Davis"}, got.MainArtist())
}

func TestTrack_MainArtistWithoutArtists(t *testing.T) {
	assert.Equal(t, Artist{}, Track{Name: "Untitled"}.MainArtist())
}

func TestNew_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty", cfg: Config{}},
		{name: "missing secret", cfg: Config{ClientID: "id", RefreshToken: "r"}},
		{name: "missing refresh token", cfg: Config{ClientID: "id", ClientSecret: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}

	c, err := New(context.Background(), Config{ClientID: "id", ClientSecret: "s", RefreshToken: "r"})
	require.NoError(t, err)
	assert.Equal(t, "PT", c.market)
}

func TestGetPlaylistTracks_InvalidURL(t *testing.T) {
	c, err := New(context.Background(), Config{ClientID: "id", ClientSecret: "s", RefreshToken: "r"})
	require.NoError(t, err)

	_, err = c.GetPlaylistTracks(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrInvalidPlaylistURL))
}
