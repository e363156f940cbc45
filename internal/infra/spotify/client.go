// Package spotify provides a client for the Spotify API.
package spotify

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// ErrInvalidPlaylistURL is returned when no playlist ID can be read from the input.
var ErrInvalidPlaylistURL = errors.New("invalid playlist URL")

// Artist is a Spotify artist reference.
type Artist struct {
	ID   string
	Name string
}

// Track is a Spotify track as seen by the catalog ingest.
type Track struct {
	ID          string
	Name        string
	Artists     []Artist
	Album       string
	ReleaseDate string
	DurationSec int
	Explicit    bool
	Popularity  int
}

// MainArtist returns the first credited artist.
func (t Track) MainArtist() Artist {
	if len(t.Artists) == 0 {
		return Artist{}
	}
	return t.Artists[0]
}

// Client is a Spotify API client.
type Client struct {
	client     *spotify.Client
	market     string
	maxRetries int
	retryDelay time.Duration
}

// Config represents Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Market       string
}

// New creates a new Spotify client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("spotify credentials are required")
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(spotifyauth.ScopePlaylistReadPrivate),
	)

	// The access token is obtained on first use from the refresh token.
	token := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
	}
	client := spotify.New(auth.Client(ctx, token))

	market := cfg.Market
	if market == "" {
		market = "PT"
	}

	return &Client{
		client:     client,
		market:     market,
		maxRetries: 3,
		retryDelay: time.Second,
	}, nil
}

// GetPlaylistTracks retrieves all tracks from a playlist. Episodes are skipped.
func (c *Client) GetPlaylistTracks(ctx context.Context, playlistURL string) ([]Track, error) {
	playlistID := extractPlaylistID(playlistURL)
	if playlistID == "" {
		return nil, errors.Mark(errors.Newf("no playlist id in %q", playlistURL), ErrInvalidPlaylistURL)
	}

	var tracks []Track
	offset := 0
	limit := 100

	for {
		var page *spotify.PlaylistItemPage
		err := c.retry(func() error {
			p, err := c.client.GetPlaylistItems(ctx, spotify.ID(playlistID),
				spotify.Limit(limit),
				spotify.Offset(offset),
				spotify.Market(c.market),
			)
			if err != nil {
				return err
			}
			page = p
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get playlist items")
		}

		for _, item := range page.Items {
			if item.Track.Track != nil && item.Track.Track.ID != "" {
				tracks = append(tracks, convertTrack(item.Track.Track))
			}
		}

		if len(page.Items) < limit {
			break
		}
		offset += limit
	}

	return tracks, nil
}

// GetArtistGenres returns the genres Spotify lists for an artist.
func (c *Client) GetArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	if artistID == "" {
		return nil, errors.New("artist id is required")
	}

	var artist *spotify.FullArtist
	err := c.retry(func() error {
		a, err := c.client.GetArtist(ctx, spotify.ID(artistID))
		if err != nil {
			return err
		}
		artist = a
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get artist %s", artistID)
	}
	return artist.Genres, nil
}

// convertTrack converts a Spotify FullTrack to an ingest Track.
func convertTrack(t *spotify.FullTrack) Track {
	artists := make([]Artist, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = Artist{ID: string(a.ID), Name: a.Name}
	}

	return Track{
		ID:          string(t.ID),
		Name:        t.Name,
		Artists:     artists,
		Album:       t.Album.Name,
		ReleaseDate: t.Album.ReleaseDate,
		DurationSec: int(t.Duration) / 1000,
		Explicit:    t.Explicit,
		Popularity:  int(t.Popularity),
	}
}

// retry retries an operation with linear backoff.
func (c *Client) retry(fn func() error) error {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			return err
		}

		if i < c.maxRetries-1 {
			time.Sleep(c.retryDelay * time.Duration(i+1))
		}
	}
	return errors.Wrap(lastErr, "max retries exceeded")
}

// isRetryable checks if an error is retryable.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	// Rate limit errors and server errors are retryable
	errStr := err.Error()
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504")
}

// extractPlaylistID extracts the playlist ID from a Spotify playlist URL or URI.
func extractPlaylistID(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "spotify:playlist:") {
		return strings.TrimPrefix(input, "spotify:playlist:")
	}

	// https://open.spotify.com/playlist/ID or https://open.spotify.com/intl-XX/playlist/ID
	if strings.Contains(input, "open.spotify.com") && strings.Contains(input, "/playlist/") {
		parts := strings.Split(input, "/playlist/")
		if len(parts) >= 2 {
			id := strings.Split(parts[len(parts)-1], "?")[0]
			id = strings.TrimRight(id, "/")
			return id
		}
	}

	return input
}
