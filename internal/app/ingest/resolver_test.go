package ingest

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/infra/config"
	"github.com/osa030/spotifum/internal/infra/lastfm"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

var soWhat = spotify.Track{
	ID:          "t1",
	Name:        "So What",
	Artists:     []spotify.Artist{{ID: "a1", Name: "Miles Davis"}},
	Album:       "Kind of Blue",
	DurationSec: 545,
}

func TestSpotifyGenreResolver(t *testing.T) {
	tests := []struct {
		name       string
		genres     []string
		err        error
		want       track.Genre
		unresolved bool
		failed     bool
	}{
		{name: "first mapped genre wins", genres: []string{"cool jazz", "hard bop"}, want: track.GenreJazz},
		{name: "skips unknown genres", genres: []string{"fado", "art rock"}, want: track.GenreRock},
		{name: "nothing maps", genres: []string{"fado"}, unresolved: true},
		{name: "no genres", genres: []string{}, unresolved: true},
		{name: "client error", err: errors.New("503 Service Unavailable"), failed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockSpotify)
			if tt.err != nil {
				m.On("GetArtistGenres", mock.Anything, "a1").Return(nil, tt.err)
			} else {
				m.On("GetArtistGenres", mock.Anything, "a1").Return(tt.genres, nil)
			}

			r, err := NewSpotifyGenreResolver(m)
			require.NoError(t, err)

			got, err := r.Resolve(context.Background(), soWhat)
			switch {
			case tt.unresolved:
				assert.True(t, errors.Is(err, ErrGenreUnresolved))
			case tt.failed:
				require.Error(t, err)
				assert.False(t, errors.Is(err, ErrGenreUnresolved))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			m.AssertExpectations(t)
		})
	}

	t.Run("track without artist id", func(t *testing.T) {
		r, err := NewSpotifyGenreResolver(new(MockSpotify))
		require.NoError(t, err)
		_, err = r.Resolve(context.Background(), spotify.Track{Name: "Local file"})
		assert.True(t, errors.Is(err, ErrGenreUnresolved))
	})

	t.Run("requires client", func(t *testing.T) {
		_, err := NewSpotifyGenreResolver(nil)
		assert.Error(t, err)
	})
}

func TestLastFmGenreResolver(t *testing.T) {
	t.Run("track tags", func(t *testing.T) {
		m := new(MockLastFm)
		m.On("GetTopTags", mock.Anything, "So What", "Miles Davis", 5).
			Return([]lastfm.Tag{{Name: "seen live", Count: 100}, {Name: "Jazz", Count: 90}}, nil)

		r, err := NewLastFmGenreResolver(m, map[string]any{"api_key": "k"})
		require.NoError(t, err)

		got, err := r.Resolve(context.Background(), soWhat)
		require.NoError(t, err)
		assert.Equal(t, track.GenreJazz, got)
		m.AssertExpectations(t)
	})

	t.Run("min count filters weak tags", func(t *testing.T) {
		m := new(MockLastFm)
		m.On("GetTopTags", mock.Anything, "So What", "Miles Davis", 3).
			Return([]lastfm.Tag{{Name: "rock", Count: 2}, {Name: "jazz", Count: 60}}, nil)

		r, err := NewLastFmGenreResolver(m, map[string]any{"api_key": "k", "tag_count": 3, "min_count": 10})
		require.NoError(t, err)

		got, err := r.Resolve(context.Background(), soWhat)
		require.NoError(t, err)
		assert.Equal(t, track.GenreJazz, got)
	})

	t.Run("artist fallback", func(t *testing.T) {
		m := new(MockLastFm)
		m.On("GetTopTags", mock.Anything, "So What", "Miles Davis", 5).Return([]lastfm.Tag{}, nil)
		m.On("GetArtistTopTags", mock.Anything, "Miles Davis", 5).
			Return([]lastfm.Tag{{Name: "bebop jazz", Count: 100}}, nil)

		r, err := NewLastFmGenreResolver(m, map[string]any{"api_key": "k", "artist_fallback": true})
		require.NoError(t, err)

		got, err := r.Resolve(context.Background(), soWhat)
		require.NoError(t, err)
		assert.Equal(t, track.GenreJazz, got)
		m.AssertExpectations(t)
	})

	t.Run("no fallback leaves track unresolved", func(t *testing.T) {
		m := new(MockLastFm)
		m.On("GetTopTags", mock.Anything, "So What", "Miles Davis", 5).Return([]lastfm.Tag{}, nil)

		r, err := NewLastFmGenreResolver(m, map[string]any{"api_key": "k"})
		require.NoError(t, err)

		_, err = r.Resolve(context.Background(), soWhat)
		assert.True(t, errors.Is(err, ErrGenreUnresolved))
		m.AssertNotCalled(t, "GetArtistTopTags", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("settings validation", func(t *testing.T) {
		_, err := NewLastFmGenreResolver(new(MockLastFm), map[string]any{})
		assert.Error(t, err, "api_key is required")

		_, err = NewLastFmGenreResolver(new(MockLastFm), map[string]any{"api_key": "k", "tag_count": 0, "min_count": -1})
		assert.Error(t, err)
	})
}

func TestStaticGenreResolver(t *testing.T) {
	r, err := NewStaticGenreResolver(nil)
	require.NoError(t, err)
	got, err := r.Resolve(context.Background(), soWhat)
	require.NoError(t, err)
	assert.Equal(t, track.GenrePop, got)

	r, err = NewStaticGenreResolver(map[string]any{"genre": "funk"})
	require.NoError(t, err)
	got, err = r.Resolve(context.Background(), soWhat)
	require.NoError(t, err)
	assert.Equal(t, track.GenreFunk, got)

	_, err = NewStaticGenreResolver(map[string]any{"genre": "polka"})
	assert.True(t, errors.Is(err, track.ErrUnknownGenre))
}

func TestResolverChain(t *testing.T) {
	unresolvedResolver := new(MockResolver)
	unresolvedResolver.On("Resolve", mock.Anything, soWhat).Return(track.Genre(""), unresolved("mock", soWhat))

	failing := new(MockResolver)
	failing.On("Resolve", mock.Anything, soWhat).Return(track.Genre(""), errors.New("boom"))

	jazz := new(MockResolver)
	jazz.On("Resolve", mock.Anything, soWhat).Return(track.GenreJazz, nil)

	never := new(MockResolver)

	chain := NewResolverChain([]ResolverWithMetadata{
		{Resolver: unresolvedResolver, DisplayName: "first"},
		{Resolver: failing, DisplayName: "second"},
		{Resolver: jazz, DisplayName: "third"},
		{Resolver: never, DisplayName: "fourth"},
	})

	got, err := chain.Resolve(context.Background(), soWhat)
	require.NoError(t, err)
	assert.Equal(t, track.GenreJazz, got)
	never.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)

	empty := NewResolverChain(nil)
	_, err = empty.Resolve(context.Background(), soWhat)
	assert.True(t, errors.Is(err, ErrGenreUnresolved))
	assert.Equal(t, "resolver_chain", chain.Name())
}

func TestNewResolverChainFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.IngestConfig
		wantLen int
		wantErr bool
	}{
		{name: "no resolvers uses static default", cfg: config.IngestConfig{}, wantLen: 1},
		{
			name: "full chain",
			cfg: config.IngestConfig{Resolvers: []config.ResolverConfig{
				{Type: "spotify", DisplayName: "Spotify"},
				{Type: "lastfm", DisplayName: "Last.fm", Settings: map[string]any{"api_key": "k"}},
				{Type: "static", DisplayName: "Fallback", Settings: map[string]any{"genre": "rock"}},
			}},
			wantLen: 3,
		},
		{
			name:    "unknown type",
			cfg:     config.IngestConfig{Resolvers: []config.ResolverConfig{{Type: "musicbrainz", DisplayName: "MB"}}},
			wantErr: true,
		},
		{
			name:    "lastfm without key",
			cfg:     config.IngestConfig{Resolvers: []config.ResolverConfig{{Type: "lastfm", DisplayName: "Last.fm"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := NewResolverChainFromConfig(tt.cfg, new(MockSpotify))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, chain.resolvers, tt.wantLen)
		})
	}
}
