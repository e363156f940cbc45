package ingest

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/infra/lastfm"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

// ArtistGenreSource defines the Spotify operation needed by SpotifyGenreResolver.
type ArtistGenreSource interface {
	GetArtistGenres(ctx context.Context, artistID string) ([]string, error)
}

// SpotifyGenreResolver maps the main artist's Spotify genres to a catalog genre.
type SpotifyGenreResolver struct {
	artists ArtistGenreSource
}

// NewSpotifyGenreResolver creates a new SpotifyGenreResolver.
func NewSpotifyGenreResolver(artists ArtistGenreSource) (*SpotifyGenreResolver, error) {
	if artists == nil {
		return nil, errors.New("spotify client is required")
	}
	return &SpotifyGenreResolver{artists: artists}, nil
}

// Resolve returns the genre of the first artist genre that maps to the catalog.
func (r *SpotifyGenreResolver) Resolve(ctx context.Context, t spotify.Track) (track.Genre, error) {
	artist := t.MainArtist()
	if artist.ID == "" {
		return "", unresolved(r.Name(), t)
	}

	genres, err := r.artists.GetArtistGenres(ctx, artist.ID)
	if err != nil {
		return "", errors.Wrap(err, "failed to get artist genres")
	}
	for _, g := range genres {
		if genre, ok := track.GenreFromTag(g); ok {
			return genre, nil
		}
	}
	return "", unresolved(r.Name(), t)
}

// Name returns the resolver name.
func (r *SpotifyGenreResolver) Name() string {
	return "spotify"
}

// LastFmClient defines the Last.fm operations needed by LastFmGenreResolver.
type LastFmClient interface {
	GetTopTags(ctx context.Context, trackName, artistName string, limit int) ([]lastfm.Tag, error)
	GetArtistTopTags(ctx context.Context, artistName string, limit int) ([]lastfm.Tag, error)
}

type LastFmResolverConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	TagCount int    `yaml:"tag_count" mapstructure:"tag_count" default:"5" validate:"gte=1,lte=100"`
	MinCount int    `yaml:"min_count" mapstructure:"min_count" validate:"gte=0"`
	// ArtistFallback also consults the artist's tags when the track has none that map.
	ArtistFallback bool `yaml:"artist_fallback" mapstructure:"artist_fallback"`
}

// LastFmGenreResolver maps Last.fm top tags to a catalog genre.
type LastFmGenreResolver struct {
	lastfm LastFmClient
	config *LastFmResolverConfig
}

// NewLastFmGenreResolver creates a new LastFmGenreResolver. A nil client is
// built from the api_key setting.
func NewLastFmGenreResolver(client LastFmClient, settings map[string]any) (*LastFmGenreResolver, error) {
	var config LastFmResolverConfig
	if err := decodeSettings(settings, &config); err != nil {
		return nil, err
	}

	if client == nil {
		c, err := lastfm.New(lastfm.Config{APIKey: config.APIKey})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create last.fm client")
		}
		client = c
	}

	return &LastFmGenreResolver{lastfm: client, config: &config}, nil
}

// Resolve returns the genre of the highest ranked tag that maps to the catalog.
func (r *LastFmGenreResolver) Resolve(ctx context.Context, t spotify.Track) (track.Genre, error) {
	artist := t.MainArtist().Name
	if artist == "" {
		return "", unresolved(r.Name(), t)
	}

	tags, err := r.lastfm.GetTopTags(ctx, t.Name, artist, r.config.TagCount)
	if err != nil {
		return "", errors.Wrap(err, "failed to get track tags")
	}
	if genre, ok := r.fromTags(tags); ok {
		return genre, nil
	}

	if r.config.ArtistFallback {
		zlog.Debug().Msgf("no track tag matched, trying artist tags: artist=%s", artist)
		tags, err := r.lastfm.GetArtistTopTags(ctx, artist, r.config.TagCount)
		if err != nil {
			return "", errors.Wrap(err, "failed to get artist tags")
		}
		if genre, ok := r.fromTags(tags); ok {
			return genre, nil
		}
	}
	return "", unresolved(r.Name(), t)
}

func (r *LastFmGenreResolver) fromTags(tags []lastfm.Tag) (track.Genre, bool) {
	for _, tag := range tags {
		if tag.Count < r.config.MinCount {
			continue
		}
		if genre, ok := track.GenreFromTag(tag.Name); ok {
			return genre, true
		}
	}
	return "", false
}

// Name returns the resolver name.
func (r *LastFmGenreResolver) Name() string {
	return "lastfm"
}

type StaticResolverConfig struct {
	Genre string `yaml:"genre" mapstructure:"genre" default:"POP" validate:"required"`
}

// StaticGenreResolver always answers the configured genre. It usually ends a chain.
type StaticGenreResolver struct {
	genre track.Genre
}

// NewStaticGenreResolver creates a new StaticGenreResolver.
func NewStaticGenreResolver(settings map[string]any) (*StaticGenreResolver, error) {
	var config StaticResolverConfig
	if err := decodeSettings(settings, &config); err != nil {
		return nil, err
	}
	genre, err := track.ParseGenre(config.Genre)
	if err != nil {
		return nil, err
	}
	return &StaticGenreResolver{genre: genre}, nil
}

// Resolve returns the configured genre.
func (r *StaticGenreResolver) Resolve(_ context.Context, _ spotify.Track) (track.Genre, error) {
	return r.genre, nil
}

// Name returns the resolver name.
func (r *StaticGenreResolver) Name() string {
	return "static"
}
