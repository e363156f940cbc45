// Package ingest imports Spotify playlists into the catalog.
package ingest

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

// ErrGenreUnresolved is returned when no resolver can name a track's genre.
var ErrGenreUnresolved = errors.New("genre unresolved")

// GenreResolver maps a Spotify track to a catalog genre.
type GenreResolver interface {
	// Resolve returns the genre of t, or an error marked ErrGenreUnresolved
	// when the resolver has no opinion.
	Resolve(ctx context.Context, t spotify.Track) (track.Genre, error)

	// Name returns the resolver type (used in config).
	Name() string
}

// ResolverWithMetadata wraps a resolver with its metadata.
type ResolverWithMetadata struct {
	Resolver    GenreResolver
	DisplayName string
}

// ResolverChain tries resolvers in order until one names a genre.
type ResolverChain struct {
	resolvers []ResolverWithMetadata
}

// NewResolverChain creates a new resolver chain.
func NewResolverChain(resolvers []ResolverWithMetadata) *ResolverChain {
	return &ResolverChain{
		resolvers: resolvers,
	}
}

// Resolve returns the first genre named by a resolver. Failing resolvers are
// logged and skipped.
func (c *ResolverChain) Resolve(ctx context.Context, t spotify.Track) (track.Genre, error) {
	for i, rm := range c.resolvers {
		zlog.Debug().Msgf("trying resolver: index=%d total=%d name=%s resolver_type=%s track=%s",
			i+1, len(c.resolvers), rm.DisplayName, rm.Resolver.Name(), t.Name)

		genre, err := rm.Resolver.Resolve(ctx, t)
		if err != nil {
			if !errors.Is(err, ErrGenreUnresolved) {
				zlog.Warn().Msgf("resolver failed, trying next: resolver=%s error=%v", rm.DisplayName, err)
			}
			continue
		}

		zlog.Debug().Msgf("genre resolved: resolver=%s track=%s genre=%s", rm.DisplayName, t.Name, genre)
		return genre, nil
	}

	return "", errors.Mark(errors.Newf("no resolver named a genre for %q", t.Name), ErrGenreUnresolved)
}

// Name returns the chain name.
func (c *ResolverChain) Name() string {
	return "resolver_chain"
}

func unresolved(resolver string, t spotify.Track) error {
	return errors.Mark(errors.Newf("%s: no genre for %q", resolver, t.Name), ErrGenreUnresolved)
}

// decodeSettings decodes resolver settings into config, then applies
// defaults and validation.
func decodeSettings(settings map[string]any, config any) error {
	if err := mapstructure.Decode(settings, config); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(config); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
