package ingest

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/infra/config"
)

// NewResolverChainFromConfig creates a resolver chain from configuration.
// Without configured resolvers the chain falls back to a static POP resolver.
func NewResolverChainFromConfig(cfg config.IngestConfig, artists ArtistGenreSource) (*ResolverChain, error) {
	resolverConfigs := cfg.Resolvers
	if len(resolverConfigs) == 0 {
		resolverConfigs = []config.ResolverConfig{{Type: "static", DisplayName: "Default"}}
	}

	var resolvers []ResolverWithMetadata

	for i, rcfg := range resolverConfigs {
		var resolver GenreResolver
		var err error
		zlog.Debug().Msgf("creating genre resolver: index=%d type=%s", i+1, rcfg.Type)
		switch rcfg.Type {
		case "spotify":
			resolver, err = NewSpotifyGenreResolver(artists)

		case "lastfm":
			resolver, err = NewLastFmGenreResolver(nil, rcfg.Settings)

		case "static":
			resolver, err = NewStaticGenreResolver(rcfg.Settings)

		default:
			return nil, errors.Newf("unsupported resolver type: %s (resolver index %d)", rcfg.Type, i)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to create resolver (index %d, type %s)", i, rcfg.Type)
		}

		resolvers = append(resolvers, ResolverWithMetadata{
			Resolver:    resolver,
			DisplayName: rcfg.DisplayName,
		})

		zlog.Info().Msgf("registered genre resolver: index=%d type=%s display_name=%s", i+1, rcfg.Type, rcfg.DisplayName)
	}

	return NewResolverChain(resolvers), nil
}
