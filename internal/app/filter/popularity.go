package filter

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/infra/spotify"
)

// PopularityConfig represents the configuration for PopularityFilter.
type PopularityConfig struct {
	MinPopularity int `yaml:"min_popularity" mapstructure:"min_popularity" validate:"gte=0,lte=100"`
}

// PopularityFilter rejects tracks below a Spotify popularity score (0-100).
type PopularityFilter struct {
	config *PopularityConfig
}

func (f *PopularityFilter) Name() string {
	return "popularity_filter"
}

func (f *PopularityFilter) Description() string {
	return "Rejects tracks below a minimum Spotify popularity"
}

func (f *PopularityFilter) ReturnCodes() []string {
	return []string{"low_popularity"}
}

func (f *PopularityFilter) ValidateConfig(settings map[string]any) error {
	var config PopularityConfig
	if err := decodeSettings(settings, &config); err != nil {
		return err
	}
	f.config = &config
	zlog.Info().Msgf("popularity filter config: %+v", config)
	return nil
}

func (f *PopularityFilter) Check(ctx context.Context, t spotify.Track) Result {
	if f.config == nil || t.Popularity >= f.config.MinPopularity {
		return Accept()
	}
	return Reject("low_popularity")
}

func init() {
	Register("popularity_filter", func() Filter {
		return &PopularityFilter{}
	})
}
