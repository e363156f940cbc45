package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/spotifum/internal/infra/config"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

func TestExplicitFilter_Check(t *testing.T) {
	f := &ExplicitFilter{}
	require.NoError(t, f.ValidateConfig(nil))

	assert.True(t, f.Check(context.Background(), spotify.Track{Name: "Clean"}).Accepted)

	result := f.Check(context.Background(), spotify.Track{Name: "Dirty", Explicit: true})
	assert.False(t, result.Accepted)
	assert.Equal(t, "explicit_content", result.Code)
}

func TestPopularityFilter(t *testing.T) {
	tests := []struct {
		name         string
		settings     map[string]any
		popularity   int
		wantErr      bool
		wantAccepted bool
	}{
		{name: "above minimum", settings: map[string]any{"min_popularity": 40}, popularity: 70, wantAccepted: true},
		{name: "at minimum", settings: map[string]any{"min_popularity": 40}, popularity: 40, wantAccepted: true},
		{name: "below minimum", settings: map[string]any{"min_popularity": 40}, popularity: 10},
		{name: "default accepts all", settings: nil, popularity: 0, wantAccepted: true},
		{name: "string setting", settings: map[string]any{"min_popularity": "50"}, popularity: 49},
		{name: "out of range", settings: map[string]any{"min_popularity": 101}, wantErr: true},
		{name: "negative", settings: map[string]any{"min_popularity": -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &PopularityFilter{}
			err := f.ValidateConfig(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			result := f.Check(context.Background(), spotify.Track{Popularity: tt.popularity})
			assert.Equal(t, tt.wantAccepted, result.Accepted)
			if !tt.wantAccepted {
				assert.Equal(t, "low_popularity", result.Code)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	registered := GetRegistered()
	for _, name := range []string{"duration_limit_filter", "explicit_filter", "popularity_filter"} {
		factory, ok := registered[name]
		require.True(t, ok, name)
		f := factory()
		assert.Equal(t, name, f.Name())
		assert.NotEmpty(t, f.Description())
		assert.NotEmpty(t, f.ReturnCodes())
	}
}

func TestChain_Execute(t *testing.T) {
	chain := NewChain()
	chain.Add(&ExplicitFilter{})
	pop := &PopularityFilter{}
	require.NoError(t, pop.ValidateConfig(map[string]any{"min_popularity": 50}))
	chain.Add(pop)

	tests := []struct {
		name  string
		track spotify.Track
		want  Result
	}{
		{name: "passes all", track: spotify.Track{Popularity: 80}, want: Accept()},
		{name: "first rejection wins", track: spotify.Track{Explicit: true, Popularity: 10}, want: Reject("explicit_content")},
		{name: "second filter rejects", track: spotify.Track{Popularity: 10}, want: Reject("low_popularity")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chain.Execute(context.Background(), tt.track))
		})
	}
}

func TestNewChainFromConfig(t *testing.T) {
	t.Run("enabled filters in name order", func(t *testing.T) {
		chain, err := NewChainFromConfig(map[string]config.FilterConfig{
			"popularity_filter":     {Enabled: true, Settings: map[string]any{"min_popularity": 20}},
			"explicit_filter":       {Enabled: false},
			"duration_limit_filter": {Enabled: true},
		})
		require.NoError(t, err)

		filters := chain.Filters()
		require.Len(t, filters, 2)
		assert.Equal(t, "duration_limit_filter", filters[0].Name())
		assert.Equal(t, "popularity_filter", filters[1].Name())

		assert.True(t, chain.Execute(context.Background(), spotify.Track{Explicit: true, DurationSec: 200, Popularity: 30}).Accepted)
		assert.Equal(t, Reject("duration_limit_exceeded"),
			chain.Execute(context.Background(), spotify.Track{DurationSec: 30, Popularity: 30}))
	})

	t.Run("empty config", func(t *testing.T) {
		chain, err := NewChainFromConfig(nil)
		require.NoError(t, err)
		assert.Empty(t, chain.Filters())
		assert.True(t, chain.Execute(context.Background(), spotify.Track{}).Accepted)
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := NewChainFromConfig(map[string]config.FilterConfig{"market_filter": {Enabled: true}})
		assert.ErrorContains(t, err, "unknown filter: market_filter")
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := NewChainFromConfig(map[string]config.FilterConfig{
			"duration_limit_filter": {Enabled: true, Settings: map[string]any{"min_minutes": 9, "max_minutes": 3}},
		})
		assert.ErrorContains(t, err, "filter duration_limit_filter")
	})
}
