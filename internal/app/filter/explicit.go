package filter

import (
	"context"

	"github.com/osa030/spotifum/internal/infra/spotify"
)

// ExplicitFilter rejects tracks Spotify flags as explicit.
type ExplicitFilter struct{}

func (f *ExplicitFilter) Name() string {
	return "explicit_filter"
}

func (f *ExplicitFilter) Description() string {
	return "Rejects tracks flagged as explicit"
}

func (f *ExplicitFilter) ReturnCodes() []string {
	return []string{"explicit_content"}
}

func (f *ExplicitFilter) ValidateConfig(settings map[string]any) error {
	return nil
}

func (f *ExplicitFilter) Check(ctx context.Context, t spotify.Track) Result {
	if t.Explicit {
		return Reject("explicit_content")
	}
	return Accept()
}

func init() {
	Register("explicit_filter", func() Filter {
		return &ExplicitFilter{}
	})
}
