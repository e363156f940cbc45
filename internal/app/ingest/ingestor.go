package ingest

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/app/filter"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

// ExplicitWarning is the warning attached to tracks Spotify flags as explicit.
const ExplicitWarning = "Explicit lyrics"

// PlaylistSource defines the Spotify operation needed by the Ingestor.
type PlaylistSource interface {
	GetPlaylistTracks(ctx context.Context, playlistURL string) ([]spotify.Track, error)
}

// Resolver names the genre of a Spotify track.
type Resolver interface {
	Resolve(ctx context.Context, t spotify.Track) (track.Genre, error)
}

// Target is the catalog surface the ingest writes to.
type Target interface {
	HasTrack(name string) bool
	Artist(name string) (track.Artist, error)
	CreateArtist(name, country string) (track.Artist, error)
	CreateTrack(spec catalog.TrackSpec) (track.Track, error)
}

// Screen decides whether a Spotify track may be imported.
type Screen interface {
	Execute(ctx context.Context, t spotify.Track) filter.Result
}

// Rejection is a track a filter kept out of the catalog.
type Rejection struct {
	Track string
	Code  string
}

// TrackError is the failure to import one Spotify track.
type TrackError struct {
	Track string
	Err   error
}

func (e *TrackError) Error() string {
	return fmt.Sprintf("%s: %v", e.Track, e.Err)
}

func (e *TrackError) Unwrap() error {
	return e.Err
}

// Report summarizes a playlist import.
type Report struct {
	Imported []string
	Skipped  []string
	Filtered []Rejection
	Failures []*TrackError
}

// Ingestor copies Spotify playlist tracks into the catalog.
type Ingestor struct {
	target             Target
	source             PlaylistSource
	resolver           Resolver
	screen             Screen
	defaultCountry     string
	explicitMinimumAge int
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithDefaultCountry sets the country of artists created during ingest.
func WithDefaultCountry(country string) Option {
	return func(in *Ingestor) {
		in.defaultCountry = country
	}
}

// WithExplicitMinimumAge sets the minimum age of imported explicit tracks.
func WithExplicitMinimumAge(age int) Option {
	return func(in *Ingestor) {
		in.explicitMinimumAge = age
	}
}

// WithFilter screens every new track before it is imported.
func WithFilter(screen Screen) Option {
	return func(in *Ingestor) {
		in.screen = screen
	}
}

// New creates an Ingestor.
func New(target Target, source PlaylistSource, resolver Resolver, opts ...Option) *Ingestor {
	in := &Ingestor{
		target:             target,
		source:             source,
		resolver:           resolver,
		defaultCountry:     "Unknown",
		explicitMinimumAge: 18,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// ImportPlaylist imports every track of a Spotify playlist. Tracks whose name
// is already in the catalog are skipped. A track that cannot be imported is
// reported and the import goes on.
func (in *Ingestor) ImportPlaylist(ctx context.Context, playlistURL string) (Report, error) {
	var report Report

	remote, err := in.source.GetPlaylistTracks(ctx, playlistURL)
	if err != nil {
		return report, errors.Wrap(err, "failed to fetch playlist")
	}
	zlog.Info().Msgf("importing spotify playlist: url=%s tracks=%d", playlistURL, len(remote))

	for _, t := range remote {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if in.target.HasTrack(t.Name) {
			report.Skipped = append(report.Skipped, t.Name)
			continue
		}
		if in.screen != nil {
			if result := in.screen.Execute(ctx, t); !result.Accepted {
				zlog.Debug().Msgf("track filtered: track=%s code=%s", t.Name, result.Code)
				report.Filtered = append(report.Filtered, Rejection{Track: t.Name, Code: result.Code})
				continue
			}
		}
		if err := in.importTrack(ctx, t); err != nil {
			zlog.Warn().Msgf("track import failed: track=%s err=%v", t.Name, err)
			report.Failures = append(report.Failures, &TrackError{Track: t.Name, Err: err})
			continue
		}
		report.Imported = append(report.Imported, t.Name)
	}

	zlog.Info().Msgf("spotify playlist imported: imported=%d skipped=%d filtered=%d failed=%d",
		len(report.Imported), len(report.Skipped), len(report.Filtered), len(report.Failures))
	return report, nil
}

func (in *Ingestor) importTrack(ctx context.Context, t spotify.Track) error {
	artist := t.MainArtist().Name
	if artist == "" {
		return errors.Mark(errors.New("track has no artist"), catalog.ErrInvalidArgument)
	}
	if err := in.ensureArtist(artist); err != nil {
		return err
	}

	genre, err := in.resolver.Resolve(ctx, t)
	if err != nil {
		return err
	}

	spec := catalog.TrackSpec{
		Name:        t.Name,
		Artist:      artist,
		Publisher:   t.Album,
		Genre:       genre,
		DurationSec: t.DurationSec,
	}
	if t.Explicit {
		spec.Explicit = &track.ExplicitContent{WarningReason: ExplicitWarning, MinimumAge: in.explicitMinimumAge}
	}
	_, err = in.target.CreateTrack(spec)
	return err
}

func (in *Ingestor) ensureArtist(name string) error {
	_, err := in.target.Artist(name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, catalog.ErrArtistNotFound) {
		return err
	}
	_, err = in.target.CreateArtist(name, in.defaultCountry)
	if err != nil && !errors.Is(err, catalog.ErrArtistExists) {
		return err
	}
	return nil
}
