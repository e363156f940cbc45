package ingest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/infra/lastfm"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

type MockSpotify struct {
	mock.Mock
}

func (m *MockSpotify) GetPlaylistTracks(ctx context.Context, playlistURL string) ([]spotify.Track, error) {
	args := m.Called(ctx, playlistURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]spotify.Track), args.Error(1)
}

func (m *MockSpotify) GetArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockLastFm struct {
	mock.Mock
}

func (m *MockLastFm) GetTopTags(ctx context.Context, trackName, artistName string, limit int) ([]lastfm.Tag, error) {
	args := m.Called(ctx, trackName, artistName, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lastfm.Tag), args.Error(1)
}

func (m *MockLastFm) GetArtistTopTags(ctx context.Context, artistName string, limit int) ([]lastfm.Tag, error) {
	args := m.Called(ctx, artistName, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lastfm.Tag), args.Error(1)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, t spotify.Track) (track.Genre, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(track.Genre), args.Error(1)
}

func (m *MockResolver) Name() string {
	return "mock"
}
