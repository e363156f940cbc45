package rest

import (
	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Plan     string `json:"plan"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Points  int    `json:"points"`
	Plan    string `json:"plan"`
	Role    string `json:"role"`
	Premium bool   `json:"premium"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Points:  u.Points,
		Plan:    u.Plan.String(),
		Role:    string(u.Role),
		Premium: u.IsPremium(),
	}
}

type nameRequest struct {
	Name string `json:"name"`
}

type libraryResponse struct {
	Playlists []playlist.Record `json:"playlists"`
	Albums    []album.Album     `json:"albums"`
}

func toLibraryResponse(l user.Library) libraryResponse {
	resp := libraryResponse{
		Playlists: []playlist.Record{},
		Albums:    l.Albums(),
	}
	for _, p := range l.Playlists() {
		resp.Playlists = append(resp.Playlists, playlist.ToRecord(p))
	}
	if resp.Albums == nil {
		resp.Albums = []album.Album{}
	}
	return resp
}

type favoritesRequest struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	MaxSeconds int    `json:"max_seconds"`
}

type createPlaylistRequest struct {
	Name   string   `json:"name"`
	Public bool     `json:"public"`
	Tracks []string `json:"tracks"`
}

type randomPlaylistRequest struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type trackRequest struct {
	Track string `json:"track"`
}

type shuffleRequest struct {
	On bool `json:"on"`
}

type artistRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type createTrackRequest struct {
	Name        string                   `json:"name"`
	Artist      string                   `json:"artist"`
	Publisher   string                   `json:"publisher"`
	Lyrics      []string                 `json:"lyrics"`
	Composition []string                 `json:"composition"`
	Genre       string                   `json:"genre"`
	DurationSec int                      `json:"duration_sec"`
	Explicit    *track.ExplicitContent   `json:"explicit"`
	Multimedia  *track.MultimediaContent `json:"multimedia"`
}

type createAlbumRequest struct {
	Name        string   `json:"name"`
	Artist      string   `json:"artist"`
	ReleaseDate string   `json:"release_date"`
	Tracks      []string `json:"tracks"`
}

type ingestRequest struct {
	URL string `json:"url"`
}

type ingestFailure struct {
	Track string `json:"track"`
	Error string `json:"error"`
}

type ingestResponse struct {
	Imported []string        `json:"imported"`
	Skipped  []string        `json:"skipped"`
	Filtered []ingestFilter  `json:"filtered"`
	Failures []ingestFailure `json:"failures"`
}

type ingestFilter struct {
	Track string `json:"track"`
	Code  string `json:"code"`
}
