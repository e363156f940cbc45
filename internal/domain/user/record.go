package user

import (
	"github.com/cockroachdb/errors"

	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/plan"
	"github.com/osa030/spotifum/internal/domain/playlist"
)

// Record is the plain data form of a user used for snapshots.
type Record struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Address      string            `json:"address"`
	PasswordHash string            `json:"password_hash"`
	Points       int               `json:"points"`
	Plan         plan.Plan         `json:"plan"`
	Role         Role              `json:"role"`
	Playlists    []playlist.Record `json:"playlists,omitempty"`
	Albums       []album.Album     `json:"albums,omitempty"`
}

// ToRecord converts a user into its record form.
func ToRecord(u *User) Record {
	r := Record{
		Name:         u.Name,
		Email:        u.Email,
		Address:      u.Address,
		PasswordHash: u.PasswordHash,
		Points:       u.Points,
		Plan:         u.Plan,
		Role:         u.Role,
		Albums:       u.Library.Albums(),
	}
	for _, p := range u.Library.playlists {
		r.Playlists = append(r.Playlists, playlist.ToRecord(p))
	}
	return r
}

// FromRecord rebuilds a user from its record form. Points are restored as stored.
func FromRecord(r Record) (*User, error) {
	u := &User{
		Name:         r.Name,
		Email:        r.Email,
		Address:      r.Address,
		PasswordHash: r.PasswordHash,
		Points:       r.Points,
		Plan:         r.Plan,
		Role:         r.Role,
	}
	for _, pr := range r.Playlists {
		p, err := playlist.FromRecord(pr)
		if err != nil {
			return nil, errors.Wrapf(err, "user %q", r.Email)
		}
		u.Library.playlists = append(u.Library.playlists, p)
	}
	for _, a := range r.Albums {
		u.Library.albums = append(u.Library.albums, a.Clone())
	}
	return u, nil
}
