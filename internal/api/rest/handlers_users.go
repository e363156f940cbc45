package rest

import (
	"net/http"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/plan"
	"github.com/osa030/spotifum/internal/domain/playlist"
)

// handleRegister creates an account.
// POST /users
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p := plan.Free
	if req.Plan != "" {
		parsed, err := plan.Parse(req.Plan)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		p = parsed
	}

	u, err := s.catalog.RegisterUser(catalog.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
		Plan:     p,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// handleLogin checks credentials.
// POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := s.catalog.Login(req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// GET /me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.catalog.User(userEmail(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// handleUpgrade moves the caller one plan up.
// POST /me/upgrade
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	u, err := s.catalog.UpgradePlan(userEmail(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// GET /me/favorite-genre
func (s *Server) handleFavoriteGenre(w http.ResponseWriter, r *http.Request) {
	genre, ok, err := s.catalog.FavoriteGenre(userEmail(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	resp := map[string]any{"has_plays": ok, "genre": nil}
	if ok {
		resp["genre"] = genre
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /me/library
func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := s.catalog.Library(userEmail(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLibraryResponse(lib))
}

// POST /me/library/playlists
func (s *Server) handleAddPlaylistToLibrary(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.catalog.AddPlaylistToLibrary(userEmail(r.Context()), req.Name); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /me/library/albums
func (s *Server) handleAddAlbumToLibrary(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.catalog.AddAlbumToLibrary(userEmail(r.Context()), req.Name); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /me/library/playlists/{playlist}
func (s *Server) handleRemovePlaylistFromLibrary(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.RemovePlaylistFromLibrary(userEmail(r.Context()), pathParam(r, "playlist")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /me/library/albums/{album}
func (s *Server) handleRemoveAlbumFromLibrary(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.RemoveAlbumFromLibrary(userEmail(r.Context()), pathParam(r, "album")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGenerateFavorites builds a playlist from the caller's play history.
// Kind is "favorites" (default), "genre" or "explicit".
// POST /me/favorites
func (s *Server) handleGenerateFavorites(w http.ResponseWriter, r *http.Request) {
	var req favoritesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := userEmail(r.Context())

	var (
		p   playlist.Playlist
		err error
	)
	switch req.Kind {
	case "", "favorites":
		p, err = s.catalog.GenerateFavoritesPlaylist(email, req.Name)
	case "genre":
		p, err = s.catalog.GenerateGenrePlaylist(email, req.Name, req.MaxSeconds)
	case "explicit":
		p, err = s.catalog.GenerateExplicitPlaylist(email, req.Name)
	default:
		writeError(w, http.StatusBadRequest, "unknown favorites kind: "+req.Kind)
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist.ToRecord(p))
}
