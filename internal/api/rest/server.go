// Package rest exposes the catalog over HTTP.
package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/app/ingest"
)

// SnapshotSaver persists the catalog state on demand.
type SnapshotSaver interface {
	Save(ctx context.Context, s catalog.State) error
	Location() string
}

// PlaylistImporter imports an external playlist into the catalog.
type PlaylistImporter interface {
	ImportPlaylist(ctx context.Context, playlistURL string) (ingest.Report, error)
}

// Server serves the catalog HTTP API.
type Server struct {
	catalog    *catalog.Catalog
	adminToken string
	snapshots  SnapshotSaver
	importer   PlaylistImporter
}

// Option configures a Server.
type Option func(*Server)

// WithSnapshots enables the admin snapshot endpoint.
func WithSnapshots(s SnapshotSaver) Option {
	return func(srv *Server) {
		srv.snapshots = s
	}
}

// WithPlaylistImporter enables the admin ingest endpoint.
func WithPlaylistImporter(im PlaylistImporter) Option {
	return func(srv *Server) {
		srv.importer = im
	}
}

// NewServer creates a new Server. Admin routes require adminToken in the
// X-Admin-Token header.
func NewServer(c *catalog.Catalog, adminToken string, opts ...Option) *Server {
	s := &Server{
		catalog:    c,
		adminToken: adminToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP routes.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	r.Post("/users", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/me", s.handleMe)
		r.Post("/me/upgrade", s.handleUpgrade)
		r.Get("/me/favorite-genre", s.handleFavoriteGenre)
		r.Get("/me/library", s.handleLibrary)
		r.Post("/me/library/playlists", s.handleAddPlaylistToLibrary)
		r.Post("/me/library/albums", s.handleAddAlbumToLibrary)
		r.Delete("/me/library/playlists/{playlist}", s.handleRemovePlaylistFromLibrary)
		r.Delete("/me/library/albums/{album}", s.handleRemoveAlbumFromLibrary)
		r.Post("/me/favorites", s.handleGenerateFavorites)

		r.Get("/tracks", s.handleListTracks)
		r.Get("/tracks/{track}", s.handleGetTrack)
		r.Post("/tracks/{track}/play", s.handlePlayTrack)

		r.Get("/albums", s.handleListAlbums)
		r.Get("/albums/{album}", s.handleGetAlbum)

		r.Get("/playlists", s.handleListPlaylists)
		r.Post("/playlists", s.handleCreatePlaylist)
		r.Post("/playlists/random", s.handleCreateRandomPlaylist)
		r.Get("/playlists/{playlist}", s.handleGetPlaylist)
		r.Post("/playlists/{playlist}/tracks", s.handleAddPlaylistTrack)
		r.Delete("/playlists/{playlist}/tracks/{track}", s.handleRemovePlaylistTrack)
		r.Post("/playlists/{playlist}/visibility", s.handleToggleVisibility)
		r.Get("/playlists/{playlist}/queue", s.handlePlaybackQueue)
		r.Post("/playlists/{playlist}/play", s.handlePlayPlaylist)
		r.Put("/playlists/{playlist}/shuffle", s.handleSetShuffle)
		r.Post("/playlists/{playlist}/current", s.handleNavigate(s.catalog.PlayCurrent))
		r.Post("/playlists/{playlist}/next", s.handleNavigate(s.catalog.Next))
		r.Post("/playlists/{playlist}/previous", s.handleNavigate(s.catalog.Previous))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Get("/users", s.handleListUsers)
		r.Post("/artists", s.handleCreateArtist)
		r.Post("/tracks", s.handleCreateTrack)
		r.Post("/albums", s.handleCreateAlbum)
		r.Get("/stats", s.handleStats)
		r.Post("/snapshot", s.handleSnapshot)
		r.Post("/ingest", s.handleIngest)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "spotifum",
	})
}
