package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/app/stats"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Client calls the HTTP API. It identifies as UserEmail on user routes and
// sends AdminToken on admin routes.
type Client struct {
	BaseURL    string
	UserEmail  string
	AdminToken string
	HTTPClient *http.Client
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Do sends a JSON request and decodes the JSON response into out, if set.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserEmail != "" {
		req.Header.Set(UserEmailHeader, c.UserEmail)
	}
	if c.AdminToken != "" {
		req.Header.Set(AdminTokenHeader, c.AdminToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

// Escape escapes a catalog name for use as one path segment.
func Escape(name string) string {
	return url.PathEscape(name)
}

// Tracks lists the catalog tracks.
func (c *Client) Tracks(ctx context.Context) ([]track.Track, error) {
	var out []track.Track
	err := c.Do(ctx, http.MethodGet, "/tracks", nil, &out)
	return out, err
}

// Play records a play of one track.
func (c *Client) Play(ctx context.Context, trackName string) (catalog.PlayResult, error) {
	var out catalog.PlayResult
	err := c.Do(ctx, http.MethodPost, "/tracks/"+Escape(trackName)+"/play", nil, &out)
	return out, err
}

// Playlists lists the playlists visible to the caller.
func (c *Client) Playlists(ctx context.Context) ([]playlist.Record, error) {
	var out []playlist.Record
	err := c.Do(ctx, http.MethodGet, "/playlists", nil, &out)
	return out, err
}

// Navigate moves a built playlist cursor; step is "current", "next" or "previous".
func (c *Client) Navigate(ctx context.Context, playlistName, step string) (catalog.PlayResult, error) {
	var out catalog.PlayResult
	err := c.Do(ctx, http.MethodPost, "/playlists/"+Escape(playlistName)+"/"+step, nil, &out)
	return out, err
}

// Stats fetches the admin statistics report. Zero bounds are left open.
func (c *Client) Stats(ctx context.Context, from, to time.Time) (stats.Report, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.Format(time.RFC3339))
	}
	path := "/admin/stats"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out stats.Report
	err := c.Do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}
