package catalog

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/domain/plan"
	"github.com/osa030/spotifum/internal/domain/user"
)

// Registration holds the fields of a new account.
type Registration struct {
	Name     string
	Email    string
	Address  string
	Password string
	Plan     plan.Plan
	Role     user.Role
}

// RegisterUser creates an account. The password is stored as a bcrypt hash.
func (c *Catalog) RegisterUser(r Registration) (*user.User, error) {
	if r.Email == "" {
		return nil, errors.Mark(errors.New("email is required"), ErrInvalidArgument)
	}
	if r.Role == "" {
		r.Role = user.RoleUser
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.users[r.Email]; ok {
		return nil, errors.Mark(errors.Newf("email %q already registered", r.Email), ErrEmailAlreadyRegistered)
	}
	hash, err := user.HashPassword(r.Password, c.passwordCost)
	if err != nil {
		return nil, err
	}
	u := user.New(r.Name, r.Email, r.Address, hash, r.Plan, r.Role)
	c.users[r.Email] = u
	c.userOrder = append(c.userOrder, r.Email)

	zlog.Debug().Msgf("user registered: email=%s plan=%s role=%s", r.Email, r.Plan, r.Role)
	return u.Clone(), nil
}

// Login checks the credentials and returns the account.
func (c *Catalog) Login(email, password string) (*user.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.users[email]
	if !ok {
		return nil, errors.Mark(errors.Newf("invalid credentials for %q", email), ErrInvalidCredentials)
	}
	if err := u.CheckPassword(password); err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// User returns the account registered under email.
func (c *Catalog) User(email string) (*user.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := c.userLocked(email)
	if err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// Users returns every account in registration order.
func (c *Catalog) Users() []*user.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*user.User, 0, len(c.userOrder))
	for _, email := range c.userOrder {
		out = append(out, c.users[email].Clone())
	}
	return out
}

// IsAdmin reports whether email belongs to an admin account.
func (c *Catalog) IsAdmin(email string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.users[email]
	return ok && u.IsAdmin()
}

// UpgradePlan moves the user one plan up. It needs UpgradeThreshold points.
// Free to PremiumBase costs UpgradeThreshold points, PremiumBase to PremiumTop
// resets the balance to the PremiumTop entry value, and PremiumTop stays as is.
func (c *Catalog) UpgradePlan(email string) (*user.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.userLocked(email)
	if err != nil {
		return nil, err
	}
	if u.Points < UpgradeThreshold {
		return nil, errors.Mark(
			errors.Newf("user %q has %d points, %d needed", email, u.Points, UpgradeThreshold),
			ErrInsufficientPoints)
	}

	from := u.Plan
	if to := from.Next(); to != from {
		u.SetPlan(to)
		if from == plan.Free {
			u.Points -= UpgradeThreshold
		}
	}

	zlog.Debug().Msgf("plan upgraded: email=%s from=%s to=%s points=%d", email, from, u.Plan, u.Points)
	return u.Clone(), nil
}

// Library returns a copy of the user's library.
func (c *Catalog) Library(email string) (user.Library, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := c.libraryOwnerLocked(email)
	if err != nil {
		return user.Library{}, err
	}
	return u.Library.Clone(), nil
}

// AddPlaylistToLibrary stores a copy of a visible playlist in the user's library.
func (c *Catalog) AddPlaylistToLibrary(email, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.libraryOwnerLocked(email)
	if err != nil {
		return err
	}
	p, err := c.playlistLocked(name, email)
	if err != nil {
		return err
	}
	if u.Library.HasPlaylistNamed(name) {
		return errors.Mark(errors.Newf("playlist %q already in library of %q", name, email), ErrPlaylistAlreadyInLibrary)
	}
	u.Library.AddPlaylist(p)

	zlog.Debug().Msgf("playlist added to library: email=%s playlist=%s", email, name)
	return nil
}

// AddAlbumToLibrary stores a copy of an album in the user's library.
func (c *Catalog) AddAlbumToLibrary(email, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.libraryOwnerLocked(email)
	if err != nil {
		return err
	}
	idx, err := c.albumIndexLocked(name)
	if err != nil {
		return err
	}
	if u.Library.HasAlbumNamed(name) {
		return errors.Mark(errors.Newf("album %q already in library of %q", name, email), ErrAlbumAlreadyInLibrary)
	}
	u.Library.AddAlbum(c.albums[idx])

	zlog.Debug().Msgf("album added to library: email=%s album=%s", email, name)
	return nil
}

// RemovePlaylistFromLibrary drops a playlist from the user's library.
func (c *Catalog) RemovePlaylistFromLibrary(email, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.libraryOwnerLocked(email)
	if err != nil {
		return err
	}
	if !u.Library.RemovePlaylist(name) {
		return errors.Mark(errors.Newf("playlist %q not in library of %q", name, email), ErrPlaylistNotFound)
	}

	zlog.Debug().Msgf("playlist removed from library: email=%s playlist=%s", email, name)
	return nil
}

// RemoveAlbumFromLibrary drops an album from the user's library.
func (c *Catalog) RemoveAlbumFromLibrary(email, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.libraryOwnerLocked(email)
	if err != nil {
		return err
	}
	if !u.Library.RemoveAlbum(name) {
		return errors.Mark(errors.Newf("album %q not in library of %q", name, email), ErrAlbumNotFound)
	}

	zlog.Debug().Msgf("album removed from library: email=%s album=%s", email, name)
	return nil
}

func (c *Catalog) libraryOwnerLocked(email string) (*user.User, error) {
	u, err := c.userLocked(email)
	if err != nil {
		return nil, err
	}
	if !u.Plan.CanCreatePlaylists() {
		return nil, errors.Mark(errors.Newf("plan %s of %q has no library", u.Plan, email), ErrPlanDoesNotAllowLibrary)
	}
	return u, nil
}
