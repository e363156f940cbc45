// Package user provides the User domain entity and its library.
package user

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/osa030/spotifum/internal/domain/plan"
)

var (
	// ErrPlanDoesNotAllowLibrary is returned when a Free user's library is replaced.
	ErrPlanDoesNotAllowLibrary = errors.New("plan does not allow a library")
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownRole is returned when a role name cannot be parsed.
	ErrUnknownRole = errors.New("unknown role")
)

// Role is the authorization role of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", errors.Mark(errors.Newf("unknown role %q", s), ErrUnknownRole)
	}
}

// User is a registered account. Email is the identity key.
type User struct {
	Name         string
	Email        string
	Address      string
	PasswordHash string
	Points       int
	Plan         plan.Plan
	Role         Role
	Library      Library
}

// New creates a user on the given plan. Entering PremiumTop sets the entry balance.
func New(name, email, address, passwordHash string, p plan.Plan, role Role) *User {
	u := &User{
		Name:         name,
		Email:        email,
		Address:      address,
		PasswordHash: passwordHash,
		Role:         role,
	}
	u.SetPlan(p)
	return u
}

// HashPassword hashes a plain password with bcrypt at the given cost.
// A cost of zero uses bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

// CheckPassword compares password against the stored hash.
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return errors.Mark(errors.Newf("invalid credentials for %q", u.Email), ErrInvalidCredentials)
	}
	return nil
}

// SetPlan switches the plan. Switching to PremiumTop sets the balance to exactly
// plan.PremiumTopEntryPoints, whatever it was before.
func (u *User) SetPlan(p plan.Plan) {
	u.Plan = p
	if p == plan.PremiumTop {
		u.Points = plan.PremiumTopEntryPoints
	}
}

// SetLibrary replaces the library. Plans without playlist creation have no library.
func (u *User) SetLibrary(l Library) error {
	if !u.Plan.CanCreatePlaylists() {
		return errors.Mark(errors.Newf("plan %s of %q does not allow a library", u.Plan, u.Email), ErrPlanDoesNotAllowLibrary)
	}
	u.Library = l.Clone()
	return nil
}

// AwardPoints applies the plan's reward for one play and returns the points added.
func (u *User) AwardPoints(alreadyHeard bool) int {
	pts := u.Plan.PointsForPlay(u.Points, alreadyHeard)
	u.Points += pts
	return pts
}

// IsPremium reports whether the user is on a paid plan.
func (u *User) IsPremium() bool {
	return u.Plan.IsPremium()
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	c.Library = u.Library.Clone()
	return &c
}

// Equal reports structural equality.
func (u *User) Equal(o *User) bool {
	return u.Name == o.Name &&
		u.Email == o.Email &&
		u.Address == o.Address &&
		u.PasswordHash == o.PasswordHash &&
		u.Points == o.Points &&
		u.Plan == o.Plan &&
		u.Role == o.Role &&
		u.Library.Equal(o.Library)
}
