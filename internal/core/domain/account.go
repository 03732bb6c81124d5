package domain

import (
	"sort"
	"time"
)

// Role is a permission label attached to an account.
type Role string

const (
	RoleUser      Role = "User"
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
)

// ParseRole maps a label onto the closed set of known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin, RoleModerator:
		return r, nil
	}
	return "", ErrInvalidRole
}

// RoleSet is an unordered set of roles.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}
	return rs
}

// Add inserts r. Adding a role already present is a no-op.
func (rs RoleSet) Add(r Role) { rs[r] = struct{}{} }

// Remove deletes r. Removing an absent role is a no-op.
func (rs RoleSet) Remove(r Role) { delete(rs, r) }

func (rs RoleSet) Has(r Role) bool {
	_, ok := rs[r]
	return ok
}

// HasElevatedRights reports whether the set bypasses ownership checks.
func (rs RoleSet) HasElevatedRights() bool {
	return rs.Has(RoleAdmin) || rs.Has(RoleModerator)
}

// Slice returns the roles sorted by label.
func (rs RoleSet) Slice() []Role {
	out := make([]Role, 0, len(rs))
	for r := range rs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (rs RoleSet) Clone() RoleSet {
	out := make(RoleSet, len(rs))
	for r := range rs {
		out[r] = struct{}{}
	}
	return out
}

// Account is a registered forum user. Login is the identity and never changes.
type Account struct {
	Login        string
	PasswordHash string
	FirstName    string
	LastName     string
	Roles        RoleSet
	ExpiresAt    time.Time

	// PasswordChangedAt is when the current password was set. Bearer tokens
	// issued before it are rejected.
	PasswordChangedAt time.Time
}

// Expired reports whether the password validity period has elapsed at now.
func (a *Account) Expired(now time.Time) bool {
	return !a.ExpiresAt.After(now)
}

// Superseded reports whether a token issued at issuedAt predates the current
// password. Token timestamps have second precision.
func (a *Account) Superseded(issuedAt time.Time) bool {
	if issuedAt.IsZero() || a.PasswordChangedAt.IsZero() {
		return false
	}
	return issuedAt.Before(a.PasswordChangedAt.Truncate(time.Second))
}

// Profile returns the public view of the account.
func (a *Account) Profile() *Profile {
	return &Profile{
		Login:     a.Login,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Roles:     a.Roles.Slice(),
	}
}

// Profile is what callers get to see of an account; it never carries the hash.
type Profile struct {
	Login     string
	FirstName string
	LastName  string
	Roles     []Role
}

// Credentials is the identity decoded from a request token.
// Secret is empty for tokens that do not carry a password; IssuedAt is set
// only for issued tokens.
type Credentials struct {
	Login    string
	Secret   string
	IssuedAt time.Time
}
