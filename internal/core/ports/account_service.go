package ports

import (
	"context"

	"github.com/ashkelon/forum/internal/core/domain"
)

// ProfileInput carries the editable profile fields. Nil fields are left
// untouched on edit.
type ProfileInput struct {
	FirstName *string
	LastName  *string
}

// AccountService owns the account lifecycle.
type AccountService interface {
	Register(ctx context.Context, in ProfileInput, token string) (*domain.Profile, error)
	EditProfile(ctx context.Context, in ProfileInput, token string) (*domain.Profile, error)
	RemoveAccount(ctx context.Context, login, token string) (*domain.Profile, error)
	GrantRole(ctx context.Context, login string, role domain.Role) ([]domain.Role, error)
	RevokeRole(ctx context.Context, login string, role domain.Role) ([]domain.Role, error)
	ChangePassword(ctx context.Context, secret, token string) error
	ResolveSession(ctx context.Context, token string) (*domain.Profile, error)
}

// Authenticator verifies a token against the stored account before a
// privileged route runs.
type Authenticator interface {
	Authenticate(ctx context.Context, token string, allowExpired bool) (*domain.Account, error)
}
