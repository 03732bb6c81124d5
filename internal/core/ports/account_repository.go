package ports

import (
	"context"

	"github.com/ashkelon/forum/internal/core/domain"
)

// AccountRepository persists accounts keyed by login.
type AccountRepository interface {
	// FindByLogin returns domain.ErrAccountNotFound when no account is stored.
	FindByLogin(ctx context.Context, login string) (*domain.Account, error)
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	// Create inserts a new account and returns domain.ErrAccountExists on a
	// duplicate login.
	Create(ctx context.Context, account *domain.Account) error
	// Save upserts the account. An empty PasswordHash keeps the stored hash.
	Save(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, login string) error
}
