package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

// CredentialVerifier checks a token against the stored account: the account
// must exist, a carried secret must match the stored hash, an issued token must
// not predate the current password, and the password must not be expired
// unless allowExpired is set. repo must be the backing store, not the cache,
// since cached accounts carry no hash.
type CredentialVerifier struct {
	repo   ports.AccountRepository
	codec  ports.TokenCodec
	hasher ports.PasswordHasher
	now    func() time.Time
}

func NewCredentialVerifier(repo ports.AccountRepository, codec ports.TokenCodec, hasher ports.PasswordHasher) *CredentialVerifier {
	return &CredentialVerifier{
		repo:   repo,
		codec:  codec,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (v *CredentialVerifier) Authenticate(ctx context.Context, token string, allowExpired bool) (*domain.Account, error) {
	creds, err := v.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	account, err := v.repo.FindByLogin(ctx, creds.Login)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	// Bearer tokens carry no secret; their signature already proved identity.
	if creds.Secret != "" {
		if err := v.hasher.Compare(account.PasswordHash, creds.Secret); err != nil {
			return nil, domain.ErrInvalidCredentials
		}
	}
	if account.Superseded(creds.IssuedAt) {
		return nil, fmt.Errorf("%w: token predates password change", domain.ErrUnauthenticated)
	}

	if !allowExpired && account.Expired(v.now()) {
		return nil, domain.ErrPasswordExpired
	}
	return account, nil
}
