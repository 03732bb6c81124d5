package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

const defaultExpiryDays = 60

// AccountService implements registration, profile and credential management.
type AccountService struct {
	repo       ports.AccountRepository
	codec      ports.TokenCodec
	hasher     ports.PasswordHasher
	audit      ports.AuditRecorder
	expiryDays int
	now        func() time.Time
	log        zerolog.Logger
}

func NewAccountService(
	repo ports.AccountRepository,
	codec ports.TokenCodec,
	hasher ports.PasswordHasher,
	audit ports.AuditRecorder,
	expiryDays int,
	log zerolog.Logger,
) *AccountService {
	if expiryDays <= 0 {
		expiryDays = defaultExpiryDays
	}
	return &AccountService{
		repo:       repo,
		codec:      codec,
		hasher:     hasher,
		audit:      audit,
		expiryDays: expiryDays,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// Register creates an account for the login carried by token. The secret in
// the token becomes the initial password.
func (s *AccountService) Register(ctx context.Context, in ports.ProfileInput, token string) (*domain.Profile, error) {
	creds, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	if creds.Secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	exists, err := s.repo.ExistsByLogin(ctx, creds.Login)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrAccountExists
	}

	hash, err := s.hasher.Hash(creds.Secret)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now()
	account := &domain.Account{
		Login:             creds.Login,
		PasswordHash:      hash,
		Roles:             domain.NewRoleSet(domain.RoleUser),
		ExpiresAt:         s.expiryFrom(now),
		PasswordChangedAt: now,
	}
	applyProfile(account, in)

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("login", account.Login).Msg("account registered")
	return account.Profile(), nil
}

// EditProfile applies the non-nil fields of in to the caller's account.
func (s *AccountService) EditProfile(ctx context.Context, in ports.ProfileInput, token string) (*domain.Profile, error) {
	account, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}

	applyProfile(account, in)
	if err := s.repo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("edit profile: %w", err)
	}
	return account.Profile(), nil
}

// RemoveAccount deletes login when the caller owns it or holds elevated rights.
func (s *AccountService) RemoveAccount(ctx context.Context, login, token string) (*domain.Profile, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if !canActOn(actor, login) {
		s.log.Warn().Str("actor", actor.Login).Str("target", login).Msg("account removal denied")
		return nil, domain.ErrForbidden
	}

	target, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, login); err != nil {
		return nil, fmt.Errorf("remove account: %w", err)
	}

	s.record(domain.AuditAccountRemoved, actor.Login, login, "")
	s.log.Info().Str("actor", actor.Login).Str("login", login).Msg("account removed")
	return target.Profile(), nil
}

// GrantRole adds role to login. Granting a role the account already holds
// leaves it unchanged. The acting admin is taken from ctx for the audit trail.
func (s *AccountService) GrantRole(ctx context.Context, login string, role domain.Role) ([]domain.Role, error) {
	return s.mutateRoles(ctx, login, role, domain.AuditRoleGranted, domain.RoleSet.Add)
}

// RevokeRole removes role from login. Revoking a role the account does not
// hold leaves it unchanged.
func (s *AccountService) RevokeRole(ctx context.Context, login string, role domain.Role) ([]domain.Role, error) {
	return s.mutateRoles(ctx, login, role, domain.AuditRoleRevoked, domain.RoleSet.Remove)
}

func (s *AccountService) mutateRoles(
	ctx context.Context,
	login string,
	role domain.Role,
	action domain.AuditAction,
	apply func(domain.RoleSet, domain.Role),
) ([]domain.Role, error) {
	account, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	apply(account.Roles, role)
	if err := s.repo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	s.record(action, domain.ActorFrom(ctx), login, string(role))
	return account.Roles.Slice(), nil
}

// ChangePassword rehashes the caller's password and restarts its validity period.
func (s *AccountService) ChangePassword(ctx context.Context, secret, token string) error {
	account, err := s.actor(ctx, token)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return fmt.Errorf("change password: hash password: %w", err)
	}
	now := s.now()
	account.PasswordHash = hash
	account.ExpiresAt = s.expiryFrom(now)
	account.PasswordChangedAt = now

	if err := s.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.log.Info().Str("login", account.Login).Msg("password changed")
	return nil
}

// ResolveSession returns the profile of the account behind token.
func (s *AccountService) ResolveSession(ctx context.Context, token string) (*domain.Profile, error) {
	account, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	return account.Profile(), nil
}

// actor decodes token and loads the matching account. A valid token for a
// login that is no longer stored is reported as domain.ErrActorMissing.
func (s *AccountService) actor(ctx context.Context, token string) (*domain.Account, error) {
	creds, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	return loadActor(ctx, s.repo, creds.Login)
}

func (s *AccountService) expiryFrom(t time.Time) time.Time {
	return t.AddDate(0, 0, s.expiryDays)
}

func (s *AccountService) record(action domain.AuditAction, actor, subject, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		Action:    action,
		Actor:     actor,
		Subject:   subject,
		Detail:    detail,
		Timestamp: s.now(),
	})
}

func applyProfile(a *domain.Account, in ports.ProfileInput) {
	if in.FirstName != nil {
		a.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		a.LastName = *in.LastName
	}
}

func loadActor(ctx context.Context, repo ports.AccountRepository, login string) (*domain.Account, error) {
	account, err := repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrActorMissing, login)
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	return account, nil
}
