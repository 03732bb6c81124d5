package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

const (
	defaultAccountTTL = 5 * time.Minute
	versionTTL        = 24 * time.Hour
)

// AccountCache is a read-through cache in front of an AccountRepository.
//
// Keys: account:<login> holds the record, account:ver:<login> a counter bumped
// on every write. A fill only lands when the counter is unchanged since the
// store read began, so a slow reader cannot restore a record a concurrent
// write already replaced. Cached records never hold the password hash; an
// account served from the cache has an empty PasswordHash. Redis failures
// degrade to the backing store.
type AccountCache struct {
	next   ports.AccountRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewAccountCache(next ports.AccountRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *AccountCache {
	if ttl <= 0 {
		ttl = defaultAccountTTL
	}
	return &AccountCache{next: next, client: client, ttl: ttl, log: log}
}

type cachedAccount struct {
	Login             string    `json:"login"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Roles             []string  `json:"roles"`
	ExpiresAt         time.Time `json:"expires_at"`
	PasswordChangedAt time.Time `json:"password_changed_at"`
}

func (c *AccountCache) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	raw, err := c.client.Get(ctx, c.key(login)).Bytes()
	switch {
	case err == nil:
		var ca cachedAccount
		if jsonErr := json.Unmarshal(raw, &ca); jsonErr == nil {
			return ca.toDomain(), nil
		}
		c.log.Warn().Str("login", login).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("login", login).Msg("account cache read failed, using store")
	}

	version, verErr := c.version(ctx, login)

	account, err := c.next.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	if verErr == nil {
		c.fill(ctx, login, version, account)
	}
	return account, nil
}

// ExistsByLogin always asks the backing store.
func (c *AccountCache) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	return c.next.ExistsByLogin(ctx, login)
}

func (c *AccountCache) Create(ctx context.Context, a *domain.Account) error {
	if err := c.next.Create(ctx, a); err != nil {
		return err
	}
	c.evict(ctx, a.Login)
	return nil
}

func (c *AccountCache) Save(ctx context.Context, a *domain.Account) error {
	if err := c.next.Save(ctx, a); err != nil {
		return err
	}
	c.evict(ctx, a.Login)
	return nil
}

func (c *AccountCache) Delete(ctx context.Context, login string) error {
	if err := c.next.Delete(ctx, login); err != nil {
		return err
	}
	c.evict(ctx, login)
	return nil
}

func (c *AccountCache) version(ctx context.Context, login string) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(login)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.log.Warn().Err(err).Str("login", login).Msg("account cache version read failed, skipping fill")
	}
	return v, err
}

// fill stores a under login unless a write bumped the version since it was read.
func (c *AccountCache) fill(ctx context.Context, login string, version int64, a *domain.Account) {
	payload, err := json.Marshal(fromDomain(a))
	if err != nil {
		return
	}

	verKey := c.versionKey(login)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(login), payload, c.ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.log.Debug().Str("login", login).Msg("account changed during read, fill skipped")
	default:
		c.log.Warn().Err(err).Str("login", login).Msg("account cache write failed")
	}
}

// evict bumps the version before dropping the record so in-flight fills fail.
func (c *AccountCache) evict(ctx context.Context, login string) {
	verKey := c.versionKey(login)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, versionTTL)
		pipe.Del(ctx, c.key(login))
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("login", login).Msg("account cache eviction failed")
	}
}

func (c *AccountCache) key(login string) string {
	return "account:" + login
}

func (c *AccountCache) versionKey(login string) string {
	return "account:ver:" + login
}

var errStaleFill = errors.New("account cache: stale fill")

func fromDomain(a *domain.Account) cachedAccount {
	roles := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles.Slice() {
		roles = append(roles, string(r))
	}
	return cachedAccount{
		Login:             a.Login,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		Roles:             roles,
		ExpiresAt:         a.ExpiresAt,
		PasswordChangedAt: a.PasswordChangedAt,
	}
}

func (ca cachedAccount) toDomain() *domain.Account {
	roles := domain.NewRoleSet()
	for _, r := range ca.Roles {
		roles.Add(domain.Role(r))
	}
	return &domain.Account{
		Login:             ca.Login,
		FirstName:         ca.FirstName,
		LastName:          ca.LastName,
		Roles:             roles,
		ExpiresAt:         ca.ExpiresAt,
		PasswordChangedAt: ca.PasswordChangedAt,
	}
}
