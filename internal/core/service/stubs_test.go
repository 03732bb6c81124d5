package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ashkelon/forum/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory account repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	saves    int
	saveErr  error
}

func newStubAccountRepo(seed ...*domain.Account) *stubAccountRepo {
	r := &stubAccountRepo{accounts: make(map[string]*domain.Account)}
	for _, a := range seed {
		r.accounts[a.Login] = cloneAccount(a)
	}
	return r
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	clone.Roles = a.Roles.Clone()
	return &clone
}

func (r *stubAccountRepo) FindByLogin(_ context.Context, login string) (*domain.Account, error) {
	a, ok := r.accounts[login]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) ExistsByLogin(_ context.Context, login string) (bool, error) {
	_, ok := r.accounts[login]
	return ok, nil
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	if _, ok := r.accounts[a.Login]; ok {
		return domain.ErrAccountExists
	}
	r.accounts[a.Login] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) Save(_ context.Context, a *domain.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	stored := cloneAccount(a)
	if prev, ok := r.accounts[a.Login]; ok && stored.PasswordHash == "" {
		stored.PasswordHash = prev.PasswordHash
	}
	r.accounts[a.Login] = stored
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, login string) error {
	delete(r.accounts, login)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory post repository
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	posts map[string]*domain.Post
	order []string
}

func newStubPostRepo(seed ...*domain.Post) *stubPostRepo {
	r := &stubPostRepo{posts: make(map[string]*domain.Post)}
	for _, p := range seed {
		_ = r.Create(context.Background(), p)
	}
	return r
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Tags = append([]string(nil), p.Tags...)
	clone.Comments = append([]domain.Comment(nil), p.Comments...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) UpdateContent(_ context.Context, id, content string) error {
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Content = content
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) IncrementLikes(_ context.Context, id string) error {
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Likes++
	return nil
}

func (r *stubPostRepo) AppendComment(_ context.Context, id string, c domain.Comment) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Comments = append(p.Comments, c)
	return clonePost(p), nil
}

func (r *stubPostRepo) filter(keep func(*domain.Post) bool) []*domain.Post {
	var out []*domain.Post
	for _, id := range r.order {
		p, ok := r.posts[id]
		if ok && keep(p) {
			out = append(out, clonePost(p))
		}
	}
	return out
}

func (r *stubPostRepo) FindByTagsIn(_ context.Context, tags []string) ([]*domain.Post, error) {
	return r.filter(func(p *domain.Post) bool {
		for _, t := range p.Tags {
			for _, want := range tags {
				if t == want {
					return true
				}
			}
		}
		return false
	}), nil
}

func (r *stubPostRepo) FindByAuthor(_ context.Context, author string) ([]*domain.Post, error) {
	return r.filter(func(p *domain.Post) bool { return p.Author == author }), nil
}

func (r *stubPostRepo) FindByDateCreatedBetween(_ context.Context, from, to time.Time) ([]*domain.Post, error) {
	return r.filter(func(p *domain.Post) bool {
		return !p.DateCreated.Before(from) && p.DateCreated.Before(to)
	}), nil
}

// ---------------------------------------------------------------------------
// Token codec, hasher and audit stubs
// ---------------------------------------------------------------------------

// stubCodec decodes tokens of the form "login:secret".
type stubCodec struct{}

func (stubCodec) Decode(token string) (domain.Credentials, error) {
	login, secret, ok := strings.Cut(token, ":")
	if !ok || login == "" {
		return domain.Credentials{}, fmt.Errorf("%w: malformed token", domain.ErrUnauthenticated)
	}
	return domain.Credentials{Login: login, Secret: secret}, nil
}

type stubHasher struct {
	calls int
}

func (h *stubHasher) Hash(secret string) (string, error) {
	h.calls++
	return fmt.Sprintf("hashed-%d:%s", h.calls, secret), nil
}

func (h *stubHasher) Compare(hash, secret string) error {
	if _, plain, ok := strings.Cut(hash, ":"); ok && plain == secret {
		return nil
	}
	return domain.ErrInvalidCredentials
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(e domain.AuditEvent) {
	a.events = append(a.events, e)
}

var errStore = errors.New("store unavailable")

func account(login string, roles ...domain.Role) *domain.Account {
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	return &domain.Account{
		Login:        login,
		PasswordHash: "hashed-0:pw",
		FirstName:    strings.ToUpper(login[:1]),
		Roles:        domain.NewRoleSet(roles...),
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
}
