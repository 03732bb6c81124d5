package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

type stubAccountService struct {
	registerFn       func(ctx context.Context, in ports.ProfileInput, token string) (*domain.Profile, error)
	editFn           func(ctx context.Context, in ports.ProfileInput, token string) (*domain.Profile, error)
	removeFn         func(ctx context.Context, login, token string) (*domain.Profile, error)
	grantFn          func(ctx context.Context, login string, role domain.Role) ([]domain.Role, error)
	revokeFn         func(ctx context.Context, login string, role domain.Role) ([]domain.Role, error)
	changePasswordFn func(ctx context.Context, secret, token string) error
	resolveFn        func(ctx context.Context, token string) (*domain.Profile, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.ProfileInput, token string) (*domain.Profile, error) {
	return s.registerFn(ctx, in, token)
}

func (s *stubAccountService) EditProfile(ctx context.Context, in ports.ProfileInput, token string) (*domain.Profile, error) {
	return s.editFn(ctx, in, token)
}

func (s *stubAccountService) RemoveAccount(ctx context.Context, login, token string) (*domain.Profile, error) {
	return s.removeFn(ctx, login, token)
}

func (s *stubAccountService) GrantRole(ctx context.Context, login string, role domain.Role) ([]domain.Role, error) {
	return s.grantFn(ctx, login, role)
}

func (s *stubAccountService) RevokeRole(ctx context.Context, login string, role domain.Role) ([]domain.Role, error) {
	return s.revokeFn(ctx, login, role)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, secret, token string) error {
	return s.changePasswordFn(ctx, secret, token)
}

func (s *stubAccountService) ResolveSession(ctx context.Context, token string) (*domain.Profile, error) {
	return s.resolveFn(ctx, token)
}

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) Issue(login string) (string, error) {
	return s.token + ":" + login, s.err
}

type stubForumService struct {
	createFn   func(ctx context.Context, in ports.PostInput) (*domain.Post, error)
	getFn      func(ctx context.Context, id string) (*domain.Post, error)
	deleteFn   func(ctx context.Context, id, token string) (*domain.Post, error)
	updateFn   func(ctx context.Context, id, content, token string) (*domain.Post, error)
	likeFn     func(ctx context.Context, id string) (bool, error)
	commentFn  func(ctx context.Context, id string, in ports.CommentInput) (*domain.Post, error)
	byTagsFn   func(ctx context.Context, tags []string) ([]*domain.Post, error)
	byAuthorFn func(ctx context.Context, author string) ([]*domain.Post, error)
	byPeriodFn func(ctx context.Context, from, to string) ([]*domain.Post, error)
}

func (s *stubForumService) CreatePost(ctx context.Context, in ports.PostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubForumService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubForumService) DeletePost(ctx context.Context, id, token string) (*domain.Post, error) {
	return s.deleteFn(ctx, id, token)
}

func (s *stubForumService) UpdatePost(ctx context.Context, id, content, token string) (*domain.Post, error) {
	return s.updateFn(ctx, id, content, token)
}

func (s *stubForumService) AddLike(ctx context.Context, id string) (bool, error) {
	return s.likeFn(ctx, id)
}

func (s *stubForumService) AddComment(ctx context.Context, id string, in ports.CommentInput) (*domain.Post, error) {
	return s.commentFn(ctx, id, in)
}

func (s *stubForumService) FindByTags(ctx context.Context, tags []string) ([]*domain.Post, error) {
	return s.byTagsFn(ctx, tags)
}

func (s *stubForumService) FindByAuthor(ctx context.Context, author string) ([]*domain.Post, error) {
	return s.byAuthorFn(ctx, author)
}

func (s *stubForumService) FindByDateRange(ctx context.Context, from, to string) ([]*domain.Post, error) {
	return s.byPeriodFn(ctx, from, to)
}

// newContext builds an echo context with the validator installed, a JSON
// body and the optional Authorization header.
func newContext(method, target string, body io.Reader, token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
