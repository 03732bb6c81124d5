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

const dateLayout = "2006-01-02"

// ForumService implements post and comment operations.
type ForumService struct {
	posts    ports.PostRepository
	accounts ports.AccountRepository
	codec    ports.TokenCodec
	audit    ports.AuditRecorder
	now      func() time.Time
	log      zerolog.Logger
}

func NewForumService(
	posts ports.PostRepository,
	accounts ports.AccountRepository,
	codec ports.TokenCodec,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *ForumService {
	return &ForumService{
		posts:    posts,
		accounts: accounts,
		codec:    codec,
		audit:    audit,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// CreatePost stores a new post. Creation is open to anyone.
func (s *ForumService) CreatePost(ctx context.Context, in ports.PostInput) (*domain.Post, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	post := &domain.Post{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Content:     in.Content,
		Author:      in.Author,
		Tags:        tags,
		DateCreated: s.now(),
		Comments:    []domain.Comment{},
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("author", post.Author).Msg("post created")
	return post, nil
}

func (s *ForumService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// DeletePost removes a post when the caller authored it or holds elevated
// rights, and returns the post as it was before deletion.
func (s *ForumService) DeletePost(ctx context.Context, id, token string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	creds, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	actor, err := loadActor(ctx, s.accounts, creds.Login)
	if err != nil {
		return nil, err
	}
	if !canActOn(actor, post.Author) {
		s.log.Warn().Str("actor", actor.Login).Str("post_id", id).Msg("post deletion denied")
		return nil, domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			ID:        uuid.NewString(),
			Action:    domain.AuditPostDeleted,
			Actor:     actor.Login,
			Subject:   id,
			Detail:    post.Author,
			Timestamp: s.now(),
		})
	}
	s.log.Info().Str("actor", actor.Login).Str("post_id", id).Msg("post deleted")
	return post, nil
}

// UpdatePost replaces the content of a post. Only the author may do so;
// elevated roles do not override authorship here.
func (s *ForumService) UpdatePost(ctx context.Context, id, content, token string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	creds, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	if creds.Login != post.Author {
		s.log.Warn().Str("actor", creds.Login).Str("post_id", id).Msg("post update denied")
		return nil, domain.ErrForbidden
	}

	if err := s.posts.UpdateContent(ctx, id, content); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	post.Content = content
	return post, nil
}

// AddLike reports false when the post does not exist.
func (s *ForumService) AddLike(ctx context.Context, id string) (bool, error) {
	if err := s.posts.IncrementLikes(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("add like: %w", err)
	}
	return true, nil
}

func (s *ForumService) AddComment(ctx context.Context, id string, in ports.CommentInput) (*domain.Post, error) {
	comment := domain.Comment{
		User:        in.User,
		Message:     in.Message,
		DateCreated: s.now(),
	}
	return s.posts.AppendComment(ctx, id, comment)
}

func (s *ForumService) FindByTags(ctx context.Context, tags []string) ([]*domain.Post, error) {
	return s.posts.FindByTagsIn(ctx, tags)
}

func (s *ForumService) FindByAuthor(ctx context.Context, author string) ([]*domain.Post, error) {
	return s.posts.FindByAuthor(ctx, author)
}

// FindByDateRange lists posts created on any calendar day from `from` through
// `to`, both inclusive.
func (s *ForumService) FindByDateRange(ctx context.Context, from, to string) ([]*domain.Post, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("%w: from: %w", domain.ErrInvalidDate, err)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("%w: to: %w", domain.ErrInvalidDate, err)
	}
	return s.posts.FindByDateCreatedBetween(ctx, start, end.AddDate(0, 0, 1))
}
