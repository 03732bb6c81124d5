package ports

import (
	"context"
	"time"

	"github.com/ashkelon/forum/internal/core/domain"
)

// PostRepository persists posts keyed by id.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	// FindByID returns domain.ErrPostNotFound when no post is stored.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// UpdateContent replaces only the content field.
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error

	// IncrementLikes atomically adds one like. It returns domain.ErrPostNotFound
	// when the post does not exist.
	IncrementLikes(ctx context.Context, id string) error
	// AppendComment atomically pushes c and returns the updated post.
	AppendComment(ctx context.Context, id string, c domain.Comment) (*domain.Post, error)

	// FindByTagsIn returns posts carrying at least one of tags.
	FindByTagsIn(ctx context.Context, tags []string) ([]*domain.Post, error)
	FindByAuthor(ctx context.Context, author string) ([]*domain.Post, error)
	// FindByDateCreatedBetween returns posts with from <= DateCreated < to.
	FindByDateCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.Post, error)
}
