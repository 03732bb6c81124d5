package ports

import (
	"context"

	"github.com/ashkelon/forum/internal/core/domain"
)

// PostInput carries the fields of a new post.
type PostInput struct {
	Title   string
	Content string
	Author  string
	Tags    []string
}

// CommentInput carries a new comment.
type CommentInput struct {
	User    string
	Message string
}

// ForumService owns the post and comment lifecycle.
type ForumService interface {
	CreatePost(ctx context.Context, in PostInput) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	DeletePost(ctx context.Context, id, token string) (*domain.Post, error)
	UpdatePost(ctx context.Context, id, content, token string) (*domain.Post, error)
	AddLike(ctx context.Context, id string) (bool, error)
	AddComment(ctx context.Context, id string, in CommentInput) (*domain.Post, error)
	FindByTags(ctx context.Context, tags []string) ([]*domain.Post, error)
	FindByAuthor(ctx context.Context, author string) ([]*domain.Post, error)
	// FindByDateRange takes inclusive YYYY-MM-DD bounds.
	FindByDateRange(ctx context.Context, from, to string) ([]*domain.Post, error)
}
