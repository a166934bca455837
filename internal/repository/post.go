package repository

import (
	"context"

	"post-board/internal/domain"
)

// PostRepository defines persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	// List returns posts joined with their author's display name, newest
	// first. A non-empty search term filters on post content or author name
	// as a case-insensitive substring.
	List(ctx context.Context, search string, limit int) ([]domain.PostWithAuthor, error)
	// DeleteAny removes a post regardless of owner.
	DeleteAny(ctx context.Context, postID int64) error
	// DeleteOwned removes a post only if ownerID owns it. A post owned by
	// someone else and a nonexistent post both report ErrNotFound.
	DeleteOwned(ctx context.Context, postID, ownerID int64) error
}
