package repository

import (
	"context"
	"errors"

	"post-board/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup or conditional write matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert collides with the unique
	// email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	UpdateRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	// DeleteWithPosts removes the user and every post they own in a single
	// transaction. ErrNotFound means no user row existed; nothing is deleted
	// in that case.
	DeleteWithPosts(ctx context.Context, userID int64) error
}
