package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"post-board/internal/domain"
	"post-board/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRepos(t *testing.T) (repository.UserRepository, repository.PostRepository) {
	t.Helper()

	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	ctx := context.Background()
	require.NoError(t, users.Init(ctx))
	require.NoError(t, posts.Init(ctx))
	return users, posts
}

func seedUser(t *testing.T, users repository.UserRepository, email string, username *string) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$10$hash",
		Token:        "token-" + email,
		Role:         domain.RoleUser,
	}
	_, err := users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func seedPost(t *testing.T, posts repository.PostRepository, userID int64, content string) *domain.Post {
	t.Helper()

	post := &domain.Post{UserID: userID, Content: content}
	_, err := posts.Create(context.Background(), post)
	require.NoError(t, err)
	return post
}

func strPtr(s string) *string { return &s }
