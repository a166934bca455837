package service_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"post-board/internal/repository"
	"post-board/internal/repository/sqlite"
	"post-board/internal/service"
)

type testEnv struct {
	db    *sql.DB
	users repository.UserRepository
	posts repository.PostRepository
	auth  service.AuthService
	board service.PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	posts := sqlite.NewPostRepository(db)

	ctx := context.Background()
	require.NoError(t, users.Init(ctx))
	require.NoError(t, posts.Init(ctx))

	return &testEnv{
		db:    db,
		users: users,
		posts: posts,
		auth:  service.NewAuthService(users),
		board: service.NewPostService(posts),
	}
}
