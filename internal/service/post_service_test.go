package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-board/internal/domain"
	"post-board/internal/service"
)

func registerUser(t *testing.T, env *testEnv, email, username, role string) *domain.User {
	t.Helper()

	user, err := env.auth.Register(context.Background(), email, "Passw0rd", username, role)
	require.NoError(t, err)
	return user
}

func TestCreatePostTrimsContent(t *testing.T) {
	env := newTestEnv(t)
	alice := registerUser(t, env, "alice@b.com", "alice", "")

	post, err := env.board.Create(context.Background(), alice, "  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Content)
	assert.Equal(t, "alice", post.Username)
	assert.True(t, post.CanDelete)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := registerUser(t, env, "alice@b.com", "", "")

	_, err := env.board.Create(ctx, alice, "")
	require.ErrorIs(t, err, service.ErrEmptyContent)

	_, err = env.board.Create(ctx, alice, "   \t\n ")
	require.ErrorIs(t, err, service.ErrEmptyContent)

	listed, err := env.board.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	env := newTestEnv(t)

	ghost := &domain.User{ID: 9999, Role: domain.RoleUser}
	_, err := env.board.Create(context.Background(), ghost, "boo")
	require.ErrorIs(t, err, service.ErrAuthorNotFound)
}

func TestListCanDeletePerCaller(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@b.com", "alice", "")
	bob := registerUser(t, env, "bob@b.com", "bob", "")
	admin := registerUser(t, env, "admin@b.com", "admin", "Admin")

	_, err := env.board.Create(ctx, alice, "alice's post")
	require.NoError(t, err)

	asAlice, err := env.board.List(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, asAlice, 1)
	assert.True(t, asAlice[0].CanDelete)

	asBob, err := env.board.List(ctx, bob, "")
	require.NoError(t, err)
	require.Len(t, asBob, 1)
	assert.False(t, asBob[0].CanDelete)

	asAdmin, err := env.board.List(ctx, admin, "")
	require.NoError(t, err)
	require.Len(t, asAdmin, 1)
	assert.True(t, asAdmin[0].CanDelete)
}

func TestListSearchMatchesContentOrAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@b.com", "Wordsmith", "")
	bob := registerUser(t, env, "bob@b.com", "bob", "")

	_, err := env.board.Create(ctx, alice, "a treatise on gophers")
	require.NoError(t, err)
	_, err = env.board.Create(ctx, bob, "unrelated musings")
	require.NoError(t, err)

	byContent, err := env.board.List(ctx, alice, "GOPHERS")
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, "Wordsmith", byContent[0].Username)

	byAuthor, err := env.board.List(ctx, alice, "wordsmith")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	blank, err := env.board.List(ctx, alice, "   ")
	require.NoError(t, err)
	assert.Len(t, blank, 2)
}

func TestListCapsResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@b.com", "", "")
	for i := 0; i < 510; i++ {
		_, err := env.board.Create(ctx, alice, fmt.Sprintf("post number %d", i))
		require.NoError(t, err)
	}

	listed, err := env.board.List(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, listed, 500)
	// newest first: the last created post leads
	assert.Equal(t, "post number 509", listed[0].Content)
}

func TestDeletePostOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@b.com", "", "")
	bob := registerUser(t, env, "bob@b.com", "", "")

	post, err := env.board.Create(ctx, alice, "mine alone")
	require.NoError(t, err)

	// a non-owner and a nonexistent id report the same error
	errForeign := env.board.Delete(ctx, bob, post.ID)
	errMissing := env.board.Delete(ctx, bob, post.ID+100)
	require.ErrorIs(t, errForeign, service.ErrPostNotFound)
	require.ErrorIs(t, errMissing, service.ErrPostNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())

	require.NoError(t, env.board.Delete(ctx, alice, post.ID))

	listed, err := env.board.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestAdminDeletesAnyPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@b.com", "", "")
	admin := registerUser(t, env, "admin@b.com", "", "Admin")

	post, err := env.board.Create(ctx, alice, "soon gone")
	require.NoError(t, err)

	require.NoError(t, env.board.Delete(ctx, admin, post.ID))
	require.ErrorIs(t, env.board.Delete(ctx, admin, post.ID), service.ErrPostNotFound)
}

func TestDeleteAccountRemovesUserAndPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@b.com", "", "")
	bob := registerUser(t, env, "bob@b.com", "", "")

	_, err := env.board.Create(ctx, alice, "one")
	require.NoError(t, err)
	_, err = env.board.Create(ctx, alice, "two")
	require.NoError(t, err)
	keep, err := env.board.Create(ctx, bob, "bob stays")
	require.NoError(t, err)

	require.NoError(t, env.auth.DeleteAccount(ctx, alice.ID))

	// the account and every owned post are gone in one step
	_, err = env.auth.Authenticate(ctx, alice.Token)
	require.ErrorIs(t, err, service.ErrInvalidToken)

	listed, err := env.board.List(ctx, bob, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, keep.ID, listed[0].ID)

	// repeating the delete reports not-found, nothing else changes
	require.ErrorIs(t, env.auth.DeleteAccount(ctx, alice.ID), service.ErrUserNotFound)
}
