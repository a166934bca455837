package service

import (
	"context"
	"errors"
	"strings"

	"post-board/internal/domain"
	"post-board/internal/repository"
)

var (
	// ErrEmptyContent rejects posts that are empty after trimming.
	ErrEmptyContent = errors.New("post content cannot be empty")
	// ErrPostNotFound covers both nonexistent posts and posts the caller may
	// not delete, so unauthorized callers cannot probe which ids exist.
	ErrPostNotFound = errors.New("post not found or unauthorized")
	// ErrAuthorNotFound indicates the authenticated author's row vanished
	// before the post was written.
	ErrAuthorNotFound = errors.New("user not found")
)

// maxListResults caps every listing; there is no pagination beyond this.
const maxListResults = 500

// PostService covers creation, listing and deletion of posts.
type PostService interface {
	Create(ctx context.Context, author *domain.User, content string) (*domain.PostWithAuthor, error)
	List(ctx context.Context, caller *domain.User, search string) ([]domain.PostWithAuthor, error)
	Delete(ctx context.Context, caller *domain.User, postID int64) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, author *domain.User, content string) (*domain.PostWithAuthor, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := &domain.Post{
		UserID:  author.ID,
		Content: content,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	return &domain.PostWithAuthor{
		Post:      *post,
		Username:  author.DisplayName(),
		CanDelete: true,
	}, nil
}

func (s *postService) List(ctx context.Context, caller *domain.User, search string) ([]domain.PostWithAuthor, error) {
	posts, err := s.posts.List(ctx, search, maxListResults)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].CanDelete = caller.IsAdmin() || posts[i].UserID == caller.ID
	}
	return posts, nil
}

func (s *postService) Delete(ctx context.Context, caller *domain.User, postID int64) error {
	var err error
	if caller.IsAdmin() {
		err = s.posts.DeleteAny(ctx, postID)
	} else {
		err = s.posts.DeleteOwned(ctx, postID, caller.ID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
