package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"post-board/internal/domain"
	"post-board/internal/repository"
)

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (int64, error) {
	post.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO posts (user_id, content, created_at)
VALUES (?, ?, ?)`,
		post.UserID,
		post.Content,
		post.CreatedAt,
	)
	if err != nil {
		// the author row can vanish between authentication and insert when
		// the account is deleted concurrently
		if strings.Contains(strings.ToLower(err.Error()), "foreign key") {
			return 0, fmt.Errorf("post author: %w", repository.ErrNotFound)
		}
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

func (r *PostRepository) List(ctx context.Context, search string, limit int) ([]domain.PostWithAuthor, error) {
	query := `
SELECT posts.id, posts.user_id, posts.content, posts.created_at, users.username
FROM posts
JOIN users ON users.id = posts.user_id`
	var args []any

	// a single combined filter over content and author name; sqlite LIKE is
	// case-insensitive for ASCII
	if term := strings.TrimSpace(search); term != "" {
		query += `
WHERE posts.content LIKE ? OR IFNULL(users.username, '') LIKE ?`
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern)
	}

	query += `
ORDER BY posts.created_at DESC, posts.id DESC
LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.PostWithAuthor
	for rows.Next() {
		var (
			post     domain.PostWithAuthor
			username sql.NullString
		)
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Content,
			&post.CreatedAt,
			&username,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		post.Username = domain.UnknownAuthor
		if username.Valid && strings.TrimSpace(username.String) != "" {
			post.Username = username.String
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) DeleteAny(ctx context.Context, postID int64) error {
	return r.delete(ctx, `DELETE FROM posts WHERE id = ?`, postID)
}

func (r *PostRepository) DeleteOwned(ctx context.Context, postID, ownerID int64) error {
	return r.delete(ctx, `DELETE FROM posts WHERE id = ? AND user_id = ?`, postID, ownerID)
}

// delete runs a conditional delete; losing a concurrent race or missing the
// ownership condition both surface as ErrNotFound.
func (r *PostRepository) delete(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
