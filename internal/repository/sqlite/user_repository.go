package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"post-board/internal/domain"
	"post-board/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	username TEXT NULL,
	password_hash TEXT NOT NULL,
	token TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL DEFAULT 'User',
	created_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.CreatedAt = time.Now().UTC()

	var username sql.NullString
	if user.Username != nil {
		username = sql.NullString{String: *user.Username, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, username, password_hash, token, role, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email,
		username,
		user.PasswordHash,
		user.Token,
		string(user.Role),
		user.CreatedAt,
	)
	if err != nil {
		// the unique constraint, not a pre-check, is what makes concurrent
		// registrations of the same email race-safe
		if strings.Contains(err.Error(), "users.email") {
			return 0, fmt.Errorf("%w: %s", repository.ErrDuplicateEmail, user.Email)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, username, password_hash, token, role, created_at
FROM users
WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, username, password_hash, token, role, created_at
FROM users
WHERE token = ?`,
		token,
	)
	return scanUser(row)
}

func (r *UserRepository) UpdateRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE email = ?`,
		string(role), email)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update role rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByEmail(ctx, email)
}

func (r *UserRepository) DeleteWithPosts(ctx context.Context, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete posts for user: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		// no such user; the deferred rollback restores any posts deleted above
		return repository.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit account delete: %w", err)
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user     domain.User
		username sql.NullString
		role     string
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&username,
		&user.PasswordHash,
		&user.Token,
		&role,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if username.Valid {
		user.Username = &username.String
	}
	user.Role = domain.Role(role)
	return &user, nil
}
