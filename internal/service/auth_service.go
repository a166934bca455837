package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"post-board/internal/domain"
	"post-board/internal/repository"
)

var (
	// ErrMissingFields indicates email or password was absent from a request.
	ErrMissingFields = errors.New("email and password are required")
	// ErrInvalidEmail indicates the email does not match the local@domain shape.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword indicates the password fails the strength policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters long and include uppercase, lowercase letters and numbers")
	// ErrInvalidRole indicates a role outside the known User/Admin values.
	ErrInvalidRole = errors.New("invalid role, valid roles are: User, Admin")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a presented bearer token resolves to no user.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound indicates the targeted user record does not exist.
	ErrUserNotFound = errors.New("user not found")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService covers account lifecycle and bearer-token authentication.
type AuthService interface {
	Register(ctx context.Context, email, password, username, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
	// ChangeRole is the trusted operator path; it is never exposed over HTTP.
	ChangeRole(ctx context.Context, email, role string) (*domain.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, email, password, username, role string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !isStrongPassword(password) {
		return nil, ErrWeakPassword
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// the token is random and stored server-side; login hands back the
	// stored value and never rotates it
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Token:        uuid.NewString(),
		Role:         parsedRole,
	}
	if name := strings.TrimSpace(username); name != "" {
		user.Username = &name
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.DeleteWithPosts(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *authService) ChangeRole(ctx context.Context, email, role string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(role) == "" {
		return nil, ErrInvalidRole
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	user, err := s.users.UpdateRole(ctx, email, parsedRole)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
