// Package user stores accounts with bcrypt-hashed passwords.
package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kroobeet/engine/pkg/db"
)

var (
	ErrNotFound           = errors.New("user: not found")
	ErrUsernameTaken      = errors.New("user: username already exists")
	ErrInvalidCredentials = errors.New("user: invalid credentials")
	ErrEmptyField         = errors.New("user: username and password are required")
)

// User is one row of the users table.
type User struct {
	Username     string
	PasswordHash string
	ID           int64
}

// Repository reads and writes users through a db.Querier.
type Repository struct {
	db   db.Querier
	cost int
}

// Option configures a Repository.
type Option func(*Repository)

// WithBcryptCost sets the hashing cost. Values outside bcrypt's range are ignored.
func WithBcryptCost(cost int) Option {
	return func(r *Repository) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			r.cost = cost
		}
	}
}

// NewRepository creates a Repository.
func NewRepository(q db.Querier, opts ...Option) *Repository {
	r := &Repository{db: q, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, username, password FROM users WHERE username = $1", username)
	if err != nil {
		return nil, err
	}
	return first(rows)
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, username, password FROM users WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return first(rows)
}

// Create hashes the password and inserts a new user.
// Returns ErrUsernameTaken when the username is already registered.
func (r *Repository) Create(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyField
	}

	if _, err := r.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, string(hash))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, db.ErrQueryFailed
	}

	return &User{
		ID:           rows[0].Int64("id"),
		Username:     username,
		PasswordHash: string(hash),
	}, nil
}

// Authenticate returns the user when the password matches its hash.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := r.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func first(rows []db.Row) (*User, error) {
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &User{
		ID:           rows[0].Int64("id"),
		Username:     rows[0].String("username"),
		PasswordHash: rows[0].String("password"),
	}, nil
}
