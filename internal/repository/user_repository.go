package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/veda242/taskmanager/internal/model"
	"github.com/veda242/taskmanager/internal/utils"
)

// ErrUsernameTaken is returned when a registration collides with an
// existing username.
var ErrUsernameTaken = errors.New("username already taken")

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the user, returning its ID.
// Uniqueness is enforced by the UNIQUE KEY on users.username, so two
// concurrent registrations of the same name cannot both succeed; the
// loser surfaces as ErrUsernameTaken.  Usernames are case-sensitive and
// stored as given.
func (r *UserRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		// MySQL error 1062 = duplicate entry for a unique key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
