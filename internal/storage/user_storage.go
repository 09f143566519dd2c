package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"MentalHealthSentiment_WebProject/internal/models"
)

// CreateUser inserts a new user. A taken username yields ErrUsernameExists.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.timestamp(),
	}

	id, err := s.insertReturningID(ctx, s.db,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		user.Username, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUsernameExists
		}
		return models.User{}, fmt.Errorf("storage: create user: %w", err)
	}
	user.ID = id
	return user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.getUser(ctx, "username = ?", username)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	return s.getUser(ctx, "id = ?", id)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (models.User, error) {
	query := s.target.Dialect.rebind("SELECT id, username, password_hash, created_at FROM users WHERE " + where)

	var (
		user    models.User
		created dbTime
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Username, &user.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("storage: get user: %w", err)
	}
	user.CreatedAt = created.Time
	return user, nil
}
