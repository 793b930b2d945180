package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
)

const userColumns = `u.id, u.name, u.email, u.avatar_url, u.created_at, u.updated_at`

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	if isNoRows(err) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &user, nil
}

// UpsertByIdentity находит пользователя по (provider, subject) или создает нового.
// Существующему пользователю имя и аватар не перезаписываются.
func (r *userRepository) UpsertByIdentity(ctx context.Context, profile *domain.VerifiedProfile) (*domain.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer func() { _ = tx.Rollback() }()

	var user domain.User
	err = tx.GetContext(ctx, &user, `
		SELECT `+userColumns+`
		FROM users u
		JOIN user_identities i ON i.user_id = u.id
		WHERE i.provider = $1 AND i.subject = $2`,
		profile.Provider, profile.Subject)
	switch {
	case err == nil:
		return &user, tx.Commit()
	case !isNoRows(err):
		r.logger.Error("Failed to look up identity",
			zap.String("provider", profile.Provider),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	err = tx.GetContext(ctx, &user, `
		INSERT INTO users (name, email, avatar_url) VALUES ($1, $2, $3)
		RETURNING id, name, email, avatar_url, created_at, updated_at`,
		profile.Name, profile.Email, profile.AvatarURL)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_identities (user_id, provider, subject) VALUES ($1, $2, $3)`,
		user.ID, profile.Provider, profile.Subject)
	if err != nil {
		r.logger.Error("Failed to bind identity", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit identity upsert: %w", err)
	}
	return &user, nil
}

// UpdateProfile обновляет имя; avatarURL == nil оставляет текущий аватар
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, name string, avatarURL *string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users
		SET name = $2, avatar_url = COALESCE($3, avatar_url), updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, email, avatar_url, created_at, updated_at`,
		id, name, avatarURL)
	if isNoRows(err) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update user profile", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &user, nil
}
