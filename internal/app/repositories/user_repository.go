package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/dberrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// UserRepository handles user database operations. Users are written only by
// the seed/admin path; request handling reads.
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sqlQuery, args, err := r.sb.Select("id", "email", "password", "name", "roll", "role_type", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.Roll, &user.RoleType, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error querying user by ID")
		return nil, fmt.Errorf("error querying user ID=%d: %w", id, err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlQuery, args, err := r.sb.Select("id", "email", "password", "name", "roll", "role_type", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.Roll, &user.RoleType, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error querying user by email")
		return nil, fmt.Errorf("error querying user email=%s: %w", email, err)
	}

	return &user, nil
}

// CreateUser inserts a new user. Used by the seed/admin bootstrap only.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("users").
		Columns("email", "password", "name", "roll", "role_type").
		Values(user.Email, user.Password, user.Name, user.Roll, user.RoleType).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.NewConflictError("email already exists")
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error inserting user")
		return 0, fmt.Errorf("error inserting user: %w", err)
	}

	logger.Info().Int64("userID", id).Str("role", string(user.RoleType)).Msg("User created")
	return id, nil
}
