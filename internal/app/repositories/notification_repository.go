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
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateIfAbsent inserts the notification for a query unless one already
// exists. The unique index on query_id absorbs redelivered events, so the
// returned notification is the same row no matter how often this runs. The
// bool reports whether this call inserted the row.
func (r *NotificationRepository) CreateIfAbsent(ctx context.Context, notification *models.Notification) (*models.Notification, bool, error) {
	sqlQuery, args, err := r.sb.Insert("notifications").
		Columns("user_id", "query_id", "course_id", "message").
		Values(notification.UserID, notification.QueryID, notification.CourseID, notification.Message).
		Suffix("ON CONFLICT (query_id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build create notification SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("queryID", notification.QueryID).Msg("Error inserting notification")
		return nil, false, fmt.Errorf("error inserting notification: %w", err)
	}
	created := cmdTag.RowsAffected() > 0

	existing, err := r.GetByQueryID(ctx, notification.QueryID)
	if err != nil {
		return nil, false, err
	}
	return existing, created, nil
}

// GetByQueryID retrieves the notification created for a query
func (r *NotificationRepository) GetByQueryID(ctx context.Context, queryID int64) (*models.Notification, error) {
	sqlQuery, args, err := r.sb.Select("id", "user_id", "query_id", "course_id", "message", "read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"query_id": queryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notification by query SQL: %w", err)
	}

	var n models.Notification
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(
		&n.ID, &n.UserID, &n.QueryID, &n.CourseID, &n.Message, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Int64("queryID", queryID).Msg("Error querying notification by query ID")
		return nil, fmt.Errorf("error querying notification for query ID=%d: %w", queryID, err)
	}

	return &n, nil
}

// GetByID retrieves a notification by id
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sqlQuery, args, err := r.sb.Select("id", "user_id", "query_id", "course_id", "message", "read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notification SQL: %w", err)
	}

	var n models.Notification
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(
		&n.ID, &n.UserID, &n.QueryID, &n.CourseID, &n.Message, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error querying notification by ID")
		return nil, fmt.Errorf("error querying notification ID=%d: %w", id, err)
	}

	return &n, nil
}

// MarkRead flips the read flag to true. Already-read rows are left alone,
// which makes the operation idempotent.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error marking notification read")
		return fmt.Errorf("error marking notification ID=%d read: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// ListByUser returns a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	sqlQuery, args, err := r.sb.Select("id", "user_id", "query_id", "course_id", "message", "read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notifications SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list notifications SQL")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.QueryID, &n.CourseID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row")
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}
