package services

import (
	"context"
	"fmt"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/metrics"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// NotificationService owns the notification feed and its read state
type NotificationService interface {
	QueryAnsweredHandler
	MarkRead(ctx context.Context, notificationID, callerID int64) error
	ListForUser(ctx context.Context, userID int64) ([]models.Notification, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationStore NotificationStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationStore NotificationStore) NotificationService {
	return &notificationServiceImpl{
		notificationStore: notificationStore,
	}
}

// OnQueryAnswered creates the notification for an answered query, exactly
// once per query. A redelivered event finds the existing row and returns it.
func (s *notificationServiceImpl) OnQueryAnswered(ctx context.Context, query *models.Query) (*models.Notification, error) {
	if query.Pending() {
		return nil, fmt.Errorf("query %d is not answered", query.ID)
	}

	courseName := query.CourseName
	if courseName == "" {
		courseName = "your course"
	}

	notification, created, err := s.notificationStore.CreateIfAbsent(ctx, &models.Notification{
		UserID:   query.StudentID,
		QueryID:  query.ID,
		CourseID: query.CourseID,
		Message:  fmt.Sprintf("Your question in %s was answered.", courseName),
	})
	if err != nil {
		return nil, err
	}

	if created {
		metrics.NotificationsCreated.Inc()
		logger.Info().Int64("notificationID", notification.ID).Int64("queryID", query.ID).Int64("userID", query.StudentID).Msg("Notification created")
	} else {
		logger.Debug().Int64("queryID", query.ID).Msg("Notification already exists, skipping")
	}

	return notification, nil
}

// MarkRead flips a notification to read. Only the recipient may do it, and
// asking twice is not an error.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, callerID int64) error {
	notification, err := s.notificationStore.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.UserID != callerID {
		return apperrors.ErrNotRecipient
	}

	if notification.Read {
		return nil
	}

	return s.notificationStore.MarkRead(ctx, notificationID)
}

// ListForUser returns the user's notifications, newest first, read and
// unread interleaved
func (s *notificationServiceImpl) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications, err := s.notificationStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	return notifications, nil
}
