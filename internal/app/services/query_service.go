package services

import (
	"context"
	"fmt"
	"strings"

	appAuth "github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/auth"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/metrics"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/moderation"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/observability"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// QueryAnsweredHandler consumes the event emitted when a query transitions
// to answered. The handler must be idempotent per query: the transition is
// durable before the event fires, so delivery is at-least-once.
type QueryAnsweredHandler interface {
	OnQueryAnswered(ctx context.Context, query *models.Query) (*models.Notification, error)
}

// QueryService defines the interface for the query lifecycle
type QueryService interface {
	CreateQuery(ctx context.Context, studentID, courseID int64, question string) (int64, error)
	AnswerQuery(ctx context.Context, teacherID, queryID int64, answer string) error
	GetQuery(ctx context.Context, callerID int64, role models.RoleType, queryID int64) (*models.Query, error)
}

// queryServiceImpl implements QueryService
type queryServiceImpl struct {
	queryStore QueryStore
	membership appAuth.MembershipIndex
	notifier   QueryAnsweredHandler
	moderator  *moderation.Moderator
}

// NewQueryService creates a new QueryService. moderator may be nil, which
// disables content screening.
func NewQueryService(queryStore QueryStore, membership appAuth.MembershipIndex, notifier QueryAnsweredHandler, moderator *moderation.Moderator) QueryService {
	return &queryServiceImpl{
		queryStore: queryStore,
		membership: membership,
		notifier:   notifier,
		moderator:  moderator,
	}
}

// CreateQuery creates a pending query for an enrolled student
func (s *queryServiceImpl) CreateQuery(ctx context.Context, studentID, courseID int64, question string) (int64, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return 0, apperrors.ErrEmptyQuestion
	}

	if s.moderator != nil {
		if result := s.moderator.Check(ctx, question); result.Blocked {
			logger.Warn().Int64("studentID", studentID).Str("label", result.Label).Float64("confidence", result.Confidence).Msg("Question blocked by moderation")
			metrics.QueriesModerated.Inc()
			return 0, apperrors.ErrContentRejected
		}
	}

	enrolled, err := s.membership.IsEnrolled(ctx, studentID, courseID)
	if err != nil {
		return 0, fmt.Errorf("error checking enrollment: %w", err)
	}
	if !enrolled {
		return 0, apperrors.ErrNotEnrolled
	}

	id, err := s.queryStore.CreateQuery(ctx, &models.Query{
		CourseID:  courseID,
		StudentID: studentID,
		Question:  question,
	})
	if err != nil {
		return 0, err
	}

	metrics.QueriesCreated.Inc()
	return id, nil
}

// AnswerQuery records the answer for a pending query and emits the answered
// event. Authorization is checked before state, so a non-owner is rejected
// whether or not the query was already answered. The transition itself is
// the authoritative outcome; a failed emission is retried in-request and,
// failing that, left for the backfill sweep without rolling the answer back.
func (s *queryServiceImpl) AnswerQuery(ctx context.Context, teacherID, queryID int64, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return apperrors.ErrEmptyAnswer
	}

	query, err := s.queryStore.GetQueryByID(ctx, queryID)
	if err != nil {
		return err
	}

	teaches, err := s.membership.Teaches(ctx, teacherID, query.CourseID)
	if err != nil {
		return fmt.Errorf("error checking course ownership: %w", err)
	}
	if !teaches {
		return apperrors.ErrNotCourseOwner
	}

	if err := s.queryStore.Answer(ctx, queryID, answer); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyAnswered) {
			metrics.AnswerConflicts.Inc()
		}
		return err
	}
	metrics.QueriesAnswered.Inc()

	s.emitAnswered(ctx, queryID)
	return nil
}

// emitAnswered hands the answered query to the notification handler, once
// plus one retry. A query still missing its notification after that is
// picked up by the NotificationBackfill sweep. The handler is keyed on
// query id, so a later redelivery of the same event cannot duplicate the
// notification.
func (s *queryServiceImpl) emitAnswered(ctx context.Context, queryID int64) {
	query, err := s.queryStore.GetQueryByID(ctx, queryID)
	if err != nil {
		logger.Error().Err(err).Int64("queryID", queryID).Msg("Failed to reload answered query for notification")
		observability.CaptureErr(err)
		return
	}

	if _, err := s.notifier.OnQueryAnswered(ctx, query); err != nil {
		logger.Warn().Err(err).Int64("queryID", queryID).Msg("Notification dispatch failed, retrying")
		if _, err := s.notifier.OnQueryAnswered(ctx, query); err != nil {
			logger.Error().Err(err).Int64("queryID", queryID).Msg("Notification dispatch failed after retry")
			observability.CaptureErr(err)
		}
	}
}

// GetQuery returns one query to its asker, the course's teacher, or an admin
func (s *queryServiceImpl) GetQuery(ctx context.Context, callerID int64, role models.RoleType, queryID int64) (*models.Query, error) {
	query, err := s.queryStore.GetQueryByID(ctx, queryID)
	if err != nil {
		return nil, err
	}

	switch {
	case role == models.RoleAdmin:
		return query, nil
	case callerID == query.StudentID:
		return query, nil
	case role == models.RoleTeacher:
		teaches, err := s.membership.Teaches(ctx, callerID, query.CourseID)
		if err != nil {
			return nil, fmt.Errorf("error checking course ownership: %w", err)
		}
		if teaches {
			return query, nil
		}
	}

	return nil, apperrors.ErrPermissionDenied
}
