package services

import (
	"context"
	"fmt"

	appAuth "github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/auth"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
)

// ViewService composes the query store, notification feed, and membership
// index into the read models the client renders. Every projection is
// newest-first; list storage is oldest-first per the query store contract.
type ViewService interface {
	FaqForCourse(ctx context.Context, courseID int64, limit int) ([]models.Query, error)
	FaqAll(ctx context.Context) ([]models.Query, error)
	MyQueries(ctx context.Context, studentID int64) ([]models.Query, error)
	AnsweredForCourse(ctx context.Context, courseID int64) ([]models.Query, error)
	QueriesForCourse(ctx context.Context, teacherID, courseID int64) ([]models.Query, error)
	RosterWithPendingFlag(ctx context.Context, teacherID, courseID int64) ([]models.RosterEntry, error)
	StudentQueriesInCourse(ctx context.Context, teacherID, courseID, studentID int64) ([]models.Query, error)
	CoursesForUser(ctx context.Context, userID int64, role models.RoleType) ([]models.Course, error)
}

// viewServiceImpl implements ViewService
type viewServiceImpl struct {
	queryStore QueryStore
	membership appAuth.MembershipIndex
	courses    CourseLister
}

// NewViewService creates a new ViewService
func NewViewService(queryStore QueryStore, membership appAuth.MembershipIndex, courses CourseLister) ViewService {
	return &viewServiceImpl{
		queryStore: queryStore,
		membership: membership,
		courses:    courses,
	}
}

// FaqForCourse returns the course's answered queries, newest first. A
// positive limit caps the result; zero or negative means unlimited.
func (s *viewServiceImpl) FaqForCourse(ctx context.Context, courseID int64, limit int) ([]models.Query, error) {
	if _, err := s.courses.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	queries, err := s.queryStore.ListAnsweredByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course FAQ: %w", err)
	}

	queries = reverseQueries(queries)
	if limit > 0 && len(queries) > limit {
		queries = queries[:limit]
	}
	return queries, nil
}

// FaqAll returns answered queries across all courses, newest first
func (s *viewServiceImpl) FaqAll(ctx context.Context) ([]models.Query, error) {
	queries, err := s.queryStore.ListAnswered(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing FAQ feed: %w", err)
	}
	return reverseQueries(queries), nil
}

// MyQueries returns every query the student has asked, newest first,
// pending and answered alike
func (s *viewServiceImpl) MyQueries(ctx context.Context, studentID int64) ([]models.Query, error) {
	queries, err := s.queryStore.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student queries: %w", err)
	}
	return reverseQueries(queries), nil
}

// AnsweredForCourse returns a course's answered queries, newest first
func (s *viewServiceImpl) AnsweredForCourse(ctx context.Context, courseID int64) ([]models.Query, error) {
	return s.FaqForCourse(ctx, courseID, 0)
}

// QueriesForCourse returns every query in a course, pending included, for
// the owning teacher's inbox, newest first
func (s *viewServiceImpl) QueriesForCourse(ctx context.Context, teacherID, courseID int64) ([]models.Query, error) {
	if err := s.requireTeaches(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	queries, err := s.queryStore.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course queries: %w", err)
	}
	return reverseQueries(queries), nil
}

// RosterWithPendingFlag returns the course roster for its owning teacher
func (s *viewServiceImpl) RosterWithPendingFlag(ctx context.Context, teacherID, courseID int64) ([]models.RosterEntry, error) {
	if err := s.requireTeaches(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	roster, err := s.queryStore.Roster(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing roster: %w", err)
	}
	return roster, nil
}

// StudentQueriesInCourse returns one student's queries in one course for
// the owning teacher's drill-down, newest first
func (s *viewServiceImpl) StudentQueriesInCourse(ctx context.Context, teacherID, courseID, studentID int64) ([]models.Query, error) {
	if err := s.requireTeaches(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	queries, err := s.queryStore.ListByCourseAndStudent(ctx, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student queries in course: %w", err)
	}
	return reverseQueries(queries), nil
}

// CoursesForUser returns the course list for the caller's role: enrolled
// for students, taught for teachers, everything for admins
func (s *viewServiceImpl) CoursesForUser(ctx context.Context, userID int64, role models.RoleType) ([]models.Course, error) {
	switch role {
	case models.RoleStudent:
		return s.membership.ListEnrolledCourses(ctx, userID)
	case models.RoleTeacher:
		return s.membership.ListTaughtCourses(ctx, userID)
	case models.RoleAdmin:
		return s.courses.ListCourses(ctx)
	default:
		return nil, apperrors.ErrPermissionDenied
	}
}

func (s *viewServiceImpl) requireTeaches(ctx context.Context, teacherID, courseID int64) error {
	teaches, err := s.membership.Teaches(ctx, teacherID, courseID)
	if err != nil {
		return fmt.Errorf("error checking course ownership: %w", err)
	}
	if !teaches {
		return apperrors.ErrNotCourseOwner
	}
	return nil
}
