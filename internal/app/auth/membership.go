package auth

import (
	"context"
	"fmt"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
)

// UserStore is the user lookup the membership index needs
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// CourseStore is the course/enrollment lookup the membership index needs
type CourseStore interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error)
	Teaches(ctx context.Context, teacherID, courseID int64) (bool, error)
	ListCoursesByStudent(ctx context.Context, studentID int64) ([]models.Course, error)
	ListCoursesByTeacher(ctx context.Context, teacherID int64) ([]models.Course, error)
}

// MembershipIndex answers who may act inside a course: enrollment for
// students, ownership for teachers. Lookups never mutate; membership
// changes belong to the external admin tooling.
type MembershipIndex interface {
	IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error)
	Teaches(ctx context.Context, teacherID, courseID int64) (bool, error)
	ListEnrolledCourses(ctx context.Context, studentID int64) ([]models.Course, error)
	ListTaughtCourses(ctx context.Context, teacherID int64) ([]models.Course, error)
}

// MembershipService implements MembershipIndex on the database repositories
type MembershipService struct {
	userStore   UserStore
	courseStore CourseStore
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(userStore UserStore, courseStore CourseStore) *MembershipService {
	return &MembershipService{
		userStore:   userStore,
		courseStore: courseStore,
	}
}

// IsEnrolled reports whether the student is enrolled in the course. A
// missing student or course is an error; a non-member is plain false.
func (s *MembershipService) IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error) {
	if _, err := s.requireUser(ctx, studentID, models.RoleStudent); err != nil {
		return false, err
	}
	if _, err := s.courseStore.GetCourseByID(ctx, courseID); err != nil {
		return false, err
	}

	return s.courseStore.IsEnrolled(ctx, studentID, courseID)
}

// Teaches reports whether the teacher owns the course. A missing teacher or
// course is an error; a non-owner is plain false.
func (s *MembershipService) Teaches(ctx context.Context, teacherID, courseID int64) (bool, error) {
	if _, err := s.requireUser(ctx, teacherID, models.RoleTeacher); err != nil {
		return false, err
	}
	if _, err := s.courseStore.GetCourseByID(ctx, courseID); err != nil {
		return false, err
	}

	return s.courseStore.Teaches(ctx, teacherID, courseID)
}

// ListEnrolledCourses returns the courses the student is enrolled in
func (s *MembershipService) ListEnrolledCourses(ctx context.Context, studentID int64) ([]models.Course, error) {
	if _, err := s.requireUser(ctx, studentID, models.RoleStudent); err != nil {
		return nil, err
	}

	courses, err := s.courseStore.ListCoursesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled courses: %w", err)
	}
	return courses, nil
}

// ListTaughtCourses returns the courses the teacher owns
func (s *MembershipService) ListTaughtCourses(ctx context.Context, teacherID int64) ([]models.Course, error) {
	if _, err := s.requireUser(ctx, teacherID, models.RoleTeacher); err != nil {
		return nil, err
	}

	courses, err := s.courseStore.ListCoursesByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing taught courses: %w", err)
	}
	return courses, nil
}

// requireUser loads a user and checks the expected role
func (s *MembershipService) requireUser(ctx context.Context, userID int64, role models.RoleType) (*models.User, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != role {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
