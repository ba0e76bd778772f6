package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
)

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeCourseStore struct {
	courses     map[int64]*models.Course
	enrollments map[int64][]int64
}

func (f *fakeCourseStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) IsEnrolled(_ context.Context, studentID, courseID int64) (bool, error) {
	for _, id := range f.enrollments[studentID] {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseStore) Teaches(_ context.Context, teacherID, courseID int64) (bool, error) {
	course, ok := f.courses[courseID]
	return ok && course.TeacherID == teacherID, nil
}

func (f *fakeCourseStore) ListCoursesByStudent(_ context.Context, studentID int64) ([]models.Course, error) {
	var result []models.Course
	for _, id := range f.enrollments[studentID] {
		result = append(result, *f.courses[id])
	}
	return result, nil
}

func (f *fakeCourseStore) ListCoursesByTeacher(_ context.Context, teacherID int64) ([]models.Course, error) {
	var result []models.Course
	for _, course := range f.courses {
		if course.TeacherID == teacherID {
			result = append(result, *course)
		}
	}
	return result, nil
}

func newTestMembership() *MembershipService {
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Name: "Teacher", RoleType: models.RoleTeacher},
		2: {ID: 2, Name: "Student", RoleType: models.RoleStudent},
		3: {ID: 3, Name: "Loner", RoleType: models.RoleStudent},
	}}
	courses := &fakeCourseStore{
		courses: map[int64]*models.Course{
			10: {ID: 10, Name: "Data Structures", TeacherID: 1},
		},
		enrollments: map[int64][]int64{2: {10}},
	}
	return NewMembershipService(users, courses)
}

func TestIsEnrolled(t *testing.T) {
	service := newTestMembership()

	tests := []struct {
		name      string
		studentID int64
		courseID  int64
		want      bool
		wantErr   error
	}{
		{name: "enrolled student", studentID: 2, courseID: 10, want: true},
		{name: "student not enrolled", studentID: 3, courseID: 10, want: false},
		{name: "missing student", studentID: 99, courseID: 10, wantErr: apperrors.ErrUserNotFound},
		{name: "missing course", studentID: 2, courseID: 99, wantErr: apperrors.ErrCourseNotFound},
		{name: "teacher id is not a student", studentID: 1, courseID: 10, wantErr: apperrors.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.IsEnrolled(context.Background(), tt.studentID, tt.courseID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("IsEnrolled() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("IsEnrolled() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsEnrolled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTeaches(t *testing.T) {
	service := newTestMembership()

	tests := []struct {
		name      string
		teacherID int64
		courseID  int64
		want      bool
		wantErr   error
	}{
		{name: "owning teacher", teacherID: 1, courseID: 10, want: true},
		{name: "missing teacher", teacherID: 99, courseID: 10, wantErr: apperrors.ErrUserNotFound},
		{name: "missing course", teacherID: 1, courseID: 99, wantErr: apperrors.ErrCourseNotFound},
		{name: "student id is not a teacher", teacherID: 2, courseID: 10, wantErr: apperrors.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Teaches(context.Background(), tt.teacherID, tt.courseID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Teaches() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Teaches() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Teaches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListCourses(t *testing.T) {
	service := newTestMembership()

	enrolled, err := service.ListEnrolledCourses(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListEnrolledCourses() error: %v", err)
	}
	if len(enrolled) != 1 || enrolled[0].ID != 10 {
		t.Errorf("enrolled = %+v, want course 10", enrolled)
	}

	taught, err := service.ListTaughtCourses(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListTaughtCourses() error: %v", err)
	}
	if len(taught) != 1 || taught[0].ID != 10 {
		t.Errorf("taught = %+v, want course 10", taught)
	}

	if _, err := service.ListEnrolledCourses(context.Background(), 99); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("ListEnrolledCourses() error = %v, want ErrUserNotFound", err)
	}
}
