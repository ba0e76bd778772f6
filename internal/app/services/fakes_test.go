package services

import (
	"context"
	"sync"
	"time"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
)

// fakeQueryStore is an in-memory QueryStore. It mirrors the database
// contracts the services rely on: oldest-first lists and an atomic
// pending-to-answered transition.
type fakeQueryStore struct {
	mu      sync.Mutex
	nextID  int64
	queries map[int64]*models.Query
	order   []int64

	// notifications backs ListAnsweredMissingNotification, mirroring the
	// LEFT JOIN the repository does. Nil means every answered query counts
	// as missing.
	notifications *fakeNotificationStore
}

func newFakeQueryStore() *fakeQueryStore {
	return &fakeQueryStore{
		nextID:  1,
		queries: make(map[int64]*models.Query),
	}
}

func (f *fakeQueryStore) CreateQuery(_ context.Context, query *models.Query) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *query
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.nextID++
	f.queries[stored.ID] = &stored
	f.order = append(f.order, stored.ID)
	return stored.ID, nil
}

func (f *fakeQueryStore) GetQueryByID(_ context.Context, id int64) (*models.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	query, ok := f.queries[id]
	if !ok {
		return nil, apperrors.ErrQueryNotFound
	}
	copied := *query
	return &copied, nil
}

func (f *fakeQueryStore) Answer(_ context.Context, id int64, answer string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	query, ok := f.queries[id]
	if !ok {
		return apperrors.ErrQueryNotFound
	}
	if query.Answered {
		return apperrors.ErrAlreadyAnswered
	}
	now := time.Now()
	query.Answer = &answer
	query.Answered = true
	query.AnsweredAt = &now
	return nil
}

func (f *fakeQueryStore) list(filter func(*models.Query) bool) []models.Query {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Query
	for _, id := range f.order {
		if filter(f.queries[id]) {
			result = append(result, *f.queries[id])
		}
	}
	return result
}

func (f *fakeQueryStore) ListByCourse(_ context.Context, courseID int64) ([]models.Query, error) {
	return f.list(func(q *models.Query) bool { return q.CourseID == courseID }), nil
}

func (f *fakeQueryStore) ListAnsweredByCourse(_ context.Context, courseID int64) ([]models.Query, error) {
	return f.list(func(q *models.Query) bool { return q.CourseID == courseID && q.Answered }), nil
}

func (f *fakeQueryStore) ListByStudent(_ context.Context, studentID int64) ([]models.Query, error) {
	return f.list(func(q *models.Query) bool { return q.StudentID == studentID }), nil
}

func (f *fakeQueryStore) ListByCourseAndStudent(_ context.Context, courseID, studentID int64) ([]models.Query, error) {
	return f.list(func(q *models.Query) bool { return q.CourseID == courseID && q.StudentID == studentID }), nil
}

func (f *fakeQueryStore) ListAnswered(_ context.Context) ([]models.Query, error) {
	return f.list(func(q *models.Query) bool { return q.Answered }), nil
}

func (f *fakeQueryStore) ListAnsweredMissingNotification(_ context.Context) ([]models.Query, error) {
	return f.list(func(q *models.Query) bool {
		return q.Answered && (f.notifications == nil || !f.notifications.hasForQuery(q.ID))
	}), nil
}

func (f *fakeQueryStore) Roster(_ context.Context, courseID int64) ([]models.RosterEntry, error) {
	queries := f.list(func(q *models.Query) bool { return q.CourseID == courseID })

	byStudent := make(map[int64]*models.RosterEntry)
	var order []int64
	for i := range queries {
		q := &queries[i]
		entry, ok := byStudent[q.StudentID]
		if !ok {
			entry = &models.RosterEntry{
				StudentID:   q.StudentID,
				StudentName: q.StudentName,
				StudentRoll: q.StudentRoll,
			}
			byStudent[q.StudentID] = entry
			order = append(order, q.StudentID)
		}
		if q.Pending() {
			entry.HasPending = true
		}
	}

	var result []models.RosterEntry
	for _, id := range order {
		result = append(result, *byStudent[id])
	}
	return result, nil
}

// fakeNotificationStore is an in-memory NotificationStore with the same
// one-per-query uniqueness the real table enforces.
type fakeNotificationStore struct {
	mu            sync.Mutex
	nextID        int64
	notifications map[int64]*models.Notification
	byQuery       map[int64]int64
	order         []int64
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{
		nextID:        1,
		notifications: make(map[int64]*models.Notification),
		byQuery:       make(map[int64]int64),
	}
}

func (f *fakeNotificationStore) CreateIfAbsent(_ context.Context, notification *models.Notification) (*models.Notification, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existingID, ok := f.byQuery[notification.QueryID]; ok {
		copied := *f.notifications[existingID]
		return &copied, false, nil
	}

	stored := *notification
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.nextID++
	f.notifications[stored.ID] = &stored
	f.byQuery[stored.QueryID] = stored.ID
	f.order = append(f.order, stored.ID)
	copied := stored
	return &copied, true, nil
}

func (f *fakeNotificationStore) hasForQuery(queryID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byQuery[queryID]
	return ok
}

func (f *fakeNotificationStore) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	notification, ok := f.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	copied := *notification
	return &copied, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	notification, ok := f.notifications[id]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	notification.Read = true
	return nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID int64) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Newest first, matching the repository ordering
	var result []models.Notification
	for i := len(f.order) - 1; i >= 0; i-- {
		if f.notifications[f.order[i]].UserID == userID {
			result = append(result, *f.notifications[f.order[i]])
		}
	}
	return result, nil
}

// fakeMembership is an in-memory membership index
type fakeMembership struct {
	enrollments map[int64][]int64 // studentID -> courseIDs
	teaching    map[int64][]int64 // teacherID -> courseIDs
	courses     map[int64]models.Course
}

func newFakeMembership() *fakeMembership {
	return &fakeMembership{
		enrollments: make(map[int64][]int64),
		teaching:    make(map[int64][]int64),
		courses:     make(map[int64]models.Course),
	}
}

func (f *fakeMembership) addCourse(course models.Course) {
	f.courses[course.ID] = course
	f.teaching[course.TeacherID] = append(f.teaching[course.TeacherID], course.ID)
}

func (f *fakeMembership) enroll(studentID, courseID int64) {
	f.enrollments[studentID] = append(f.enrollments[studentID], courseID)
}

func (f *fakeMembership) IsEnrolled(_ context.Context, studentID, courseID int64) (bool, error) {
	for _, id := range f.enrollments[studentID] {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembership) Teaches(_ context.Context, teacherID, courseID int64) (bool, error) {
	for _, id := range f.teaching[teacherID] {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembership) ListEnrolledCourses(_ context.Context, studentID int64) ([]models.Course, error) {
	var result []models.Course
	for _, id := range f.enrollments[studentID] {
		result = append(result, f.courses[id])
	}
	return result, nil
}

func (f *fakeMembership) ListTaughtCourses(_ context.Context, teacherID int64) ([]models.Course, error) {
	var result []models.Course
	for _, id := range f.teaching[teacherID] {
		result = append(result, f.courses[id])
	}
	return result, nil
}

// ListCourses and GetCourseByID let fakeMembership double as a CourseLister
func (f *fakeMembership) ListCourses(_ context.Context) ([]models.Course, error) {
	var result []models.Course
	for _, course := range f.courses {
		result = append(result, course)
	}
	return result, nil
}

func (f *fakeMembership) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := course
	return &copied, nil
}
