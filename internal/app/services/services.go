package services

import (
	"context"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
)

// QueryStore is the query persistence the services consume. Implemented by
// repositories.QueryRepository; tests substitute an in-memory fake.
type QueryStore interface {
	CreateQuery(ctx context.Context, query *models.Query) (int64, error)
	GetQueryByID(ctx context.Context, id int64) (*models.Query, error)
	Answer(ctx context.Context, id int64, answer string) error
	ListByCourse(ctx context.Context, courseID int64) ([]models.Query, error)
	ListAnsweredByCourse(ctx context.Context, courseID int64) ([]models.Query, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Query, error)
	ListByCourseAndStudent(ctx context.Context, courseID, studentID int64) ([]models.Query, error)
	ListAnswered(ctx context.Context) ([]models.Query, error)
	ListAnsweredMissingNotification(ctx context.Context) ([]models.Query, error)
	Roster(ctx context.Context, courseID int64) ([]models.RosterEntry, error)
}

// NotificationStore is the notification persistence the services consume.
// Implemented by repositories.NotificationRepository.
type NotificationStore interface {
	CreateIfAbsent(ctx context.Context, notification *models.Notification) (*models.Notification, bool, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
}

// CourseLister lists all courses; used only for the admin course view
type CourseLister interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
}

// reverseQueries flips an oldest-first slice into newest-first, in place
func reverseQueries(queries []models.Query) []models.Query {
	for i, j := 0, len(queries)-1; i < j; i, j = i+1, j-1 {
		queries[i], queries[j] = queries[j], queries[i]
	}
	return queries
}
