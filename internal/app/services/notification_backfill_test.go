package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
)

// failingNotifier rejects the first failures deliveries, then delegates.
type failingNotifier struct {
	inner    QueryAnsweredHandler
	failures int
	calls    int
}

func (n *failingNotifier) OnQueryAnswered(ctx context.Context, query *models.Query) (*models.Notification, error) {
	n.calls++
	if n.calls <= n.failures {
		return nil, errors.New("notification store unavailable")
	}
	return n.inner.OnQueryAnswered(ctx, query)
}

func TestBackfillRecoversMissedNotification(t *testing.T) {
	queryStore, notificationStore, membership := newTestFixture()
	queryStore.notifications = notificationStore

	notificationService := NewNotificationService(notificationStore)
	notifier := &failingNotifier{inner: notificationService, failures: 2}
	service := NewQueryService(queryStore, membership, notifier, nil)

	id, err := service.CreateQuery(context.Background(), testStudentID, testCourseID, "Will I hear back?")
	if err != nil {
		t.Fatalf("CreateQuery() error: %v", err)
	}

	// Both in-request dispatch attempts fail; the answer itself must stand.
	if err := service.AnswerQuery(context.Background(), testTeacherID, id, "Eventually."); err != nil {
		t.Fatalf("AnswerQuery() error: %v", err)
	}
	if notifier.calls != 2 {
		t.Fatalf("got %d dispatch attempts, want 2", notifier.calls)
	}
	if notifications, _ := notificationStore.ListByUser(context.Background(), testStudentID); len(notifications) != 0 {
		t.Fatalf("got %d notifications before the sweep, want 0", len(notifications))
	}

	backfill := NewNotificationBackfill(queryStore, notificationService, 0)
	recovered, err := backfill.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error: %v", err)
	}
	if recovered != 1 {
		t.Fatalf("RunOnce() recovered %d, want 1", recovered)
	}

	notifications, err := notificationStore.ListByUser(context.Background(), testStudentID)
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications after the sweep, want 1", len(notifications))
	}
	if n := notifications[0]; n.QueryID != id || n.Read {
		t.Errorf("notification = %+v, want unread for query %d", n, id)
	}

	// A second sweep finds nothing left to recover.
	recovered, err = backfill.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second RunOnce() error: %v", err)
	}
	if recovered != 0 {
		t.Fatalf("second RunOnce() recovered %d, want 0", recovered)
	}
}

func TestBackfillSkipsDeliveredNotifications(t *testing.T) {
	queryStore, notificationStore, membership := newTestFixture()
	queryStore.notifications = notificationStore

	notificationService := NewNotificationService(notificationStore)
	service := newTestQueryService(queryStore, notificationStore, membership)

	id, _ := service.CreateQuery(context.Background(), testStudentID, testCourseID, "Delivered first time")
	if err := service.AnswerQuery(context.Background(), testTeacherID, id, "Done"); err != nil {
		t.Fatalf("AnswerQuery() error: %v", err)
	}

	backfill := NewNotificationBackfill(queryStore, notificationService, 0)
	recovered, err := backfill.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error: %v", err)
	}
	if recovered != 0 {
		t.Fatalf("RunOnce() recovered %d, want 0", recovered)
	}

	if notifications, _ := notificationStore.ListByUser(context.Background(), testStudentID); len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
}
