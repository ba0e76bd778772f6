package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/controllers"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/middleware"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/auth"
)

// stubQueryService satisfies services.QueryService with empty results
type stubQueryService struct{}

func (stubQueryService) CreateQuery(context.Context, int64, int64, string) (int64, error) {
	return 1, nil
}

func (stubQueryService) AnswerQuery(context.Context, int64, int64, string) error {
	return nil
}

func (stubQueryService) GetQuery(context.Context, int64, models.RoleType, int64) (*models.Query, error) {
	return &models.Query{ID: 1}, nil
}

// stubViewService satisfies services.ViewService with empty results
type stubViewService struct{}

func (stubViewService) FaqForCourse(context.Context, int64, int) ([]models.Query, error) {
	return nil, nil
}

func (stubViewService) FaqAll(context.Context) ([]models.Query, error) {
	return nil, nil
}

func (stubViewService) MyQueries(context.Context, int64) ([]models.Query, error) {
	return nil, nil
}

func (stubViewService) AnsweredForCourse(context.Context, int64) ([]models.Query, error) {
	return nil, nil
}

func (stubViewService) QueriesForCourse(context.Context, int64, int64) ([]models.Query, error) {
	return nil, nil
}

func (stubViewService) RosterWithPendingFlag(context.Context, int64, int64) ([]models.RosterEntry, error) {
	return nil, nil
}

func (stubViewService) StudentQueriesInCourse(context.Context, int64, int64, int64) ([]models.Query, error) {
	return nil, nil
}

func (stubViewService) CoursesForUser(context.Context, int64, models.RoleType) ([]models.Course, error) {
	return nil, nil
}

// stubNotificationService satisfies services.NotificationService
type stubNotificationService struct{}

func (stubNotificationService) OnQueryAnswered(context.Context, *models.Query) (*models.Notification, error) {
	return nil, nil
}

func (stubNotificationService) MarkRead(context.Context, int64, int64) error {
	return nil
}

func (stubNotificationService) ListForUser(context.Context, int64) ([]models.Notification, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "anonquery.test",
	})

	router := gin.New()
	SetupRouter(router,
		controllers.NewQueryController(stubQueryService{}, stubViewService{}),
		controllers.NewCourseController(stubViewService{}),
		controllers.NewNotificationController(stubNotificationService{}),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router, jwtService
}

// TestRouteRoleGates pins the role each gated endpoint requires.
func TestRouteRoleGates(t *testing.T) {
	router, jwtService := newTestRouter(t)

	studentToken, err := jwtService.GenerateToken(7, "student@anonquery.app", "STUDENT")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	teacherToken, err := jwtService.GenerateToken(8, "teacher@anonquery.app", "TEACHER")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "student lists own queries", method: http.MethodGet, path: "/api/v1/queries/my", token: studentToken, wantStatus: http.StatusOK},
		{name: "teacher cannot list student history", method: http.MethodGet, path: "/api/v1/queries/my", token: teacherToken, wantStatus: http.StatusForbidden},
		{name: "teacher lists course queries", method: http.MethodGet, path: "/api/v1/courses/10/queries", token: teacherToken, wantStatus: http.StatusOK},
		{name: "student cannot list course queries", method: http.MethodGet, path: "/api/v1/courses/10/queries", token: studentToken, wantStatus: http.StatusForbidden},
		{name: "teacher cannot ask", method: http.MethodPost, path: "/api/v1/queries", token: teacherToken, wantStatus: http.StatusForbidden},
		{name: "student cannot answer", method: http.MethodPatch, path: "/api/v1/queries/1/answer", token: studentToken, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
