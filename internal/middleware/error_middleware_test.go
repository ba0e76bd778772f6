package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "empty question", err: apperrors.ErrEmptyQuestion, wantStatus: http.StatusUnprocessableEntity},
		{name: "empty answer", err: apperrors.ErrEmptyAnswer, wantStatus: http.StatusUnprocessableEntity},
		{name: "moderated question", err: apperrors.ErrContentRejected, wantStatus: http.StatusUnprocessableEntity},
		{name: "already answered", err: apperrors.ErrAlreadyAnswered, wantStatus: http.StatusConflict},
		{name: "not enrolled", err: apperrors.ErrNotEnrolled, wantStatus: http.StatusForbidden},
		{name: "not course owner", err: apperrors.ErrNotCourseOwner, wantStatus: http.StatusForbidden},
		{name: "not recipient", err: apperrors.ErrNotRecipient, wantStatus: http.StatusForbidden},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden},
		{name: "query not found", err: apperrors.ErrQueryNotFound, wantStatus: http.StatusNotFound},
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound},
		{name: "notification not found", err: apperrors.ErrNotificationNotFound, wantStatus: http.StatusNotFound},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(ctx, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			// The client reads the top-level detail field
			var body struct {
				Success bool   `json:"success"`
				Detail  string `json:"detail"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Success {
				t.Error("success must be false")
			}
			if body.Detail == "" {
				t.Error("detail must be populated")
			}
		})
	}
}

func TestHandleAPIErrorWrapped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	wrapped := apperrors.NewResourceNotFoundError("query 42 does not exist")
	HandleAPIError(ctx, wrapped)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
