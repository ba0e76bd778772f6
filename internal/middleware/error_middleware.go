package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models/dto"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/observability"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers delegate
// every non-nil service error here so the mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyQuestion):
		respond(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Question must not be empty"))
	case errors.Is(err, apperrors.ErrEmptyAnswer):
		respond(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Answer must not be empty"))
	case errors.Is(err, apperrors.ErrContentRejected):
		respond(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Question was rejected by content moderation"))
	case errors.Is(err, apperrors.ErrInvalidInput):
		respond(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeInvalidInput, messageOr(err, "Invalid input")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed")))
	case errors.Is(err, apperrors.ErrAlreadyAnswered):
		respond(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Query has already been answered"))
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeConflict, messageOr(err, "Resource already exists")))
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respond(c, http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You are not enrolled in this course"))
	case errors.Is(err, apperrors.ErrNotCourseOwner):
		respond(c, http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not teach this course"))
	case errors.Is(err, apperrors.ErrNotRecipient):
		respond(c, http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "This notification belongs to another user"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"))
	case errors.Is(err, apperrors.ErrQueryNotFound):
		respond(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Query not found"))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found"))
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		respond(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Notification not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"))
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error in request")
		observability.CaptureErr(err)
		respond(c, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func respond(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.NewErrorResponse(detail))
}

// messageOr prefers the wrapped CustomError message when one is present
func messageOr(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
