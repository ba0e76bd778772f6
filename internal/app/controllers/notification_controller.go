package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models/dto"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/services"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/middleware"
)

// NotificationController handles the notification feed
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// ListNotifications handles GET /notifications. Returns the caller's
// notifications, newest first, read ones included.
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	notifications, err := c.notificationService.ListForUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

// MarkRead handles PATCH /notifications/:id/read. Only the recipient may
// mark a notification; marking twice is a no-op.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid notification ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.notificationService.MarkRead(ctx, notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Notification marked as read"))
}
