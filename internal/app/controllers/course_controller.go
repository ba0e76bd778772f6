package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models/dto"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/services"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/middleware"
)

// CourseController handles course scoped read models
type CourseController struct {
	viewService services.ViewService
}

// NewCourseController creates a new CourseController
func NewCourseController(viewService services.ViewService) *CourseController {
	return &CourseController{
		viewService: viewService,
	}
}

// ListCourses handles GET /courses. Students see their enrolled courses,
// teachers the courses they teach, admins everything.
func (c *CourseController) ListCourses(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}
	role, _ := middleware.CallerRole(ctx)

	courses, err := c.viewService.CoursesForUser(ctx, callerID, models.RoleType(role))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCourseResponses(courses))
}

// CourseFaq handles GET /courses/:id/faq. Accepts an optional ?limit=N to
// cap the number of entries.
func (c *CourseController) CourseFaq(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid limit parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		limit = parsed
	}

	queries, err := c.viewService.FaqForCourse(ctx, courseID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQueryResponses(queries))
}

// CourseAnswered handles GET /courses/:id/answered
func (c *CourseController) CourseAnswered(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	queries, err := c.viewService.AnsweredForCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQueryResponses(queries))
}

// CourseQueries handles GET /courses/:id/queries. Teachers only; the full
// course inbox, pending queries included.
func (c *CourseController) CourseQueries(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	teacherID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	queries, err := c.viewService.QueriesForCourse(ctx, teacherID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQueryResponses(queries))
}

// CourseRoster handles GET /courses/:id/students. Teachers only; lists the
// students who have asked in the course, flagged when any question is
// still pending.
func (c *CourseController) CourseRoster(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	teacherID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	roster, err := c.viewService.RosterWithPendingFlag(ctx, teacherID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.RosterEntryResponse, 0, len(roster))
	for _, entry := range roster {
		responses = append(responses, dto.RosterEntryResponse{
			StudentID:   entry.StudentID,
			StudentName: entry.StudentName,
			StudentRoll: entry.StudentRoll,
			HasPending:  entry.HasPending,
		})
	}

	ctx.JSON(http.StatusOK, responses)
}

// StudentQueries handles GET /courses/:id/students/:studentId/queries.
// Teachers only; the per-student drill-down behind the roster.
func (c *CourseController) StudentQueries(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	studentID, err := strconv.ParseInt(ctx.Param("studentId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid student ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	teacherID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	queries, err := c.viewService.StudentQueriesInCourse(ctx, teacherID, courseID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQueryResponses(queries))
}
