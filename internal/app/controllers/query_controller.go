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

// QueryController handles query lifecycle operations
type QueryController struct {
	queryService services.QueryService
	viewService  services.ViewService
}

// NewQueryController creates a new QueryController
func NewQueryController(queryService services.QueryService, viewService services.ViewService) *QueryController {
	return &QueryController{
		queryService: queryService,
		viewService:  viewService,
	}
}

// CreateQuery handles POST /queries. Students only; the caller must be
// enrolled in the target course.
func (c *QueryController) CreateQuery(ctx *gin.Context) {
	var req dto.CreateQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(errorDetail))
		return
	}

	studentID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	queryID, err := c.queryService.CreateQuery(ctx, studentID, req.CourseID, req.Question)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateQueryResponse{ID: queryID})
}

// AnswerQuery handles PATCH /queries/:id/answer. Teachers only; the caller
// must teach the query's course, and a query can be answered exactly once.
func (c *QueryController) AnswerQuery(ctx *gin.Context) {
	queryID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid query ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.AnswerQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(errorDetail))
		return
	}

	teacherID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.queryService.AnswerQuery(ctx, teacherID, queryID, req.Answer); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Query answered"))
}

// GetQuery handles GET /queries/:id
func (c *QueryController) GetQuery(ctx *gin.Context) {
	queryID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid query ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}
	role, _ := middleware.CallerRole(ctx)

	query, err := c.queryService.GetQuery(ctx, callerID, models.RoleType(role), queryID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQueryResponse(query))
}

// MyQueries handles GET /queries/my. Returns the caller's own questions,
// newest first, across all courses.
func (c *QueryController) MyQueries(ctx *gin.Context) {
	studentID, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	queries, err := c.viewService.MyQueries(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQueryResponses(queries))
}

// FaqAll handles GET /faq: every answered query across all courses
func (c *QueryController) FaqAll(ctx *gin.Context) {
	queries, err := c.viewService.FaqAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQueryResponses(queries))
}
