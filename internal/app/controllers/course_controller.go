package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/models/dto"
	"github.com/deniz/learnhub/internal/app/services"
	"github.com/deniz/learnhub/internal/middleware"
)

// CourseController handles course catalog operations
type CourseController struct {
	catalogService services.CatalogService
	logger         zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(catalogService services.CatalogService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetAllCourses lists the catalog
// @Summary List courses
// @Description Returns the course catalog, optionally narrowed by filters. All supplied filters must hold.
// @Tags courses
// @Produce json
// @Param category query string false "Exact category match"
// @Param level query string false "Course level" Enums(beginner, intermediate, advanced)
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Param q query string false "Case-insensitive substring of title or description"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	var query dto.CourseFilterQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	courses, err := c.catalogService.FilterCourses(ctx.Request.Context(), services.FilterOptions{
		Category: query.Category,
		Level:    models.CourseLevel(query.Level),
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
		Query:    query.Query,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses})
}

// GetCourseByID fetches a single course
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, err := c.catalogService.GetCourseByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course})
}

// GetCategories lists the distinct course categories
// @Summary List categories
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Categories in catalog order"
// @Router /courses/categories [get]
func (c *CourseController) GetCategories(ctx *gin.Context) {
	categories, err := c.catalogService.GetCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: categories})
}

// GetInstructorCourses lists an instructor's courses
// @Summary List courses by instructor
// @Tags instructors
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Router /instructors/{id}/courses [get]
func (c *CourseController) GetInstructorCourses(ctx *gin.Context) {
	courses, err := c.catalogService.GetCoursesByInstructor(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses})
}

// GetInstructorStats aggregates an instructor's catalog footprint
// @Summary Instructor statistics
// @Description Course count, enrolled student total and average rating over the instructor's courses
// @Tags instructors
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=services.InstructorStats} "Statistics"
// @Router /instructors/{id}/stats [get]
func (c *CourseController) GetInstructorStats(ctx *gin.Context) {
	stats, err := c.catalogService.GetInstructorStats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}
