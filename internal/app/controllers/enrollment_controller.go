package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models/dto"
	"github.com/deniz/learnhub/internal/app/services"
	"github.com/deniz/learnhub/internal/middleware"
)

// EnrollmentController handles enrollment lifecycle operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// GetMyEnrollments lists the caller's enrollments
// @Summary List my enrollments
// @Description Returns every enrollment of the authenticated user, any status
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /enrollments [get]
func (c *EnrollmentController) GetMyEnrollments(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	enrollments, err := c.enrollmentService.GetUserEnrollments(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: enrollments})
}

// GetMyCourses lists the caller's confirmed courses
// @Summary List my enrolled courses
// @Description Joins the caller's confirmed enrollments to the catalog
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /enrollments/courses [get]
func (c *EnrollmentController) GetMyCourses(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	courses, err := c.enrollmentService.GetUserEnrolledCourses(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses})
}

// Enroll enrolls the caller in a course
// @Summary Enroll in a course
// @Description Creates an enrollment: confirmed while seats remain, waitlisted once the course is full. A pair can enroll at most once.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.enrollmentService.EnrollInCourse(ctx.Request.Context(), userID, req.CourseID)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("userID", userID).
			Str("courseID", req.CourseID).
			Msg("Enrollment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: enrollment})
}

// Cancel cancels the caller's enrollment in a course
// @Summary Cancel enrollment
// @Description Marks the caller's enrollment cancelled. A confirmed enrollment releases its seat.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment cancelled"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{courseId} [delete]
func (c *EnrollmentController) Cancel(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.enrollmentService.CancelEnrollment(ctx.Request.Context(), userID, ctx.Param("courseId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Enrollment cancelled"},
	})
}
