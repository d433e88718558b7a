package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models/dto"
	"github.com/deniz/learnhub/internal/app/services"
	"github.com/deniz/learnhub/internal/middleware"
)

// MessageController handles message log operations
type MessageController struct {
	messageService services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// GetCourseMessages lists the caller's messages in a course
// @Summary List my messages in a course
// @Description Returns messages in the course where the caller is sender or recipient, in log order. Clients poll this endpoint; there is no push channel.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Message} "Messages"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /courses/{id}/messages [get]
func (c *MessageController) GetCourseMessages(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	messages, err := c.messageService.GetMessages(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: messages})
}

// SendMessage appends a new message
// @Summary Send a message
// @Description Appends a message to the log. Recipient notification is best effort and never fails the send.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message to send"
// @Success 201 {object} dto.APIResponse{data=models.Message} "Message created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or empty content"
// @Router /messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	message, err := c.messageService.SendMessage(ctx.Request.Context(), services.SendMessageInput{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		CourseID:    req.CourseID,
		Content:     req.Content,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: message})
}

// GetUnreadCount counts the caller's unread messages
// @Summary Unread message count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /messages/unread-count [get]
func (c *MessageController) GetUnreadCount(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	count, err := c.messageService.GetUnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.UnreadCountResponse{Count: count}})
}

// MarkAsRead flags a message as read
// @Summary Mark message as read
// @Description Sets the read flag. Unknown message ids are accepted and change nothing.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Marked as read"
// @Router /messages/{id}/read [patch]
func (c *MessageController) MarkAsRead(ctx *gin.Context) {
	if err := c.messageService.MarkAsRead(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Marked as read"},
	})
}

// GetThreads summarizes the caller's conversations
// @Summary Instructor thread summaries
// @Description One entry per (course, counterpart) pair, carrying its latest message, sorted newest-first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Message} "Thread summaries"
// @Failure 403 {object} dto.ErrorResponse "Instructor role required"
// @Router /messages/threads [get]
func (c *MessageController) GetThreads(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	threads, err := c.messageService.GetInstructorThreads(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: threads})
}
