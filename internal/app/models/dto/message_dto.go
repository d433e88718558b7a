package dto

// SendMessageRequest represents a new message to append to the log
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required" example:"5b7e0d7c-1234-4a47-8cde-0a2b1c3d4e5f"`
	CourseID    string `json:"courseId" binding:"required" example:"1f6f2c2a-9f36-4a47-8cde-0a2b1c3d4e5f"`
	Content     string `json:"content" binding:"required" example:"Hi, I have a question about the schedule"`
}

// UnreadCountResponse carries the unread message total for a user
type UnreadCountResponse struct {
	Count int `json:"count" example:"3"`
}
