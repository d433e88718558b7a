package dto

// EnrollRequest represents a request to enroll in a course
type EnrollRequest struct {
	CourseID string `json:"courseId" binding:"required" example:"1f6f2c2a-9f36-4a47-8cde-0a2b1c3d4e5f"`
}
