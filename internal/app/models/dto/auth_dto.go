package dto

import "github.com/deniz/learnhub/internal/app/models"

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Deniz Kaya"`
	Email    string `json:"email" binding:"required,email" example:"deniz@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Role     string `json:"role" binding:"required,oneof=student instructor" example:"student"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"deniz@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// AuthResponse carries the signed-in user and their access token
type AuthResponse struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn" example:"3600"`
}
