package dto

import "github.com/devfx/currency_converter_api/internal/core/domain"

// UserResponse defines the structure for API responses containing user details.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
	}
}
