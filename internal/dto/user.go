package dto

// UserResponse is the public view of a user
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// UpdateUserRequest is the payload for updating a profile
type UpdateUserRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
}
