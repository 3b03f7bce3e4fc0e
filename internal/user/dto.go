package user

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone *string `json:"phone,omitempty"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
