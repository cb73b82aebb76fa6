package request

// LoginRequest represents the login request body
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the refresh token request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// CreateUserRequest represents the staff account creation request body
type CreateUserRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Login     string  `json:"login" binding:"required"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role" binding:"required"`
	Password  string  `json:"password" binding:"required,min=8"`
}
