package auth

import "github.com/nishantpawar/institute-backend/internal/users"

// SendOTPRequest asks for a registration code to be mailed.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterRequest completes registration with the mailed code.
type RegisterRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	MobileNumber *string `json:"mobileNumber,omitempty"`
	Password     string  `json:"password" validate:"required,min=8"`
	OTP          string  `json:"otp" validate:"required,len=6"`
}

// LoginRequest carries the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    *users.UserDTO `json:"user"`
}
