package dto

// Data Transfer Objects for the signup / confirmation code flow

// SignupRequest: payload for POST /auth/signup
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username,notme"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// SignupResponse echoes what the code was sent for.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for POST /auth/token
type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
