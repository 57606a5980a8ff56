package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenRequest carries a refresh token for the refresh and logout endpoints.
type TokenRequest struct {
	Token string `json:"token"`
}
