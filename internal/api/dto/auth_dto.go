package dto

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse is returned by the authority on success.
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// IssuedToken picks the token field, accepting the legacy accessToken name.
func (r LoginResponse) IssuedToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}
