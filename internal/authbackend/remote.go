package authbackend

import (
	"context"
	"errors"
	"net/http"

	"github.com/spec-kit/resistance-admin/internal/api/dto"
	"github.com/spec-kit/resistance-admin/internal/apiclient"
	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/session"
)

// Remote exchanges credentials with the real authority at POST /auth/login.
//
// The client passed in must not carry the request authorizer: a rejected login is a
// 401 too, and it must not end the session that is already in place.
type Remote struct {
	client *apiclient.Client
}

// NewRemote builds a backend over an unauthenticated client.
func NewRemote(client *apiclient.Client) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	req := dto.LoginRequest{Identifier: creds.Identifier, Password: creds.Password}

	var resp dto.LoginResponse
	if err := r.client.Post(ctx, "/auth/login", req, &resp); err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if apiErr.Status == http.StatusUnauthorized && apiErr.Code == "" && message == http.StatusText(http.StatusUnauthorized) {
				message = invalidCredentials
			}
			return "", &session.AuthFailure{
				Message: message,
				Status:  apiErr.Status,
				Payload: apiErr.Body,
				Err:     err,
			}
		}
		return "", &session.AuthFailure{Message: "authority unreachable", Err: err}
	}

	token := resp.IssuedToken()
	if token == "" {
		return "", &session.AuthFailure{Message: "authority returned no token"}
	}
	return token, nil
}
