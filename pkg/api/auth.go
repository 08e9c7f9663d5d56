package api

import (
	"context"
	"net/http"

	"github.com/souk-hq/souk-go/internal/domain"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the account creation body. A successful registration is
// immediately authenticated; there is no confirmation step.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// AuthPayload is what the auth endpoints return on success.
type AuthPayload struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) Response[AuthPayload] {
	return do[AuthPayload](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   Credentials{Email: email, Password: password},
	})
}

// Register creates an account and returns it authenticated.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Response[AuthPayload] {
	return do[AuthPayload](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
	})
}

// Logout invalidates the server-side session. Local teardown is the session
// manager's job and must not depend on this call succeeding.
func (c *Client) Logout(ctx context.Context) Response[NoData] {
	return do[NoData](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/auth/logout",
	})
}
