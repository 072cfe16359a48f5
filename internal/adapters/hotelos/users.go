package hotelos

import (
	"context"
	"net/http"
	"strings"

	"hotelos_gateway/internal/domain"
)

func (c *Client) ListUsers(ctx context.Context, pg domain.PageQuery, search string) (domain.Page[domain.User], error) {
	v := pageValues(pg)
	if s := strings.TrimSpace(search); s != "" {
		v.Set("search", s)
	}
	var out domain.Page[domain.User]
	err := c.call(ctx, request{op: "GET /api/users", method: http.MethodGet, path: "/api/users", query: v}, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var out domain.User
	err := c.call(ctx, request{op: "GET /api/users/{id}", method: http.MethodGet, path: idPath("/api/users/%d", id)}, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id int64, u domain.User) (domain.User, error) {
	var out domain.User
	err := c.call(ctx, request{op: "PUT /api/users/{id}", method: http.MethodPut, path: idPath("/api/users/%d", id), body: u}, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.call(ctx, request{op: "DELETE /api/users/{id}", method: http.MethodDelete, path: idPath("/api/users/%d", id)}, nil)
}

func (c *Client) UploadUserImage(ctx context.Context, id int64, f domain.FileUpload) error {
	r, err := multipartRequest("POST /api/users/{id}/image_upload", idPath("/api/users/%d/image_upload", id), "file", []domain.FileUpload{f})
	if err != nil {
		return err
	}
	return c.call(ctx, r, nil)
}

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.call(ctx, request{op: "POST /api/auth/login", method: http.MethodPost, path: "/api/auth/login", body: req}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.call(ctx, request{op: "POST /api/auth/register", method: http.MethodPost, path: "/api/auth/register", body: req}, &out)
	return out, err
}

// Authenticate resolves a stored token to its user.
func (c *Client) Authenticate(ctx context.Context, token string) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	body := map[string]string{"token": token}
	err := c.call(ctx, request{op: "POST /api/auth/authenticate", method: http.MethodPost, path: "/api/auth/authenticate", body: body}, &out)
	return out, err
}

func (c *Client) ChangePassword(ctx context.Context, req domain.PasswordChange) error {
	return c.call(ctx, request{op: "PUT /api/auth/change-password", method: http.MethodPut, path: "/api/auth/change-password", body: req}, nil)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.call(ctx, request{op: "PUT /api/auth/reset-password", method: http.MethodPut, path: "/api/auth/reset-password", body: body}, nil)
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, req domain.PasswordResetConfirm) error {
	return c.call(ctx, request{op: "POST /api/auth/reset-password/confirm", method: http.MethodPost, path: "/api/auth/reset-password/confirm", body: req}, nil)
}
