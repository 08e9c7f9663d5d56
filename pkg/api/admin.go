package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/souk-hq/souk-go/internal/domain"
)

// UserQuery filters the admin user listing.
type UserQuery struct {
	Role   string
	Status string
	Search string
}

func (q *UserQuery) values() map[string]string {
	if q == nil {
		return nil
	}
	params := map[string]string{}
	if q.Role != "" {
		params["role"] = q.Role
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// AdminStats fetches the aggregate dashboard counters.
func (c *Client) AdminStats(ctx context.Context) Response[domain.AdminStats] {
	return do[domain.AdminStats](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/admin/stats",
	})
}

// AdminUsers lists accounts, optionally filtered.
func (c *Client) AdminUsers(ctx context.Context, q *UserQuery) Response[[]domain.User] {
	return do[[]domain.User](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/admin/users",
		query:  q.values(),
	})
}

// UpdateUserStatus changes an account's status (active, inactive, suspended).
func (c *Client) UpdateUserStatus(ctx context.Context, id, status string) Response[domain.User] {
	return do[domain.User](ctx, c, requestSpec{
		method: http.MethodPut,
		path:   "/admin/users/" + url.PathEscape(id) + "/status",
		body:   statusBody{Status: status},
	})
}
