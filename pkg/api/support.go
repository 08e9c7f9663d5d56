package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/souk-hq/souk-go/internal/domain"
)

// TicketQuery filters the support ticket listing.
type TicketQuery struct {
	Status string
	UserID string
}

func (q *TicketQuery) values() map[string]string {
	if q == nil {
		return nil
	}
	params := map[string]string{}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.UserID != "" {
		params["user_id"] = q.UserID
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// TicketRequest is the ticket creation body.
type TicketRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Tickets lists support tickets.
func (c *Client) Tickets(ctx context.Context, q *TicketQuery) Response[[]domain.SupportTicket] {
	return do[[]domain.SupportTicket](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/support/tickets",
		query:  q.values(),
	})
}

// CreateTicket opens a new support ticket.
func (c *Client) CreateTicket(ctx context.Context, req TicketRequest) Response[domain.SupportTicket] {
	return do[domain.SupportTicket](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/support/tickets",
		body:   req,
	})
}

// UpdateTicketStatus changes a ticket's status.
func (c *Client) UpdateTicketStatus(ctx context.Context, id, status string) Response[domain.SupportTicket] {
	return do[domain.SupportTicket](ctx, c, requestSpec{
		method: http.MethodPut,
		path:   "/support/tickets/" + url.PathEscape(id) + "/status",
		body:   statusBody{Status: status},
	})
}
