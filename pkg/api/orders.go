package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/souk-hq/souk-go/internal/domain"
)

// OrderQuery filters the order listing.
type OrderQuery struct {
	StoreID    string
	CustomerID string
	Status     string
}

func (q *OrderQuery) values() map[string]string {
	if q == nil {
		return nil
	}
	params := map[string]string{}
	if q.StoreID != "" {
		params["store_id"] = q.StoreID
	}
	if q.CustomerID != "" {
		params["customer_id"] = q.CustomerID
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// OrderRequest is the order creation body.
type OrderRequest struct {
	StoreID string             `json:"store_id"`
	Items   []domain.OrderItem `json:"items"`
	Address string             `json:"address,omitempty"`
	Note    string             `json:"note,omitempty"`
}

// statusBody is the body shape shared by the */status transition endpoints.
type statusBody struct {
	Status string `json:"status"`
}

// Orders lists orders visible to the current user.
func (c *Client) Orders(ctx context.Context, q *OrderQuery) Response[[]domain.Order] {
	return do[[]domain.Order](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/orders",
		query:  q.values(),
	})
}

// CreateOrder places a new order.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) Response[domain.Order] {
	return do[domain.Order](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/orders",
		body:   req,
	})
}

// UpdateOrderStatus transitions an order to the given status. The server owns
// the transition rules; this client does not pre-validate them.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) Response[domain.Order] {
	return do[domain.Order](ctx, c, requestSpec{
		method: http.MethodPut,
		path:   "/orders/" + url.PathEscape(id) + "/status",
		body:   statusBody{Status: status},
	})
}
