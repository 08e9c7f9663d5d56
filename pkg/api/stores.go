package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/souk-hq/souk-go/internal/domain"
)

// StoreQuery filters the store listing. Zero-value fields are omitted from the
// query string; an empty query produces a bare /stores request.
type StoreQuery struct {
	Category   string
	Search     string
	MerchantID string
}

func (q *StoreQuery) values() map[string]string {
	if q == nil {
		return nil
	}
	params := map[string]string{}
	if q.Category != "" {
		params["category"] = q.Category
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.MerchantID != "" {
		params["merchant_id"] = q.MerchantID
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// StoreRequest is the create/update body for a store.
type StoreRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	IsOpen      *bool  `json:"is_open,omitempty"`
}

// Stores lists stores, optionally filtered.
func (c *Client) Stores(ctx context.Context, q *StoreQuery) Response[[]domain.Store] {
	return do[[]domain.Store](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/stores",
		query:  q.values(),
	})
}

// Store fetches one store by id.
func (c *Client) Store(ctx context.Context, id string) Response[domain.Store] {
	return do[domain.Store](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/stores/" + url.PathEscape(id),
	})
}

// CreateStore registers a new storefront for the current merchant.
func (c *Client) CreateStore(ctx context.Context, req StoreRequest) Response[domain.Store] {
	return do[domain.Store](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/stores",
		body:   req,
	})
}

// UpdateStore patches store fields.
func (c *Client) UpdateStore(ctx context.Context, id string, req StoreRequest) Response[domain.Store] {
	return do[domain.Store](ctx, c, requestSpec{
		method: http.MethodPut,
		path:   "/stores/" + url.PathEscape(id),
		body:   req,
	})
}

// DeleteStore removes a store.
func (c *Client) DeleteStore(ctx context.Context, id string) Response[NoData] {
	return do[NoData](ctx, c, requestSpec{
		method: http.MethodDelete,
		path:   "/stores/" + url.PathEscape(id),
	})
}
