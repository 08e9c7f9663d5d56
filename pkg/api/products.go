package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/souk-hq/souk-go/internal/domain"
)

// ProductQuery filters the product listing.
type ProductQuery struct {
	StoreID  string
	Category string
	Search   string
}

func (q *ProductQuery) values() map[string]string {
	if q == nil {
		return nil
	}
	params := map[string]string{}
	if q.StoreID != "" {
		params["store_id"] = q.StoreID
	}
	if q.Category != "" {
		params["category"] = q.Category
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// ProductRequest is the create/update body for a product.
type ProductRequest struct {
	StoreID     string   `json:"store_id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

// Products lists products, optionally filtered.
func (c *Client) Products(ctx context.Context, q *ProductQuery) Response[[]domain.Product] {
	return do[[]domain.Product](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/products",
		query:  q.values(),
	})
}

// Product fetches one product by id.
func (c *Client) Product(ctx context.Context, id string) Response[domain.Product] {
	return do[domain.Product](ctx, c, requestSpec{
		method: http.MethodGet,
		path:   "/products/" + url.PathEscape(id),
	})
}

// CreateProduct adds a product to a store.
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) Response[domain.Product] {
	return do[domain.Product](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/products",
		body:   req,
	})
}

// UpdateProduct patches product fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, req ProductRequest) Response[domain.Product] {
	return do[domain.Product](ctx, c, requestSpec{
		method: http.MethodPut,
		path:   "/products/" + url.PathEscape(id),
		body:   req,
	})
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) Response[NoData] {
	return do[NoData](ctx, c, requestSpec{
		method: http.MethodDelete,
		path:   "/products/" + url.PathEscape(id),
	})
}
