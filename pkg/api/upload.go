package api

import (
	"context"
	"io"
	"net/http"

	"github.com/souk-hq/souk-go/internal/domain"
)

// UploadImage posts an image as multipart form data. Unlike the JSON
// endpoints, no default content type is set so the transport can write the
// multipart boundary itself.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) Response[domain.UploadedImage] {
	return do[domain.UploadedImage](ctx, c, requestSpec{
		method: http.MethodPost,
		path:   "/upload/image",
		file: &filePayload{
			param:    "image",
			filename: filename,
			reader:   r,
		},
	})
}
