package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResult is the stored image location returned by the upload endpoint.
type UploadResult struct {
	URL string `json:"url"`
}

// UploadProductImage sends an image as a multipart form under the "file"
// field. The multipart writer supplies the content type; no JSON header is
// set on this call.
func (c *Client) UploadProductImage(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products/upload-image", &buf)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, httpError(res)
	}
	var result UploadResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("upload image: decode response: %w", err)
	}
	return &result, nil
}
