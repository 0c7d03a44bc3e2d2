package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BlobUploadResult is returned by the blob store after a successful PUT.
type BlobUploadResult struct {
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

// BlobStore is the upload contract the catalog service depends on.
type BlobStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (*BlobUploadResult, error)
}

// BlobClient talks to the Vercel Blob REST API. Uploaded objects are public
// and get a random suffix so repeated filenames never collide.
type BlobClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewBlobClient(endpoint, token string) *BlobClient {
	return &BlobClient{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *BlobClient) Upload(ctx context.Context, filename, contentType string, body io.Reader) (*BlobUploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint+"/"+filename, body)
	if err != nil {
		return nil, fmt.Errorf("blob: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Access", "public")
	req.Header.Set("X-Add-Random-Suffix", "1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob: store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blob: store returned %d", resp.StatusCode)
	}

	var result BlobUploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("blob: decode response: %w", err)
	}
	return &result, nil
}
