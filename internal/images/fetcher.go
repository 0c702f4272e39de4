package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNotImage = errors.New("the requested resource is not a valid image")

const maxImageBytes = 10 << 20 // 10MB

// Fetcher proxies catalog images out of the document store, which
// requires project and key headers the browser cannot send itself.
type Fetcher struct {
	projectID  string
	apiKey     string
	httpClient *http.Client
}

func NewFetcher(projectID, apiKey string) *Fetcher {
	return &Fetcher{
		projectID:  projectID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves the image bytes behind a resource reference and returns
// them with their content type for serving.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("X-Appwrite-Project", f.projectID)
	req.Header.Set("X-Appwrite-Key", f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") {
		return nil, "", ErrNotImage
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}
	return data, contentType, nil
}
