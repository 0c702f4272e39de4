package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL  = "https://newsapi.org/v2"
	defaultCategory = "health"
	defaultCountry  = "us"
)

// Client fetches top headlines from the news aggregation API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
	Content     string    `json:"content"`
}

type headlinesResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// TopHeadlines fetches headlines for a category and country, defaulting
// to health news for the US like the storefront's news page.
func (c *Client) TopHeadlines(ctx context.Context, category, country string) ([]Article, error) {
	if category == "" {
		category = defaultCategory
	}
	if country == "" {
		country = defaultCountry
	}

	q := url.Values{}
	q.Set("category", category)
	q.Set("country", country)
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build headlines request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call news api: %w", err)
	}
	defer resp.Body.Close()

	var body headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode headlines response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || body.Status != "ok" {
		if body.Message != "" {
			return nil, fmt.Errorf("news api error %s: %s", body.Code, body.Message)
		}
		return nil, fmt.Errorf("news api returned %d", resp.StatusCode)
	}

	return body.Articles, nil
}
