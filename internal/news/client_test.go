package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, apiKey string) *Client {
	c := NewClient(apiKey)
	c.baseURL = srv.URL
	return c
}

func TestTopHeadlines_Success(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"category": r.URL.Query().Get("category"),
			"country":  r.URL.Query().Get("country"),
			"apiKey":   r.URL.Query().Get("apiKey"),
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":       "ok",
			"totalResults": 1,
			"articles": []map[string]any{
				{
					"source": map[string]string{"name": "Reuters"},
					"title":  "Flu season starts early",
					"url":    "https://news.example/flu",
				},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, "key123")
	articles, err := client.TopHeadlines(context.Background(), "health", "ke")
	require.NoError(t, err)

	require.Len(t, articles, 1)
	assert.Equal(t, "Flu season starts early", articles[0].Title)
	assert.Equal(t, "Reuters", articles[0].Source.Name)
	assert.Equal(t, "health", gotQuery["category"])
	assert.Equal(t, "ke", gotQuery["country"])
	assert.Equal(t, "key123", gotQuery["apiKey"])
}

func TestTopHeadlines_Defaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "health", r.URL.Query().Get("category"))
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "key123").TopHeadlines(context.Background(), "", "")
	require.NoError(t, err)
}

func TestTopHeadlines_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"code":    "apiKeyInvalid",
			"message": "Your API key is invalid",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "bad").TopHeadlines(context.Background(), "health", "us")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}
