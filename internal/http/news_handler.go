package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Pageblan/Carepulse/internal/news"
)

// HeadlineSource is what the news page needs from the headlines client.
type HeadlineSource interface {
	TopHeadlines(ctx context.Context, category, country string) ([]news.Article, error)
}

type NewsHandler struct {
	headlines HeadlineSource
	timeout   time.Duration
}

func NewNewsHandler(headlines HeadlineSource, timeout time.Duration) *NewsHandler {
	return &NewsHandler{
		headlines: headlines,
		timeout:   timeout,
	}
}

func (h *NewsHandler) Headlines(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	articles, err := h.headlines.TopHeadlines(ctx, r.URL.Query().Get("category"), r.URL.Query().Get("country"))
	if err != nil {
		respondError(w, http.StatusBadGateway, "bad_upstream", "failed to fetch headlines")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"articles": articles})
}
