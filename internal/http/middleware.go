package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Pageblan/Carepulse/internal/session"
)

const sessionCookieName = "cart_session"

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionMiddleware resumes the browser session from the cart cookie,
// starting a fresh one (new cart, new checkout controller) when the
// cookie is missing or expired.
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(sessionCookieName); err == nil {
				id = c.Value
			}

			sess := manager.GetOrCreate(id)
			if sess.ID != id {
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), "cart_session", sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getSessionFromContext(ctx context.Context) *session.Session {
	if s, ok := ctx.Value("cart_session").(*session.Session); ok {
		return s
	}
	return nil
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}
