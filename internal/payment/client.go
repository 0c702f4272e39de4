package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Pageblan/Carepulse/internal/checkout"
)

var ErrProviderUnavailable = errors.New("payment provider unavailable")

const sessionsPath = "/v1/checkout/sessions"

// Client talks to the payment provider's session-creation endpoint.
// Calls run through a circuit breaker so a dead provider fails fast
// instead of holding every checkout for the full timeout.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*checkout.Session]
}

func NewClient(baseURL, secretKey string) *Client {
	settings := gobreaker.Settings{
		Name:    "payment-sessions",
		Timeout: 30 * time.Second,
	}
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{},
		breaker:    gobreaker.NewCircuitBreaker[*checkout.Session](settings),
	}
}

// CreateSession posts the session request and returns the provider's
// session id plus the hosted payment page URL for the redirect.
func (c *Client) CreateSession(ctx context.Context, req *checkout.SessionRequest) (*checkout.Session, error) {
	sess, err := c.breaker.Execute(func() (*checkout.Session, error) {
		return c.createSession(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return sess, err
}

func (c *Client) createSession(ctx context.Context, req *checkout.SessionRequest) (*checkout.Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sessionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("payment provider returned %d", resp.StatusCode)
	}

	var sess checkout.Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if sess.ID == "" {
		return nil, errors.New("session response missing id")
	}
	if sess.URL == "" {
		sess.URL = fmt.Sprintf("%s/pay/%s", c.baseURL, sess.ID)
	}
	return &sess, nil
}
