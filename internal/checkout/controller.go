package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Pageblan/Carepulse/internal/cart"
	"github.com/Pageblan/Carepulse/internal/notify"
)

var (
	ErrCheckoutInFlight  = errors.New("checkout already in progress")
	ErrSessionCreation   = errors.New("failed to create checkout session")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
)

// Session identifies a created provider session and the hosted payment
// page the user agent should be sent to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// SessionCreator is the payment collaborator boundary.
type SessionCreator interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)
}

const defaultSessionTimeout = 15 * time.Second

// Controller drives one session's checkout attempts through
// IDLE -> SESSION_REQUESTED -> REDIRECTING -> (SUCCEEDED|CANCELLED|FAILED).
// A failed or finished attempt returns the controller to IDLE; retry is
// always a fresh user action, never automatic.
type Controller struct {
	mu       sync.Mutex
	status   Status
	attempt  cart.Snapshot
	builder  Builder
	payments SessionCreator
	timeout  time.Duration
	notifier notify.Notifier
}

func NewController(payments SessionCreator, builder Builder, timeout time.Duration, notifier notify.Notifier) *Controller {
	if timeout <= 0 {
		timeout = defaultSessionTimeout
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Controller{
		status:   StatusIdle,
		builder:  builder,
		payments: payments,
		timeout:  timeout,
		notifier: notifier,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Attempt returns the cart snapshot the current or most recent checkout
// attempt was started with. It survives the attempt finishing so the
// success destination can report what was actually purchased, not
// whatever the server-side cart happens to hold.
func (c *Controller) Attempt() cart.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// Start builds a session request from the snapshot and asks the payment
// collaborator for a session. While a request is in flight any further
// Start is refused, which is the double-submission guard. The context
// bounds the provider call: cancellation (user navigated away) or the
// configured timeout fails this attempt only.
func (c *Controller) Start(ctx context.Context, snap cart.Snapshot, origin string) (*Session, error) {
	c.mu.Lock()
	if c.status == StatusSessionRequested {
		c.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}

	req, err := c.builder.BuildSessionRequest(snap.Items, origin)
	if err != nil {
		c.mu.Unlock()
		c.notifier.Error(err.Error())
		return nil, err
	}

	if err := c.transitionLocked(StatusSessionRequested); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.attempt = snap
	c.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sess, err := c.payments.CreateSession(callCtx, req)
	if err == nil && sess.ID == "" {
		err = errors.New("provider response missing session id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.failLocked()
		c.notifier.Error("An error occurred during checkout.")
		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	if err := c.transitionLocked(StatusRedirecting); err != nil {
		return nil, err
	}
	return sess, nil
}

// Succeed records the external redirect back to the success destination.
// The payment outcome itself is not verified here; the destination
// reached is trusted.
func (c *Controller) Succeed() error {
	return c.finish(StatusSucceeded)
}

// Cancel records the redirect back to the cancel destination. The cart
// is untouched; preserving it is the caller's (non-)responsibility.
func (c *Controller) Cancel() error {
	return c.finish(StatusCancelled)
}

func (c *Controller) finish(outcome Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.transitionLocked(outcome); err != nil {
		return err
	}
	return c.transitionLocked(StatusIdle)
}

// failLocked walks the attempt through FAILED and back to IDLE.
func (c *Controller) failLocked() {
	if err := c.transitionLocked(StatusFailed); err != nil {
		log.Printf("checkout: %v", err)
		c.status = StatusIdle
		return
	}
	if err := c.transitionLocked(StatusIdle); err != nil {
		log.Printf("checkout: %v", err)
	}
}

func (c *Controller) transitionLocked(to Status) error {
	if !CanTransitionTo(c.status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.status, to)
	}
	c.status = to
	return nil
}
