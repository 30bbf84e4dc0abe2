package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/arloliu/greenlight"
	"github.com/arloliu/greenlight/internal/backoff"
	"github.com/arloliu/greenlight/internal/natsutil"
)

const (
	defaultRetryBase = 50 * time.Millisecond
	maxRetryDelay    = 2 * time.Second
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetry retries requests that fail with ErrConnectivity.
//
// Delays grow with decorrelated jitter from base up to 2 seconds. Responder
// errors (ErrRemote) are never retried.
//
// Parameters:
//   - attempts: Extra attempts after the first one
//   - base: First retry delay (50ms if <= 0)
func WithRetry(attempts int, base time.Duration) ClientOption {
	return func(c *Client) {
		c.retries = max(attempts, 0)
		if base <= 0 {
			base = defaultRetryBase
		}
		c.retryBase = base
	}
}

// Client sends allocation requests to a Responder.
type Client struct {
	nc        *nats.Conn
	subject   string
	timeout   time.Duration
	retries   int
	retryBase time.Duration
}

// NewClient creates a new allocation client.
//
// Parameters:
//   - nc: NATS connection
//   - subject: Subject the responder listens on
//   - timeout: Per-attempt timeout applied when ctx carries no deadline (2s if <= 0)
//   - opts: Optional settings (WithRetry)
//
// Returns:
//   - *Client: Ready-to-use client
//   - error: ErrNATSConnectionRequired if nc is nil
func NewClient(nc *nats.Conn, subject string, timeout time.Duration, opts ...ClientOption) (*Client, error) {
	if nc == nil {
		return nil, greenlight.ErrNATSConnectionRequired
	}
	if timeout <= 0 {
		timeout = greenlight.DefaultConfig().Service.RequestTimeout
	}

	c := &Client{nc: nc, subject: subject, timeout: timeout, retryBase: defaultRetryBase}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Allocate requests a plan for densities.
//
// Parameters:
//   - ctx: Context for the request (and for waiting between retries)
//   - densities: Weight per lane
//   - params: Cycle parameters, or nil to use the responder's configuration
//
// Returns:
//   - *Reply: Success reply (Error is always empty)
//   - error: ErrRemote wrapping the responder's message, ErrConnectivity if no
//     responder answered in time, or an encoding error
func (c *Client) Allocate(ctx context.Context, densities []float64, params *greenlight.CycleParams) (*Reply, error) {
	req := Request{Densities: densities}
	if params != nil {
		req.TotalCycleTime = &params.TotalCycleTime
		req.MinGreenTime = &params.MinGreenTime
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode allocation request: %w", err)
	}

	var delays *backoff.Jitter
	for attempt := 0; ; attempt++ {
		reply, err := c.request(ctx, data)
		if err == nil || attempt >= c.retries || !errors.Is(err, greenlight.ErrConnectivity) {
			return reply, err
		}

		if delays == nil {
			delays = backoff.New(c.retryBase, maxRetryDelay, 2, 0)
		}

		select {
		case <-ctx.Done():
			return nil, err
		case <-time.After(delays.Next()):
		}
	}
}

// request performs a single request/reply round-trip.
func (c *Client) request(ctx context.Context, data []byte) (*Reply, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.nc.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		if natsutil.IsConnectivityError(err) {
			return nil, fmt.Errorf("%w: %w", greenlight.ErrConnectivity, err)
		}

		return nil, fmt.Errorf("allocation request failed: %w", err)
	}

	var reply Reply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode allocation reply: %w", err)
	}

	if reply.Error != "" {
		return nil, fmt.Errorf("%w: %s", greenlight.ErrRemote, reply.Error)
	}

	return &reply, nil
}
