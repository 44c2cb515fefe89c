package whois

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

const (
	// queryTimeout is the absolute wall-clock budget for one query,
	// covering connect, write, and all reads.
	queryTimeout = 5 * time.Second

	// maxResponseBytes guards against a misbehaving server streaming
	// unbounded data.
	maxResponseBytes = 10 * 1024

	whoisPort = "43"
)

// ErrUnsupportedTLD is returned when the domain's TLD is not on the
// allow-list; no network call is attempted in that case.
var ErrUnsupportedTLD = errors.New("unsupported tld")

// DialFunc opens the TCP connection to a WHOIS server. Overridable for
// tests.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Client performs WHOIS queries against the registry's allow-listed
// servers. Connection failures and timeouts degrade to an empty response,
// which classifies as unknown; they are not errors to the caller.
type Client struct {
	registry *Registry
	dial     DialFunc
	logger   *slog.Logger
	timeout  time.Duration
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDialFunc overrides the dialer, mainly for tests against a local fake
// server.
func WithDialFunc(dial DialFunc) Option {
	return func(c *Client) {
		c.dial = dial
	}
}

// WithTimeout overrides the per-query budget, mainly for tests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func NewClient(registry *Registry, opts ...Option) (*Client, error) {
	if registry == nil {
		return nil, fmt.Errorf("server registry is required")
	}

	dialer := &net.Dialer{}
	c := &Client{
		registry: registry,
		dial:     dialer.DialContext,
		timeout:  queryTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup queries the registered server for the domain's TLD and classifies
// the reply. The TLD must already be lowercased by the caller.
func (c *Client) Lookup(ctx context.Context, domain, tld string) (Result, error) {
	profile, ok := c.registry.Profile(tld)
	if !ok {
		return Result{Status: StatusUnknown}, ErrUnsupportedTLD
	}

	raw := c.query(ctx, profile, domain)
	return Result{Status: profile.Parse(raw), Raw: raw}, nil
}

type readChunk struct {
	data []byte
	err  error
}

// query runs the wire exchange: connect, send the server-specific query,
// release the write side, then accumulate the reply under the remaining
// time budget. Whatever text accumulated by the terminal state is returned,
// possibly empty; the connection is closed on every exit path.
func (c *Client) query(ctx context.Context, profile ServerProfile, domain string) string {
	deadline := time.Now().Add(c.timeout)

	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	conn, err := c.dial(dialCtx, "tcp", net.JoinHostPort(profile.Host, whoisPort))
	if err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "whois connect failed", "server", profile.Host, "error", err)
		}
		return ""
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\r\n", profile.FormatQuery(domain)); err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "whois query write failed", "server", profile.Host, "error", err)
		}
		return ""
	}
	// Most WHOIS servers send the reply only after seeing EOF on the query
	// side and close the connection when done; release our write half
	// without closing the read half.
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.CloseWrite()
	}

	return c.readBudgeted(conn, deadline)
}

// readBudgeted accumulates the reply, racing each read against a timer
// armed with the remaining budget so the total wait can never exceed the
// original deadline no matter how many small packets arrive. A read losing
// the race is abandoned, not cancelled; closing the connection unblocks it.
func (c *Client) readBudgeted(conn net.Conn, deadline time.Time) string {
	chunks := make(chan readChunk)
	done := make(chan struct{})
	defer close(done)

	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := conn.Read(buf)
			chunk := readChunk{err: err}
			if n > 0 {
				chunk.data = append([]byte(nil), buf[:n]...)
			}
			select {
			case chunks <- chunk:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var response bytes.Buffer
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		timer := time.NewTimer(remaining)
		select {
		case chunk := <-chunks:
			timer.Stop()
			response.Write(chunk.data)
			if response.Len() > maxResponseBytes {
				response.Truncate(maxResponseBytes)
				return response.String()
			}
			if chunk.err != nil {
				return response.String()
			}
		case <-timer.C:
			return response.String()
		}
	}
	return response.String()
}
