// Package stream maintains the long-lived update connection to the GUI
// server. It opens a session, reads server-sent fragment updates, and
// keeps the session alive with periodic pings, reconnecting with backoff
// when the link drops.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
)

const (
	defaultPingPeriod = 5 * time.Second
	initialBackoff    = time.Second
	maxBackoff        = 30 * time.Second

	// Fragments can carry a whole page; give the scanner room.
	maxEventSize = 1 << 20
)

// Client streams fragment updates from a pyhtmx GUI server.
type Client struct {
	baseURL    string
	pingPeriod time.Duration
	httpc      *http.Client
	updates    chan fragment.Update
	log        *slog.Logger
}

// New returns a client for the server at baseURL. A zero pingPeriod
// selects the server's default cadence.
func New(baseURL string, pingPeriod time.Duration, log *slog.Logger) *Client {
	if pingPeriod <= 0 {
		pingPeriod = defaultPingPeriod
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pingPeriod: pingPeriod,
		httpc:      &http.Client{},
		updates:    make(chan fragment.Update, 16),
		log:        log,
	}
}

// Updates returns the channel fragment updates arrive on. It is closed
// when Run returns.
func (c *Client) Updates() <-chan fragment.Update { return c.updates }

// Run connects and keeps reconnecting until ctx is cancelled. The only
// error it returns is ctx's.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.updates)

	backoff := initialBackoff
	for {
		err := c.connectOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("update stream lost", "error", err, "retry_in", backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// connectOnce runs a single session: open, read, ping. It returns when
// any leg fails, tearing the others down with it.
func (c *Client) connectOnce(ctx context.Context) error {
	session, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	c.log.Info("session opened", "session", session, "server", c.baseURL)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readLoop(gctx) })
	g.Go(func() error { return c.pingLoop(gctx, session) })
	return g.Wait()
}

// openSession fetches the root document and extracts the session id the
// server embedded in it.
func (c *Client) openSession(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("session request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("open session: server returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEventSize))
	if err != nil {
		return "", fmt.Errorf("read session page: %w", err)
	}
	session, ok := fragment.ElementText(string(body), "session-id")
	if !ok || session == "" {
		return "", fmt.Errorf("no session id in page from %s", c.baseURL)
	}
	return session, nil
}

// readLoop consumes the event stream and forwards each fragment update.
func (c *Client) readLoop(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/updates", nil)
	if err != nil {
		return fmt.Errorf("stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("connect stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream: server returned %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var target string
	var data bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// Data lines accumulate with a newline each; drop the last one.
			markup := strings.TrimSuffix(data.String(), "\n")
			if err := c.dispatch(ctx, target, markup); err != nil {
				return err
			}
			target = ""
			data.Reset()
			continue
		}
		switch {
		case strings.HasPrefix(line, "event:"):
			target = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			data.WriteByte('\n')
		case strings.HasPrefix(line, ":"):
			// Keepalive comment.
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream read: %w", err)
	}
	return fmt.Errorf("stream closed by server")
}

// dispatch hands one update to the consumer. Events without a target
// cannot be routed and are dropped.
func (c *Client) dispatch(ctx context.Context, target, markup string) error {
	if target == "" || markup == "" {
		return nil
	}
	select {
	case c.updates <- fragment.Update{Target: target, Markup: markup}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pingLoop tells the server the session is still alive. A missed ping
// gets the session reaped server-side, so a failure forces a reconnect.
func (c *Client) pingLoop(ctx context.Context, session string) error {
	ticker := time.NewTicker(c.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.ping(ctx, session); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) ping(ctx context.Context, session string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ping/"+session, nil)
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("ping: server returned %d", resp.StatusCode)
	}
	return nil
}
