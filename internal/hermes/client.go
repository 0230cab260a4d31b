package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// DrainTimeout bounds how long Close waits for subscriptions to drain.
const DrainTimeout = 10 * time.Second

type Client struct {
	conn     *nats.Conn
	logger   *slog.Logger
	closed   chan struct{}
	inflight sync.WaitGroup
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	closed := make(chan struct{})
	opts := []nats.Option{
		nats.Name("augur"),
		nats.DrainTimeout(DrainTimeout),
		nats.ClosedHandler(func(_ *nats.Conn) {
			close(closed)
		}),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger, closed: closed}, nil
}

// Connected reports whether the underlying connection is up.
func (c *Client) Connected() bool {
	return c.conn.IsConnected()
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := c.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	return c.QueueSubscribe(subject, "", handler)
}

// QueueSubscribe delivers each message to one member of queue. An empty
// queue is a plain subscription.
func (c *Client) QueueSubscribe(subject, queue string, handler func(subject string, data []byte)) error {
	cb := c.track(handler)
	var err error
	if queue == "" {
		_, err = c.conn.Subscribe(subject, cb)
	} else {
		_, err = c.conn.QueueSubscribe(subject, queue, cb)
	}
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.logger.Info("subscribed", "subject", subject, "queue", queue)
	return nil
}

// track counts running handlers so Close can wait for them.
func (c *Client) track(handler func(subject string, data []byte)) nats.MsgHandler {
	return func(msg *nats.Msg) {
		c.inflight.Add(1)
		defer c.inflight.Done()
		handler(msg.Subject, msg.Data)
	}
}

// waitHandlers reports whether every running handler returned within timeout.
func (c *Client) waitHandlers(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	timer := time.NewTimer(max(timeout, 0))
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// Close drains subscriptions and blocks until the connection is closed and
// in-flight handlers have returned, for at most DrainTimeout.
func (c *Client) Close() {
	deadline := time.Now().Add(DrainTimeout)
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	} else {
		select {
		case <-c.closed:
		case <-time.After(DrainTimeout):
			c.logger.Warn("nats drain timed out")
			c.conn.Close()
		}
	}
	if !c.waitHandlers(time.Until(deadline)) {
		c.logger.Warn("nats handlers still running after close")
	}
}
