// Package livechannel maintains the streaming connection that pushes deal
// items to the client and turns its frames into typed messages.
package livechannel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"
)

const (
	defaultBuffer     = 64
	closeWriteTimeout = time.Second
)

// ReconnectPolicy controls redialing after the stream drops.
// The zero value never reconnects.
type ReconnectPolicy struct {
	Enabled         bool
	MaxAttempts     int // 0 means unlimited
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (p ReconnectPolicy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	return b
}

// Config configures a Channel
type Config struct {
	URL       string
	Dialer    *websocket.Dialer
	Reporter  ErrorReporter
	Reconnect ReconnectPolicy
	Logger    *slog.Logger
	Buffer    int
}

// Channel owns one logical stream connection and exposes its decoded frames.
type Channel struct {
	url       string
	dialer    *websocket.Dialer
	reporter  ErrorReporter
	reconnect ReconnectPolicy
	logger    *slog.Logger

	msgs chan Message
	done chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
	cancel    context.CancelFunc

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
}

// New creates a Channel. Nothing is dialed until Start.
func New(cfg Config) *Channel {
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Reporter == nil {
		cfg.Reporter = LogReporter{Logger: cfg.Logger}
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}
	return &Channel{
		url:       cfg.URL,
		dialer:    cfg.Dialer,
		reporter:  cfg.Reporter,
		reconnect: cfg.Reconnect,
		logger:    cfg.Logger.With("component", "livechannel", "url", cfg.URL),
		msgs:      make(chan Message, cfg.Buffer),
		done:      make(chan struct{}),
		cancel:    func() {},
	}
}

// Start dials in the background. Later calls are no-ops.
func (c *Channel) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		c.mu.Lock()
		c.cancel = cancel
		c.mu.Unlock()
		go c.run(ctx)
	})
}

// Messages yields decoded frames. It is closed once the channel stops for good.
func (c *Channel) Messages() <-chan Message {
	return c.msgs
}

// Done is closed when the channel has stopped
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Connected reports whether a connection is currently open
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close shuts the stream down. Safe to call more than once.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		// never started: nothing will close the outputs
		c.startOnce.Do(func() { close(c.msgs); close(c.done) })

		// cancel under the lock so a dial finishing now cannot install a conn
		c.mu.Lock()
		c.cancel()
		conn := c.conn
		c.mu.Unlock()

		if conn != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(closeWriteTimeout))
			err = c.closeConn(conn)
		}
	})
	return err
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.done)
	defer close(c.msgs)

	b := c.reconnect.backOff()
	attempts := 0
	for {
		err := c.session(ctx, func() { attempts = 0; b.Reset() })
		if ctx.Err() != nil {
			return
		}
		c.reporter.Report(fmt.Errorf("%w: %v", ErrConnection, err))

		if !c.reconnect.Enabled {
			c.logger.Info("stream closed, not reconnecting")
			return
		}
		attempts++
		if c.reconnect.MaxAttempts > 0 && attempts > c.reconnect.MaxAttempts {
			c.logger.Warn("giving up on stream", "attempts", attempts-1)
			return
		}

		wait := b.NextBackOff()
		c.logger.Info("reconnecting", "attempt", attempts, "wait", wait)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// session dials once and reads until the connection fails
func (c *Channel) session(ctx context.Context, onOpen func()) error {
	conn, resp, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial %s: %s: %w", c.url, resp.Status, err)
		}
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	c.mu.Lock()
	if ctx.Err() != nil {
		c.mu.Unlock()
		_ = conn.Close()
		return ctx.Err()
	}
	c.conn = conn
	c.connected = true
	c.mu.Unlock()
	defer c.closeConn(conn)

	onOpen()
	c.logger.Info("stream connected")
	return c.readLoop(ctx, conn)
}

func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		msg, err := Decode(frame)
		if err != nil {
			c.reporter.Report(err)
			continue
		}

		select {
		case c.msgs <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// closeConn closes conn if it is still the live connection, so each
// connection is closed exactly once whichever side gets there first.
func (c *Channel) closeConn(conn *websocket.Conn) error {
	c.mu.Lock()
	if c.conn != conn {
		c.mu.Unlock()
		return nil
	}
	c.conn = nil
	c.connected = false
	c.mu.Unlock()
	return conn.Close()
}
