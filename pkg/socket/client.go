// Package socket owns the single WebSocket connection to the chat backend.
package socket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/protocol"
)

const (
	DefaultURL              = "ws://localhost:8000/ws/chat"
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 10 * time.Second

	frameBuffer = 64
)

var ErrClosed = errors.New("connection closed")

// Sender is the write side of a connection.
type Sender interface {
	Send(v any) error
}

type Options struct {
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	Header           http.Header
}

func (o Options) withDefaults() Options {
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	return o
}

// Client is one connection to the backend. It never reconnects.
type Client struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	frames chan protocol.Frame
	cancel context.CancelFunc
	group  *errgroup.Group

	writeMu   sync.Mutex
	closeOnce sync.Once

	errMu sync.Mutex
	err   error
}

// Dial opens the connection and starts the read loop. The read loop stops
// when ctx is cancelled, the peer closes, or Close is called.
func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	opts = opts.withDefaults()
	log := logger.WithComponent("socket")

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = opts.HandshakeTimeout

	conn, resp, err := dialer.DialContext(ctx, url, opts.Header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	log.Infow("connected", "url", url)

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)

	c := &Client{
		conn:         conn,
		writeTimeout: opts.WriteTimeout,
		frames:       make(chan protocol.Frame, frameBuffer),
		cancel:       cancel,
		group:        g,
	}

	g.Go(func() error {
		return c.readLoop(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		// unblocks ReadMessage
		return conn.Close()
	})

	return c, nil
}

func (c *Client) readLoop(ctx context.Context) error {
	defer close(c.frames)
	defer c.cancel()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.setErr(ErrClosed)
				return nil
			}
			logger.Warn("WebSocket read failed: %v", err)
			c.setErr(fmt.Errorf("%w: %v", ErrClosed, err))
			return err
		}

		frame, err := protocol.Decode(data)
		if err != nil {
			logger.Warn("Dropping inbound frame: %v", err)
			continue
		}

		select {
		case c.frames <- frame:
		case <-ctx.Done():
			c.setErr(ErrClosed)
			return nil
		}
	}
}

// Frames returns the decoded inbound frames. The channel is closed when the
// connection ends; Err then reports why.
func (c *Client) Frames() <-chan protocol.Frame {
	return c.frames
}

func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Client) setErr(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// Send writes v as one JSON text frame. Writes are serialized.
func (c *Client) Send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.Err(); err != nil {
		return err
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := c.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to send frame: %w", err)
	}
	return nil
}

// Close sends a close frame, closes the connection and waits for the read
// loop to exit. It is safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.writeTimeout))
		c.writeMu.Unlock()

		c.setErr(ErrClosed)
		c.cancel()
		if err := c.group.Wait(); err != nil {
			logger.Debug("WebSocket read loop ended with: %v", err)
		}
	})
	return nil
}

var _ Sender = (*Client)(nil)
