// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package chat maintains the client's connection to the district messaging
// server. The connection is long-lived and self-healing: on any read failure
// the client redials with exponential backoff, so a flaky staff-room WiFi
// link degrades to delayed messages instead of a dead channel.
package chat

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/models"
)

const (
	handshakeTimeout  = 10 * time.Second
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	reconnectDelayMin = time.Second
	reconnectDelayMax = 30 * time.Second
)

// TokenSource supplies the current bearer token for the WebSocket handshake.
// It is read on every (re)dial so a refreshed session is picked up without
// restarting the client.
type TokenSource func() string

// MessageHandler receives every inbound chat message. It is called from the
// client's read goroutine and must not block.
type MessageHandler func(models.ChatMessage)

// Client is the messaging server WebSocket client.
type Client struct {
	url     string
	token   TokenSource
	handler MessageHandler

	connMu sync.RWMutex
	conn   *websocket.Conn

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClient builds a chat client for the given messaging server URL. The
// client is idle until Start is called.
func NewClient(url string, token TokenSource, handler MessageHandler, log *logger.Logger) *Client {
	return &Client{
		url:     url,
		token:   token,
		handler: handler,
		logger:  log,
	}
}

// Start launches the connection loop. The first dial happens synchronously
// so a misconfigured URL fails fast; every later disconnect is retried in
// the background with exponential backoff. Calling Start while running
// restarts the client.
func (c *Client) Start(ctx context.Context) error {
	c.Stop()

	c.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	if err := c.dial(runCtx); err != nil {
		return err
	}

	c.wg.Add(2)
	go c.readLoop(runCtx)
	go c.pingLoop(runCtx)
	return nil
}

// Stop closes the connection and waits for the background goroutines to
// exit. Safe to call when the client is not running.
func (c *Client) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	c.closeConn()
	c.wg.Wait()
}

// Send writes one message to the server. Returns an error when the client is
// currently disconnected; the caller decides whether to queue or drop.
func (c *Client) Send(msg models.ChatMessage) error {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()

	if conn == nil {
		return fmt.Errorf("messaging server not connected")
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send chat message: %w", err)
	}
	return nil
}

func (c *Client) dial(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	header := http.Header{}
	if token := c.token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial messaging server (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("dial messaging server: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	c.logger.Info().Str("url", c.url).Msg("connected to messaging server")
	return nil
}

func (c *Client) closeConn() {
	c.connMu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.connMu.Unlock()
}

// readLoop reads messages for the lifetime of the client, redialling with
// exponential backoff whenever the connection drops.
func (c *Client) readLoop(ctx context.Context) {
	defer c.wg.Done()

	delay := reconnectDelayMin
	for {
		if ctx.Err() != nil {
			return
		}

		c.connMu.RLock()
		conn := c.conn
		c.connMu.RUnlock()

		if conn == nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > reconnectDelayMax {
				delay = reconnectDelayMax
			}

			if err := c.dial(ctx); err != nil {
				c.logger.Warn().Err(err).Dur("retry_in", delay).Msg("messaging server reconnect failed")
				continue
			}
			delay = reconnectDelayMin
			continue
		}

		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.logger.Debug().Err(err).Msg("set read deadline")
		}

		var msg models.ChatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().Msg("messaging server closed the connection")
			} else {
				c.logger.Warn().Err(err).Msg("messaging server read failed")
			}
			c.closeConn()
			continue
		}

		delay = reconnectDelayMin
		if c.handler != nil {
			c.handler(msg)
		}
	}
}

// pingLoop keeps the connection alive; a peer that stops answering trips the
// read deadline in readLoop, which triggers the redial.
func (c *Client) pingLoop(ctx context.Context) {
	defer c.wg.Done()

	t := time.NewTicker(pingPeriod)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.connMu.RLock()
			conn := c.conn
			c.connMu.RUnlock()
			if conn == nil {
				continue
			}

			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("ping failed")
			}
		}
	}
}
