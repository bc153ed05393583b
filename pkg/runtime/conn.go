// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package runtime

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

const (
	// writeTimeout bounds a single frame write so a stalled socket cannot
	// wedge the loop.
	writeTimeout = 5 * time.Second

	// readLimit is the maximum inbound frame size. Image payloads never
	// come inbound, so frames stay small; this is generous headroom.
	readLimit = 1 << 20
)

// conn wraps the controller websocket.
type conn struct {
	ws *websocket.Conn
}

// dialConn connects to the controller, retrying with fibonacci backoff.
// The controller opens its listener just before spawning the plugin, so
// the first attempt can race it and lose.
func dialConn(ctx context.Context, url string, attempts uint64) (*conn, error) {
	var ws *websocket.Conn
	backoff := retry.WithMaxRetries(attempts, retry.NewFibonacci(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, _, dialErr := websocket.Dial(ctx, url, nil)
		if dialErr != nil {
			return retry.RetryableError(dialErr)
		}
		ws = c
		return nil
	})
	if err != nil {
		return nil, oops.In("runtime").With("url", url).Wrapf(err, "dialing controller")
	}
	ws.SetReadLimit(readLimit)
	return &conn{ws: ws}, nil
}

// read blocks for the next text frame.
func (c *conn) read(ctx context.Context) ([]byte, error) {
	typ, data, err := c.ws.Read(ctx)
	if err != nil {
		return nil, oops.In("runtime").Wrapf(err, "reading frame")
	}
	if typ != websocket.MessageText {
		return nil, oops.In("runtime").With("type", typ.String()).Errorf("unexpected frame type")
	}
	return data, nil
}

// write sends one text frame with a bounded deadline.
func (c *conn) write(ctx context.Context, data []byte) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.ws.Write(wctx, websocket.MessageText, data); err != nil {
		return oops.In("runtime").Wrapf(err, "writing frame")
	}
	return nil
}

// close performs a normal websocket closure.
func (c *conn) close() {
	_ = c.ws.Close(websocket.StatusNormalClosure, "")
}
