// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package mockhost runs a controller stand-in: a websocket endpoint that
// accepts one plugin connection, answers the registration handshake, and
// lets a driver inject events and observe commands. Tests and the
// `tilekit mockhost` command both sit on top of it.
package mockhost

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/samber/oops"
)

// Registration is the first frame a plugin sends after connecting.
type Registration struct {
	Event string `json:"event"`
	UUID  string `json:"uuid"`
}

// Host is a single-plugin mock controller.
type Host struct {
	listener net.Listener
	server   *http.Server
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	globals map[string]any

	registered chan Registration
	frames     chan json.RawMessage
	closed     chan struct{}
	closeOnce  sync.Once
}

// Listen starts a mock host on addr ("127.0.0.1:0" picks a free port).
func Listen(addr string, logger *slog.Logger) (*Host, error) {
	if logger == nil {
		logger = slog.Default()
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, oops.In("mockhost").With("addr", addr).Wrap(err)
	}

	h := &Host{
		listener:   listener,
		logger:     logger,
		globals:    map[string]any{},
		registered: make(chan Registration, 1),
		frames:     make(chan json.RawMessage, 64),
		closed:     make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.handle)
	h.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if serveErr := h.server.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("mock host server error", "error", serveErr)
		}
	}()

	logger.Info("mock host listening", "addr", listener.Addr().String())
	return h, nil
}

// Addr returns the listen address.
func (h *Host) Addr() string { return h.listener.Addr().String() }

// Port returns the listen port.
func (h *Host) Port() int {
	return h.listener.Addr().(*net.TCPAddr).Port
}

// URL returns the websocket endpoint plugins should dial.
func (h *Host) URL() string { return "ws://" + h.Addr() }

// Registered delivers the handshake frame once a plugin connects.
func (h *Host) Registered() <-chan Registration { return h.registered }

// Frames delivers every command frame the plugin sends after registering.
// Handshake frames and the frames the host answers itself still appear
// here, so drivers see the full conversation.
func (h *Host) Frames() <-chan json.RawMessage { return h.frames }

// Done is closed when the host shuts down.
func (h *Host) Done() <-chan struct{} { return h.closed }

func (h *Host) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}

	h.mu.Lock()
	if h.conn != nil {
		h.mu.Unlock()
		_ = conn.Close(websocket.StatusPolicyViolation, "plugin already connected")
		return
	}
	h.conn = conn
	h.mu.Unlock()

	ctx := r.Context()

	// Handshake first.
	_, data, err := conn.Read(ctx)
	if err != nil {
		h.logger.Error("handshake read failed", "error", err)
		h.dropConn()
		return
	}
	var reg Registration
	if err := json.Unmarshal(data, &reg); err != nil || reg.Event == "" || reg.UUID == "" {
		h.logger.Error("bad registration frame", "frame", string(data))
		_ = conn.Close(websocket.StatusPolicyViolation, "bad registration")
		h.dropConn()
		return
	}
	h.logger.Info("plugin registered", "event", reg.Event, "uuid", reg.UUID)
	select {
	case h.registered <- reg:
	default:
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			h.logger.Info("plugin disconnected", "error", err)
			h.dropConn()
			return
		}
		h.react(ctx, data)
		select {
		case h.frames <- json.RawMessage(data):
		default:
			h.logger.Warn("frame buffer full, frame dropped")
		}
	}
}

// react answers settings traffic the way the real controller does, so a
// plugin's startup sequence works against the mock unmodified.
func (h *Host) react(ctx context.Context, data []byte) {
	var cmd struct {
		Event   string          `json:"event"`
		Context string          `json:"context"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &cmd); err != nil {
		return
	}
	switch cmd.Event {
	case "getGlobalSettings":
		h.mu.Lock()
		settings := h.globals
		h.mu.Unlock()
		_ = h.Send(ctx, map[string]any{
			"event":   "didReceiveGlobalSettings",
			"payload": map[string]any{"settings": settings},
		})
	case "setGlobalSettings":
		var settings map[string]any
		if err := json.Unmarshal(cmd.Payload, &settings); err == nil {
			h.mu.Lock()
			h.globals = settings
			h.mu.Unlock()
		}
	}
}

// Send marshals v and writes it to the connected plugin.
func (h *Host) Send(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return oops.In("mockhost").Wrap(err)
	}
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	if conn == nil {
		return oops.In("mockhost").Errorf("no plugin connected")
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		return oops.In("mockhost").Wrapf(err, "writing event frame")
	}
	return nil
}

// SendTileEvent injects a tile-addressed event.
func (h *Host) SendTileEvent(ctx context.Context, event, actionID, tileContext string, payload map[string]any) error {
	frame := map[string]any{
		"event":   event,
		"action":  actionID,
		"context": tileContext,
		"device":  "mock-device",
	}
	if payload != nil {
		frame["payload"] = payload
	}
	return h.Send(ctx, frame)
}

// SendAppEvent injects applicationDidLaunch or applicationDidTerminate.
func (h *Host) SendAppEvent(ctx context.Context, event, application string) error {
	return h.Send(ctx, map[string]any{
		"event":   event,
		"payload": map[string]any{"application": application},
	})
}

func (h *Host) dropConn() {
	h.mu.Lock()
	h.conn = nil
	h.mu.Unlock()
}

// Close disconnects the plugin and stops the listener.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		close(h.closed)
		h.mu.Lock()
		conn := h.conn
		h.conn = nil
		h.mu.Unlock()
		if conn != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = h.server.Shutdown(ctx)
	})
}
