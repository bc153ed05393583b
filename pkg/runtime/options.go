// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package runtime

import (
	"log/slog"
	"time"

	"github.com/tilekit/tilekit/pkg/bus"
)

const (
	// DefaultQuietInterval is the loop's idle turn period: debounce
	// deadlines and pending sends are re-checked at least this often.
	DefaultQuietInterval = 100 * time.Millisecond

	// DefaultSendBurst caps how many queued commands one loop turn writes
	// to the socket before going back to the queue.
	DefaultSendBurst = 8

	// DefaultDialAttempts is how many connection retries follow the first
	// failed dial.
	DefaultDialAttempts = 5
)

// Options tune the runtime. Construct through Option funcs.
type Options struct {
	logger        *slog.Logger
	queueCapacity int
	inboxCapacity int
	debounce      time.Duration
	quiet         time.Duration
	sendBurst     int
	dialAttempts  uint64
	url           string
	metricsAddr   string
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		queueCapacity: bus.DefaultQueueCapacity,
		inboxCapacity: DefaultInboxCapacity,
		debounce:      DefaultStopDebounce,
		quiet:         DefaultQuietInterval,
		sendBurst:     DefaultSendBurst,
		dialAttempts:  DefaultDialAttempts,
	}
}

// WithLogger sets the runtime logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithQueueCapacity sets the loop queue depth.
func WithQueueCapacity(n int) Option {
	return func(o *Options) { o.queueCapacity = n }
}

// WithInboxCapacity sets the per-adapter inbox depth.
func WithInboxCapacity(n int) Option {
	return func(o *Options) { o.inboxCapacity = n }
}

// WithStopDebounce sets how long the last monitored application must stay
// closed before on-app-launch adapters stop.
func WithStopDebounce(d time.Duration) Option {
	return func(o *Options) { o.debounce = d }
}

// WithQuietInterval sets the loop's idle turn period.
func WithQuietInterval(d time.Duration) Option {
	return func(o *Options) { o.quiet = d }
}

// WithSendBurst caps commands written per loop turn.
func WithSendBurst(n int) Option {
	return func(o *Options) { o.sendBurst = n }
}

// WithDialAttempts sets how many retries follow a failed dial.
func WithDialAttempts(n uint64) Option {
	return func(o *Options) { o.dialAttempts = n }
}

// WithURL overrides the websocket endpoint derived from the launch
// arguments. Mainly for tests against a mock host.
func WithURL(url string) Option {
	return func(o *Options) { o.url = url }
}

// WithMetricsAddr enables the observability HTTP server on addr
// ("127.0.0.1:9201" or ":9201"). Empty disables it.
func WithMetricsAddr(addr string) Option {
	return func(o *Options) { o.metricsAddr = addr }
}
