package domain

import "time"

// Compiled defaults. Most can be overridden via configuration.
const (
	// Tick intervals of the periodic update. The earliest face iteration
	// advanced each field on its own timer; later ones only use TickInterval.
	TickInterval   = 1 * time.Second
	MinuteInterval = 60 * TickInterval
	HourInterval   = 60 * MinuteInterval

	// Viewport limits
	DefaultViewportWidth  = 480
	DefaultViewportHeight = 480
	MaxViewportDimension  = 8192

	// Widget limits
	MaxMountedWidgets = 256 // Concurrent /ws streams per server
	FrameBufferSize   = 1   // Frames buffered per subscriber; older frames are dropped

	// Stream timeouts
	FrameWriteTimeout = 5 * time.Second
	StreamPongTimeout = 60 * time.Second

	// HTTP server timeouts
	HTTPReadTimeout  = 10 * time.Second
	HTTPWriteTimeout = 10 * time.Second
	HTTPIdleTimeout  = 60 * time.Second

	// Graceful shutdown
	GracefulShutdownTimeout = 30 * time.Second
	ShutdownDrainDelay      = 200 * time.Millisecond // Health checks report 503 before the listener closes
	ShutdownHTTPTimeout     = 10 * time.Second
	ShutdownOTELTimeout     = 5 * time.Second
)

// Service metadata.
const (
	ServiceName    = "watchface"
	ServiceVersion = "0.1.0"
)
