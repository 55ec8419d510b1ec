package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/errmap"
	"github.com/aelexs/watchface/internal/watchface"
	"github.com/aelexs/watchface/internal/widget"
	"github.com/aelexs/watchface/pkg/protocol"
)

// errClientGone ends a stream whose peer closed or stopped answering.
var errClientGone = errors.New("client disconnected")

// pingPeriod keeps idle streams inside the pong timeout.
const pingPeriod = domain.StreamPongTimeout * 9 / 10

// stream mounts one widget per connection and sends a frame per tick.
// The request context ends the stream on server shutdown.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	h.streams.Add(1)
	defer h.streams.Done()

	face, err := h.faceFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if n := h.active.Add(1); n > int64(h.p.Server.MaxWidgets) {
		h.active.Add(-1)
		h.writeError(w, r, fmt.Errorf("%w: %d streams open", domain.ErrTooManyWidgets, n-1))
		return
	}
	defer h.active.Add(-1)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.logger(r).WarnContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	wg := widget.Mount(h.p.Clock, face, widget.Options{
		Logger:   h.p.Logger,
		Metrics:  h.p.Metrics,
		Interval: h.p.Face.TickInterval,
		Align:    h.p.Face.Align,
	})
	sub := wg.Subscribe()
	logger := h.logger(r).With(slog.String("widget_id", wg.ID()))

	if err := greet(conn, wg); err != nil {
		logger.WarnContext(r.Context(), "stream greeting failed", slog.String("error", err.Error()))
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return wg.Run(ctx) })
	g.Go(func() error { return readPump(ctx, conn) })
	g.Go(func() error { return writePump(ctx, conn, wg.ID(), sub) })
	err = g.Wait()

	if errors.Is(err, errClientGone) {
		logger.InfoContext(r.Context(), "stream closed by client")
		return
	}
	closing := errmap.ToWebSocketClose(err)
	if err == nil {
		closing = errmap.CloseServerShutdown
	} else {
		logger.WarnContext(r.Context(), "stream failed", slog.String("error", err.Error()))
	}
	sayGoodbye(conn, wg.ID(), closing)
}

// readPump discards client messages and reports when the peer goes away.
func readPump(ctx context.Context, conn *websocket.Conn) error {
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	_ = conn.SetReadDeadline(time.Now().Add(domain.StreamPongTimeout))
	conn.SetPongHandler(func(string) error {
		if ctx.Err() != nil {
			return nil
		}
		return conn.SetReadDeadline(time.Now().Add(domain.StreamPongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %w", errClientGone, err)
		}
	}
}

// greet sends the mount message and the mount-time frame before the
// widget starts ticking.
func greet(conn *websocket.Conn, wg *widget.Widget) error {
	s := wg.Face().Style()
	mount := protocol.Mount{
		WidgetID:       wg.ID(),
		Preset:         s.Name,
		Motion:         s.Motion.String(),
		Schedule:       s.Schedule.String(),
		TickIntervalMs: wg.Interval().Milliseconds(),
		Viewport:       wg.Face().Geometry().Viewport,
	}
	if err := send(conn, protocol.FrameTypeMount, mount); err != nil {
		return err
	}
	return sendFrame(conn, wg.ID(), wg.Current())
}

// writePump owns all writes until ctx ends: one frame per published tick
// plus keepalive pings.
func writePump(ctx context.Context, conn *websocket.Conn, id string, sub *widget.Subscription) error {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-sub.Frames():
			if !ok {
				return nil
			}
			if err := sendFrame(conn, id, f); err != nil {
				return err
			}
		case <-ping.C:
			deadline := time.Now().Add(domain.FrameWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return fmt.Errorf("%w: %w", errClientGone, err)
			}
		}
	}
}

func sendFrame(conn *websocket.Conn, id string, f watchface.Frame) error {
	return send(conn, protocol.FrameTypeFrame, protocol.NewFacePayload(id, f))
}

func send(conn *websocket.Conn, t protocol.FrameType, payload any) error {
	data, err := protocol.Encode(t, payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t, err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(domain.FrameWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("%w: %w", domain.ErrSlowConsumer, err)
		}
		return fmt.Errorf("%w: %w", errClientGone, err)
	}
	return nil
}

// sayGoodbye sends the unmount message and a close frame. Errors are
// ignored: the connection is closing either way.
func sayGoodbye(conn *websocket.Conn, id string, c errmap.WebSocketClose) {
	_ = send(conn, protocol.FrameTypeUnmount, protocol.Unmount{WidgetID: id, Reason: c.Reason, Code: c.Code})
	deadline := time.Now().Add(domain.FrameWriteTimeout)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(c.Code, c.Reason), deadline)
}
