package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aelexs/watchface/internal/config"
	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/errmap"
	"github.com/aelexs/watchface/internal/observability"
	"github.com/aelexs/watchface/internal/render/svg"
	"github.com/aelexs/watchface/internal/watchface"
	"github.com/aelexs/watchface/pkg/protocol"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// retryAfter is sent with 429 and 503 responses, in seconds.
const retryAfter = "1"

// HandlerParams wires the HTTP routes.
type HandlerParams struct {
	Name    string
	Server  config.ServerConfig
	Face    config.FaceConfig
	Clock   domain.Clock
	Logger  *slog.Logger
	Metrics *observability.WidgetMetrics
	Tracer  trace.Tracer

	// ShuttingDown makes /healthz report 503. May be nil.
	ShuttingDown *atomic.Bool
}

// Handler serves the face routes.
type Handler struct {
	p        HandlerParams
	mux      *http.ServeMux
	upgrader websocket.Upgrader

	active  atomic.Int64
	streams sync.WaitGroup
}

// NewHandler builds the route table.
func NewHandler(p HandlerParams) *Handler {
	if p.Clock == nil {
		p.Clock = domain.RealClock{}
	}
	if p.Logger == nil {
		p.Logger = observability.Discard()
	}
	if p.Tracer == nil {
		p.Tracer = observability.Tracer("watchface/server")
	}
	if p.ShuttingDown == nil {
		p.ShuttingDown = &atomic.Bool{}
	}
	if p.Server.MaxWidgets <= 0 {
		p.Server.MaxWidgets = domain.MaxMountedWidgets
	}

	h := &Handler{p: p, mux: http.NewServeMux()}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}

	h.mux.HandleFunc("GET /healthz", h.health)
	h.mux.HandleFunc("GET /presets", h.presets)
	h.mux.HandleFunc("GET /face.svg", h.faceSVG)
	h.mux.HandleFunc("GET /face.json", h.faceJSON)
	h.mux.HandleFunc("GET /ws", h.stream)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Wait blocks until every stream has ended.
func (h *Handler) Wait() {
	h.streams.Wait()
}

// Active returns the number of open streams.
func (h *Handler) Active() int {
	return int(h.active.Load())
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.p.ShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"status":"shutting_down","service":%q}`, h.p.Name)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":%q,"widgets":%d}`, h.p.Name, h.Active())
}

func (h *Handler) presets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, map[string][]string{"presets": watchface.PresetNames()})
}

func (h *Handler) faceSVG(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.p.Tracer.Start(r.Context(), "render face.svg")
	defer span.End()
	r = r.WithContext(ctx)

	frame, face, err := h.render(r)
	if err != nil {
		h.fail(w, r, span, err)
		return
	}
	w.Header().Set("Content-Type", svg.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	if err := svg.Encode(w, frame); err != nil {
		h.logger(r).WarnContext(ctx, "write svg", slog.String("error", err.Error()))
		span.RecordError(err)
		return
	}
	h.p.Metrics.Frame(ctx, face.Style().Name, len(frame.Primitives), false)
}

func (h *Handler) faceJSON(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.p.Tracer.Start(r.Context(), "render face.json")
	defer span.End()
	r = r.WithContext(ctx)

	frame, face, err := h.render(r)
	if err != nil {
		h.fail(w, r, span, err)
		return
	}
	data, err := protocol.Encode(protocol.FrameTypeFrame, protocol.NewFacePayload("", frame))
	if err != nil {
		h.fail(w, r, span, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
	h.p.Metrics.Frame(ctx, face.Style().Name, len(frame.Primitives), false)
}

// render draws the requested face at the host clock's current time.
func (h *Handler) render(r *http.Request) (watchface.Frame, *watchface.Face, error) {
	face, err := h.faceFromQuery(r.URL.Query())
	if err != nil {
		return watchface.Frame{}, nil, err
	}
	s := face.Style()
	observability.AnnotateFace(r.Context(), s.Name, s.Motion.String())
	return face.Frame(watchface.FromWallClock(h.p.Clock.Now(), s.Motion)), face, nil
}

// faceFromQuery applies preset, motion, schedule, width, height and
// density query parameters over the configured face. Choosing a preset
// drops the configured motion and schedule overrides.
func (h *Handler) faceFromQuery(q url.Values) (*watchface.Face, error) {
	fc := h.p.Face
	if v := q.Get("preset"); v != "" {
		fc.Preset, fc.Motion, fc.Schedule = v, "", ""
	}
	if v := q.Get("motion"); v != "" {
		fc.Motion = v
	}
	if v := q.Get("schedule"); v != "" {
		fc.Schedule = v
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"width", &fc.Width}, {"height", &fc.Height}, {"density", &fc.Density}} {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, f.name, v)
		}
		*f.dst = n
	}

	s, err := fc.Style()
	if err != nil {
		return nil, err
	}
	return watchface.NewFace(s, fc.Viewport(), nil)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.p.Server.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.p.Server.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

func (h *Handler) logger(r *http.Request) *slog.Logger {
	return observability.WithTraceID(r.Context(), h.p.Logger)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	h.writeError(w, r, err)
}

// writeError maps err to a status code and a JSON body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	he := errmap.ToHTTPError(err)
	level := slog.LevelWarn
	if he.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger(r).Log(r.Context(), level, "request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", he.StatusCode),
		slog.String("error", err.Error()),
	)

	body, _ := json.Marshal(protocol.Error{Code: he.Code, Message: he.Message})
	w.Header().Set("Content-Type", "application/json")
	if domain.IsRetryable(err) {
		w.Header().Set("Retry-After", retryAfter)
	}
	w.WriteHeader(he.StatusCode)
	_, _ = w.Write(body)
}
