package errmap

import (
	"errors"

	"github.com/aelexs/watchface/internal/domain"
)

// WebSocket close codes per RFC 6455.
// Standard codes: https://datatracker.ietf.org/doc/html/rfc6455#section-7.4
// Application-specific codes use the 4000-4999 range.
const (
	// Standard codes (RFC 6455)
	CloseNormalClosure   = 1000
	CloseGoingAway       = 1001
	CloseProtocolError   = 1002
	ClosePolicyViolation = 1008
	CloseInternalError   = 1011
	CloseServiceRestart  = 1012
	CloseTryAgainLater   = 1013

	// Application-specific codes (4000-4999)
	CloseInvalidRequest = 4000
	CloseUnknownPreset  = 4004
	CloseSlowConsumer   = 4029
)

// WebSocketClose represents a close code and reason for WebSocket termination.
type WebSocketClose struct {
	Code   int
	Reason string
}

// ToWebSocketClose converts a domain error to a WebSocket close code and reason.
func ToWebSocketClose(err error) WebSocketClose {
	if err == nil {
		return WebSocketClose{Code: CloseNormalClosure, Reason: "normal_closure"}
	}

	switch {
	case errors.Is(err, domain.ErrUnknownPreset):
		return WebSocketClose{Code: CloseUnknownPreset, Reason: "unknown_preset"}

	case errors.Is(err, domain.ErrInvalidViewport):
		return WebSocketClose{Code: CloseInvalidRequest, Reason: "invalid_viewport"}

	case domain.IsClientError(err):
		return WebSocketClose{Code: CloseInvalidRequest, Reason: "invalid_request"}

	case errors.Is(err, domain.ErrSlowConsumer):
		return WebSocketClose{Code: CloseSlowConsumer, Reason: "slow_consumer"}

	case errors.Is(err, domain.ErrTooManyWidgets):
		return WebSocketClose{Code: CloseTryAgainLater, Reason: "too_many_widgets"}

	case errors.Is(err, domain.ErrUnavailable):
		return WebSocketClose{Code: CloseTryAgainLater, Reason: "service_unavailable"}

	default:
		return WebSocketClose{Code: CloseInternalError, Reason: "internal_error"}
	}
}

// Common close reasons for special cases not directly mapped to domain errors.
var (
	CloseServerShutdown    = WebSocketClose{Code: CloseGoingAway, Reason: "server_shutdown"}
	CloseProtocolViolation = WebSocketClose{Code: CloseProtocolError, Reason: "protocol_error"}
)
