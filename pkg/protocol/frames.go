// Package protocol defines the JSON frames streamed to face subscribers.
// The same frame types carry one-shot renders over HTTP and the per-tick
// stream over WebSocket.
package protocol

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/aelexs/watchface/internal/watchface"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FrameType identifies the type of a frame.
type FrameType string

const (
	// Widget lifecycle
	FrameTypeMount   FrameType = "mount"
	FrameTypeUnmount FrameType = "unmount"

	// One rendered tick
	FrameTypeFrame FrameType = "frame"

	// Errors
	FrameTypeError FrameType = "error"
)

// Frame is the envelope for every message.
type Frame struct {
	Type    FrameType           `json:"type"`
	Payload jsoniter.RawMessage `json:"payload,omitempty"`
}

// Mount is sent once when a widget starts streaming.
type Mount struct {
	WidgetID       string             `json:"widget_id"`
	Preset         string             `json:"preset"`
	Motion         string             `json:"motion"`
	Schedule       string             `json:"schedule"`
	TickIntervalMs int64              `json:"tick_interval_ms"`
	Viewport       watchface.Viewport `json:"viewport"`
}

// FacePayload is one rendered tick.
type FacePayload struct {
	WidgetID   string                `json:"widget_id,omitempty"`
	Time       watchface.ClockTime   `json:"time"`
	Display    string                `json:"display"`
	Viewport   watchface.Viewport    `json:"viewport"`
	Background watchface.Color       `json:"background"`
	Primitives []watchface.Primitive `json:"primitives"`
}

// NewFacePayload wraps a rendered frame for widget id (empty for one-shot
// renders).
func NewFacePayload(id string, f watchface.Frame) FacePayload {
	return FacePayload{
		WidgetID:   id,
		Time:       f.Time,
		Display:    f.Time.String(),
		Viewport:   f.Viewport,
		Background: f.Background,
		Primitives: f.Primitives,
	}
}

// Unmount is sent before the stream closes.
type Unmount struct {
	WidgetID string `json:"widget_id"`
	Reason   string `json:"reason"`
	Code     int    `json:"code"`
}

// Error reports a failure to the client.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// NewFrame creates a Frame with the given type and payload.
func NewFrame(frameType FrameType, payload any) (*Frame, error) {
	var payloadBytes jsoniter.RawMessage
	if payload != nil {
		var err error
		payloadBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return &Frame{
		Type:    frameType,
		Payload: payloadBytes,
	}, nil
}

// Encode marshals a frame of the given type in one step.
func Encode(frameType FrameType, payload any) ([]byte, error) {
	f, err := NewFrame(frameType, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(f)
}

// Decode unmarshals an envelope. The payload stays raw until ParsePayload.
func Decode(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParsePayload unmarshals the frame payload into the given struct.
func (f *Frame) ParsePayload(v any) error {
	if f.Payload == nil {
		return nil
	}
	return json.Unmarshal(f.Payload, v)
}
