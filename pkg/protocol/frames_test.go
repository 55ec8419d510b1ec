package protocol_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/watchface/internal/watchface"
	"github.com/aelexs/watchface/pkg/protocol"
)

func TestNewFrame_AllTypes(t *testing.T) {
	tests := []struct {
		name      string
		frameType protocol.FrameType
		payload   any
	}{
		{name: "Mount", frameType: protocol.FrameTypeMount, payload: protocol.Mount{WidgetID: "w-1", Preset: "strap", TickIntervalMs: 1000}},
		{name: "Frame", frameType: protocol.FrameTypeFrame, payload: protocol.FacePayload{WidgetID: "w-1"}},
		{name: "Unmount", frameType: protocol.FrameTypeUnmount, payload: protocol.Unmount{WidgetID: "w-1", Reason: "going away", Code: 1001}},
		{name: "Error", frameType: protocol.FrameTypeError, payload: protocol.Error{Code: "INVALID_INPUT", Message: "bad request"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := protocol.NewFrame(tt.frameType, tt.payload)

			require.NoError(t, err)
			assert.Equal(t, tt.frameType, frame.Type)
			assert.NotNil(t, frame.Payload)
		})
	}
}

func TestNewFrame_NilPayload(t *testing.T) {
	frame, err := protocol.NewFrame(protocol.FrameTypeUnmount, nil)

	require.NoError(t, err)
	assert.Equal(t, protocol.FrameTypeUnmount, frame.Type)
	assert.Nil(t, frame.Payload)
}

func TestParsePayload_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		frameType protocol.FrameType
		payload   any
		target    any
		assert    func(t *testing.T, target any)
	}{
		{
			name:      "Mount",
			frameType: protocol.FrameTypeMount,
			payload: protocol.Mount{
				WidgetID: "w-1", Preset: "classic", Motion: "step", Schedule: "per-field",
				TickIntervalMs: 1000, Viewport: watchface.Viewport{Width: 320, Height: 240},
			},
			target: &protocol.Mount{},
			assert: func(t *testing.T, target any) {
				t.Helper()
				got := target.(*protocol.Mount)
				assert.Equal(t, "w-1", got.WidgetID)
				assert.Equal(t, "classic", got.Preset)
				assert.Equal(t, "step", got.Motion)
				assert.Equal(t, "per-field", got.Schedule)
				assert.Equal(t, int64(1000), got.TickIntervalMs)
				assert.Equal(t, watchface.Viewport{Width: 320, Height: 240}, got.Viewport)
			},
		},
		{
			name:      "Unmount",
			frameType: protocol.FrameTypeUnmount,
			payload:   protocol.Unmount{WidgetID: "w-1", Reason: "going away", Code: 1001},
			target:    &protocol.Unmount{},
			assert: func(t *testing.T, target any) {
				t.Helper()
				got := target.(*protocol.Unmount)
				assert.Equal(t, "w-1", got.WidgetID)
				assert.Equal(t, "going away", got.Reason)
				assert.Equal(t, 1001, got.Code)
			},
		},
		{
			name:      "Error",
			frameType: protocol.FrameTypeError,
			payload:   protocol.Error{Code: "INVALID_INPUT", Message: "bad request", Details: map[string]string{"field": "width"}},
			target:    &protocol.Error{},
			assert: func(t *testing.T, target any) {
				t.Helper()
				got := target.(*protocol.Error)
				assert.Equal(t, "INVALID_INPUT", got.Code)
				assert.Equal(t, "bad request", got.Message)
				assert.Equal(t, "width", got.Details["field"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := protocol.Encode(tt.frameType, tt.payload)
			require.NoError(t, err)

			decoded, err := protocol.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.frameType, decoded.Type)

			err = decoded.ParsePayload(tt.target)
			require.NoError(t, err)

			tt.assert(t, tt.target)
		})
	}
}

func TestFacePayload_CarriesRenderedFrame(t *testing.T) {
	face, err := watchface.NewFace(watchface.Strap(), watchface.Viewport{Width: 480, Height: 480}, nil)
	require.NoError(t, err)
	frame := face.Frame(watchface.FromHMS(3, 0, 0, watchface.MotionSweep))

	data, err := protocol.Encode(protocol.FrameTypeFrame, protocol.NewFacePayload("w-1", frame))
	require.NoError(t, err)

	decoded, err := protocol.Decode(data)
	require.NoError(t, err)
	var got protocol.FacePayload
	require.NoError(t, decoded.ParsePayload(&got))

	assert.Equal(t, "w-1", got.WidgetID)
	assert.Equal(t, "03:00:00", got.Display)
	assert.Equal(t, frame.Viewport, got.Viewport)
	assert.Equal(t, watchface.Paper, got.Background)
	require.Len(t, got.Primitives, len(frame.Primitives))
	for i := range frame.Primitives {
		assert.Equal(t, frame.Primitives[i].Kind, got.Primitives[i].Kind, "primitive %d", i)
		assert.Equal(t, frame.Primitives[i].Layer, got.Primitives[i].Layer, "primitive %d", i)
		assert.Equal(t, frame.Primitives[i].Color, got.Primitives[i].Color, "primitive %d", i)
	}
}

func TestParsePayload_NilPayload(t *testing.T) {
	frame := &protocol.Frame{Type: protocol.FrameTypeUnmount, Payload: nil}
	var target protocol.Unmount

	err := frame.ParsePayload(&target)

	require.NoError(t, err)
	assert.Equal(t, protocol.Unmount{}, target)
}

func TestNewFrame_UnmarshalablePayload(t *testing.T) {
	// Channels cannot be marshaled to JSON
	ch := make(chan int)

	_, err := protocol.NewFrame(protocol.FrameTypeError, ch)

	require.Error(t, err)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := protocol.Decode([]byte(`{"type":`))

	require.Error(t, err)
}

func TestFrameJSONStructure(t *testing.T) {
	data, err := protocol.Encode(protocol.FrameTypeMount, protocol.Mount{WidgetID: "w-1"})
	require.NoError(t, err)

	var raw map[string]jsoniter.RawMessage
	err = jsoniter.Unmarshal(data, &raw)
	require.NoError(t, err)

	assert.Contains(t, raw, "type")
	assert.Contains(t, raw, "payload")
	assert.JSONEq(t, `"mount"`, string(raw["type"]))
}
