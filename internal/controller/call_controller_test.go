package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tdhoang/mockmate/internal/callsession"
	"github.com/tdhoang/mockmate/internal/dto"
)

func TestToEvent(t *testing.T) {
	t.Run("lifecycle events map directly", func(t *testing.T) {
		cases := map[string]callsession.EventKind{
			"call-start":   callsession.EventCallStart,
			"call-end":     callsession.EventCallEnd,
			"speech-start": callsession.EventSpeechStart,
			"speech-end":   callsession.EventSpeechEnd,
		}
		for event, kind := range cases {
			ev, ok := toEvent(dto.CallEventRequest{Event: event})
			assert.True(t, ok, event)
			assert.Equal(t, kind, ev.Kind)
		}
	})

	t.Run("error events carry the message", func(t *testing.T) {
		ev, ok := toEvent(dto.CallEventRequest{Event: "error", Error: "ejection fault"})
		assert.True(t, ok)
		assert.Equal(t, callsession.EventError, ev.Kind)
		assert.Equal(t, "ejection fault", ev.Err)
	})

	t.Run("final transcripts become transcript events", func(t *testing.T) {
		ev, ok := toEvent(dto.CallEventRequest{
			Event:   "message",
			Message: &dto.CallEventMessage{Type: "transcript", Role: "user", Transcript: "Hello."},
		})
		assert.True(t, ok)
		assert.Equal(t, callsession.EventTranscript, ev.Kind)
		assert.Equal(t, "user", ev.Role)
		assert.Equal(t, "Hello.", ev.Text)
	})

	t.Run("non-transcript messages are ignored", func(t *testing.T) {
		_, ok := toEvent(dto.CallEventRequest{
			Event:   "message",
			Message: &dto.CallEventMessage{Type: "model-output"},
		})
		assert.False(t, ok)

		_, ok = toEvent(dto.CallEventRequest{Event: "message"})
		assert.False(t, ok)
	})
}
