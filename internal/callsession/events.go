package callsession

import "time"

type Status string

const (
	StatusInactive   Status = "inactive"
	StatusConnecting Status = "connecting"
	StatusActive     Status = "active"
	StatusFinished   Status = "finished"
)

type SessionType string

const (
	// TypeGenerate runs the interview-generation assistant; no feedback is
	// derived when it ends.
	TypeGenerate SessionType = "generate"
	// TypeInterview runs the interviewer persona over a prepared question
	// list; its transcript is scored when the call ends.
	TypeInterview SessionType = "interview"
)

type EventKind string

const (
	EventCallStart   EventKind = "call-start"
	EventCallEnd     EventKind = "call-end"
	EventTranscript  EventKind = "transcript"
	EventSpeechStart EventKind = "speech-start"
	EventSpeechEnd   EventKind = "speech-end"
	EventError       EventKind = "error"
)

// Event is one typed transport notification. Role and Text are only set for
// EventTranscript, Err only for EventError.
type Event struct {
	Kind EventKind
	Role string
	Text string
	Err  string
}

// TranscriptTurn is one utterance of the call, in arrival order.
type TranscriptTurn struct {
	Role      string
	Text      string
	Timestamp time.Time
}
