package dto

import "time"

// StartCallRequest opens a new call session. Type "generate" runs the
// interview-generation assistant; type "interview" runs the interviewer
// persona over an existing interview's questions.
type StartCallRequest struct {
	Type        string `json:"type" binding:"required,oneof=generate interview"`
	InterviewID string `json:"interview_id"`
}

type StartCallResponse struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
}

// CallEventRequest is the webhook payload the voice transport posts for
// every event of an ongoing call. Only "message" events with a transcript
// discriminator carry the role/transcript pair.
type CallEventRequest struct {
	Event   string            `json:"event" binding:"required,oneof=call-start call-end message speech-start speech-end error"`
	Message *CallEventMessage `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type CallEventMessage struct {
	Type       string `json:"type"`
	Role       string `json:"role"`
	Transcript string `json:"transcript"`
}

type TranscriptTurnDTO struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type CallStateResponse struct {
	CallID          string `json:"call_id"`
	Status          string `json:"status"`
	RemoteSpeaking  bool   `json:"remote_speaking"`
	LatestMessage   string `json:"latest_message,omitempty"`
	TranscriptTurns int    `json:"transcript_turns"`
	// Redirect is set once the session is finished: the feedback view on a
	// successful derivation, the home view otherwise.
	Redirect string `json:"redirect,omitempty"`
}
