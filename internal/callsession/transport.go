package callsession

import "context"

// AssistantPersona describes a transient assistant defined inline on call
// start, as opposed to one pre-provisioned on the transport side.
type AssistantPersona struct {
	Name         string
	FirstMessage string
	SystemPrompt string
}

// StartConfig is what a session hands the transport when establishing a
// call. Exactly one of UseAssistant/Persona is set: generate sessions use
// the provisioned assistant and workflow, interview sessions define the
// interviewer persona inline.
type StartConfig struct {
	UseAssistant bool
	Persona      *AssistantPersona
	Variables    map[string]string
}

// Transport is the voice call collaborator. It delivers events back through
// the session webhook; Start returning nil only means the call was accepted,
// not that it is live — the call-start event advances the session.
type Transport interface {
	Start(ctx context.Context, cfg StartConfig) error
	Stop(ctx context.Context) error
}

// TransportFactory builds one transport per session, so each session can
// track and stop its own remote call.
type TransportFactory func() Transport

// FeedbackDeriver turns a finished interview transcript into a persisted
// feedback record and returns its id.
type FeedbackDeriver interface {
	DeriveFeedback(ctx context.Context, interviewID, userID string, transcript []TranscriptTurn) (string, error)
}
