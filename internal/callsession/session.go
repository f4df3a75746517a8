package callsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const eventBuffer = 128

var ErrCallInProgress = errors.New("call already in progress")

// Params fixes the identity of one call session for its whole lifetime.
type Params struct {
	Type        SessionType
	InterviewID string
	UserID      string
	UserName    string
	Questions   []string
}

// Session drives a single voice call: inactive -> connecting -> active ->
// finished. Transport events are funneled through a buffered channel into
// one owning goroutine; the terminal side effect (feedback derivation or
// plain navigation) fires exactly once no matter how many termination
// signals race in.
type Session struct {
	ID     string
	params Params

	transport     Transport
	deriver       FeedbackDeriver
	deriveTimeout time.Duration

	mu             sync.Mutex
	status         Status
	transcript     []TranscriptTurn
	remoteSpeaking bool
	finished       bool
	redirect       string
	lastActivity   time.Time

	events     chan Event
	done       chan struct{} // closed on the terminal transition
	effectDone chan struct{} // closed once the terminal side effect ran
	closeOnce  sync.Once
}

func newSession(id string, p Params, transport Transport, deriver FeedbackDeriver, deriveTimeout time.Duration) *Session {
	return &Session{
		ID:            id,
		params:        p,
		transport:     transport,
		deriver:       deriver,
		deriveTimeout: deriveTimeout,
		status:        StatusInactive,
		lastActivity:  time.Now(),
		events:        make(chan Event, eventBuffer),
		done:          make(chan struct{}),
		effectDone:    make(chan struct{}),
	}
}

// Start moves the session to connecting and asks the transport to establish
// the call. Valid from inactive and from finished (a retake resets the
// session); rejected while a call is connecting or active. The transport's
// call-start event, not Start returning, is what makes the session active.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.status {
	case StatusConnecting, StatusActive:
		s.mu.Unlock()
		return ErrCallInProgress
	case StatusFinished:
		s.transcript = nil
		s.remoteSpeaking = false
		s.finished = false
		s.redirect = ""
		s.events = make(chan Event, eventBuffer)
		s.done = make(chan struct{})
		s.effectDone = make(chan struct{})
		s.closeOnce = sync.Once{}
	}
	s.status = StatusConnecting
	s.lastActivity = time.Now()
	events, done := s.events, s.done
	s.mu.Unlock()

	if err := s.transport.Start(ctx, s.startConfig()); err != nil {
		s.mu.Lock()
		s.status = StatusInactive
		s.mu.Unlock()
		return fmt.Errorf("starting call transport: %w", err)
	}

	go s.run(events, done)
	return nil
}

// Dispatch hands a transport event to the session. Events arriving after
// the terminal transition are dropped. The channel fields are reassigned on
// a retake, so they are copied out under the lock before use.
func (s *Session) Dispatch(ev Event) {
	s.mu.Lock()
	events, done := s.events, s.done
	s.mu.Unlock()

	select {
	case <-done:
		return
	default:
	}
	select {
	case events <- ev:
	default:
		log.Warn().Str("sessionID", s.ID).Str("event", string(ev.Kind)).Msg("Call event buffer full, dropping event")
	}
}

// End force-terminates the call. It is idempotent and safe to race against
// the transport's own call-end event: the terminal latch guarantees a
// single finish.
func (s *Session) End(ctx context.Context) {
	if err := s.transport.Stop(ctx); err != nil {
		log.Warn().Err(err).Str("sessionID", s.ID).Msg("Transport stop failed")
	}
	s.apply(Event{Kind: EventCallEnd})
}

// Done is closed once the session has taken its terminal transition.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Finished is closed once the terminal side effect has completed and the
// redirect target is known.
func (s *Session) Finished() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectDone
}

// LastActivity reports when the session last saw a start, an event or a
// state poll. The registry reaps sessions idle past its TTL.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

type Snapshot struct {
	Status          Status
	RemoteSpeaking  bool
	LatestMessage   string
	TranscriptTurns int
	Redirect        string
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
	snap := Snapshot{
		Status:          s.status,
		RemoteSpeaking:  s.remoteSpeaking,
		TranscriptTurns: len(s.transcript),
		Redirect:        s.redirect,
	}
	if n := len(s.transcript); n > 0 {
		snap.LatestMessage = s.transcript[n-1].Text
	}
	return snap
}

func (s *Session) Transcript() []TranscriptTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TranscriptTurn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// run owns the event loop for one call. It receives the channels of its own
// run so a goroutine left over from a previous take never consumes from the
// retake's channels.
func (s *Session) run(events chan Event, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev := <-events:
			s.apply(ev)
		}
	}
}

func (s *Session) apply(ev Event) {
	s.mu.Lock()
	s.lastActivity = time.Now()
	switch ev.Kind {
	case EventCallStart:
		if s.status == StatusConnecting {
			s.status = StatusActive
			s.remoteSpeaking = true
		}
	case EventTranscript:
		if !s.finished {
			s.transcript = append(s.transcript, TranscriptTurn{
				Role:      ev.Role,
				Text:      ev.Text,
				Timestamp: time.Now(),
			})
		}
	case EventSpeechStart:
		s.remoteSpeaking = true
	case EventSpeechEnd:
		s.remoteSpeaking = false
	case EventError:
		log.Error().Str("sessionID", s.ID).Str("error", ev.Err).Msg("Error during call")
	case EventCallEnd:
		if s.finished {
			break
		}
		s.finished = true
		s.status = StatusFinished
		s.remoteSpeaking = false
		transcript := make([]TranscriptTurn, len(s.transcript))
		copy(transcript, s.transcript)
		done := s.done
		s.closeOnce.Do(func() { close(done) })
		go s.terminalEffect(transcript, s.effectDone)
	}
	s.mu.Unlock()
}

// terminalEffect runs once per call. Generate sessions just return home;
// interview sessions hand the transcript to the feedback deriver and route
// to the feedback view on success, home on failure.
func (s *Session) terminalEffect(transcript []TranscriptTurn, effectDone chan struct{}) {
	defer close(effectDone)

	redirect := "/"
	if s.params.Type == TypeInterview {
		ctx, cancel := context.WithTimeout(context.Background(), s.deriveTimeout)
		defer cancel()

		feedbackID, err := s.deriver.DeriveFeedback(ctx, s.params.InterviewID, s.params.UserID, transcript)
		if err != nil {
			log.Error().Err(err).Str("sessionID", s.ID).Str("interviewID", s.params.InterviewID).Msg("Feedback derivation failed")
		} else {
			log.Info().Str("sessionID", s.ID).Str("feedbackID", feedbackID).Msg("Feedback derived for finished call")
			redirect = fmt.Sprintf("/interview/%s/feedback", s.params.InterviewID)
		}
	}

	s.mu.Lock()
	// A retake may have reset the session while the effect ran; its redirect
	// belongs to the finished run only.
	if s.finished {
		s.redirect = redirect
	}
	s.mu.Unlock()
}

func (s *Session) startConfig() StartConfig {
	if s.params.Type == TypeGenerate {
		return StartConfig{
			UseAssistant: true,
			Variables: map[string]string{
				"username": s.params.UserName,
				"userid":   s.params.UserID,
			},
		}
	}
	return StartConfig{
		Persona: &interviewerPersona,
		Variables: map[string]string{
			"questions": formatQuestions(s.params.Questions),
		},
	}
}

// formatQuestions renders the question list as the newline-joined,
// dash-prefixed block the interviewer prompt expects.
func formatQuestions(questions []string) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		lines = append(lines, "-"+q)
	}
	return strings.Join(lines, "\n")
}
