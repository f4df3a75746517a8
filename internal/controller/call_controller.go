package controller

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/internal/callsession"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/middleware"
	"github.com/tdhoang/mockmate/internal/service"
)

// webhookSecretHeader carries the shared secret the voice transport echoes
// back on every webhook delivery.
const webhookSecretHeader = "X-Vapi-Secret"

type CallController struct {
	registry         *callsession.Registry
	interviewService service.InterviewService
	cfg              *config.Config
}

func NewCallController(registry *callsession.Registry, interviewService service.InterviewService, cfg *config.Config) *CallController {
	return &CallController{registry: registry, interviewService: interviewService, cfg: cfg}
}

// Start opens a call session and asks the transport to establish the call.
// The response status is "connecting"; the transport's call-start webhook is
// what moves the session to active.
func (c *CallController) Start(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	var req dto.StartCallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	params := callsession.Params{
		Type:     callsession.SessionType(req.Type),
		UserID:   user.ID,
		UserName: user.Name,
	}

	if params.Type == callsession.TypeInterview {
		if req.InterviewID == "" {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "interview_id is required for interview calls"})
			return
		}
		interview, err := c.interviewService.GetByID(ctx.Request.Context(), req.InterviewID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Interview not found"})
				return
			}
			log.Error().Err(err).Str("interviewID", req.InterviewID).Msg("Start: failed to load interview")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to start call"})
			return
		}
		params.InterviewID = interview.ID
		params.Questions = interview.Questions
	}

	session := c.registry.Create(params)
	if err := session.Start(ctx.Request.Context()); err != nil {
		c.registry.Remove(session.ID)
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Start: transport failed to establish call")
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Failed to start call"})
		return
	}

	ctx.JSON(http.StatusCreated, dto.StartCallResponse{
		CallID: session.ID,
		Status: string(callsession.StatusConnecting),
	})
}

// Events is the transport webhook. It authenticates via the shared secret
// header when one is configured, then feeds the event into the session.
func (c *CallController) Events(ctx *gin.Context) {
	if secret := c.cfg.Vapi.WebhookSecret; secret != "" {
		provided := ctx.GetHeader(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid webhook secret"})
			return
		}
	}

	session, ok := c.registry.Get(ctx.Param("call_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Call not found"})
		return
	}

	var req dto.CallEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid event payload", Details: []string{err.Error()}})
		return
	}

	ev, ok := toEvent(req)
	if !ok {
		// Partial transcripts and model status messages are not tracked.
		ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Event ignored"})
		return
	}

	session.Dispatch(ev)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Event accepted"})
}

// Stop force-terminates a call. Safe to call concurrently with the
// transport's own call-end webhook; the session finishes exactly once.
func (c *CallController) Stop(ctx *gin.Context) {
	session, ok := c.registry.Get(ctx.Param("call_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Call not found"})
		return
	}

	session.End(ctx.Request.Context())
	ctx.JSON(http.StatusOK, c.stateResponse(session))
}

// Get returns a snapshot of the session for polling clients. Once the
// terminal redirect has been handed out the session is discarded.
func (c *CallController) Get(ctx *gin.Context) {
	session, ok := c.registry.Get(ctx.Param("call_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Call not found"})
		return
	}

	resp := c.stateResponse(session)
	if resp.Redirect != "" {
		c.registry.Remove(session.ID)
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *CallController) stateResponse(session *callsession.Session) dto.CallStateResponse {
	snap := session.Snapshot()
	return dto.CallStateResponse{
		CallID:          session.ID,
		Status:          string(snap.Status),
		RemoteSpeaking:  snap.RemoteSpeaking,
		LatestMessage:   snap.LatestMessage,
		TranscriptTurns: snap.TranscriptTurns,
		Redirect:        snap.Redirect,
	}
}

// toEvent maps a webhook payload to a session event. Message events that are
// not final transcripts are dropped.
func toEvent(req dto.CallEventRequest) (callsession.Event, bool) {
	switch req.Event {
	case "call-start":
		return callsession.Event{Kind: callsession.EventCallStart}, true
	case "call-end":
		return callsession.Event{Kind: callsession.EventCallEnd}, true
	case "speech-start":
		return callsession.Event{Kind: callsession.EventSpeechStart}, true
	case "speech-end":
		return callsession.Event{Kind: callsession.EventSpeechEnd}, true
	case "error":
		return callsession.Event{Kind: callsession.EventError, Err: req.Error}, true
	case "message":
		if req.Message == nil || req.Message.Type != "transcript" {
			return callsession.Event{}, false
		}
		return callsession.Event{
			Kind: callsession.EventTranscript,
			Role: req.Message.Role,
			Text: req.Message.Transcript,
		}, true
	}
	return callsession.Event{}, false
}
