package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/internal/callsession"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/model"
	"github.com/tdhoang/mockmate/internal/repository"
	"gorm.io/gorm"
)

type FeedbackService interface {
	// DeriveFeedback scores a finished interview transcript and upserts the
	// feedback row for (interviewID, userID). Retakes overwrite, never
	// duplicate. Returns the id of the surviving row.
	DeriveFeedback(ctx context.Context, interviewID, userID string, transcript []callsession.TranscriptTurn) (string, error)
	GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	scorer       TranscriptScorer
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, scorer TranscriptScorer) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, scorer: scorer}
}

func (s *feedbackService) DeriveFeedback(ctx context.Context, interviewID, userID string, transcript []callsession.TranscriptTurn) (string, error) {
	formatted := formatTranscript(transcript)

	scored, err := s.scorer.ScoreTranscript(ctx, formatted)
	if err != nil {
		log.Error().Err(err).Str("interviewID", interviewID).Str("userID", userID).Msg("DeriveFeedback: scoring failed")
		return "", fmt.Errorf("scoring transcript: %w", err)
	}

	feedback := &model.Feedback{
		InterviewID:         interviewID,
		UserID:              userID,
		TotalScore:          scored.TotalScore,
		CategoryScores:      scored.CategoryScores,
		Strengths:           scored.Strengths,
		AreasForImprovement: scored.AreasForImprovement,
		FinalAssessment:     scored.FinalAssessment,
	}

	persisted, err := s.feedbackRepo.Upsert(feedback)
	if err != nil {
		log.Error().Err(err).Str("interviewID", interviewID).Str("userID", userID).Msg("DeriveFeedback: upsert failed")
		return "", fmt.Errorf("persisting feedback: %w", err)
	}
	return persisted.ID, nil
}

func (s *feedbackService) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*dto.FeedbackResponse, error) {
	feedback, err := s.feedbackRepo.FindByInterviewAndUser(interviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedback for interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching feedback: %w", err)
	}

	var resp dto.FeedbackResponse
	if err := copier.Copy(&resp, feedback); err != nil {
		log.Error().Err(err).Msg("GetByInterviewAndUser: failed to copy feedback model to DTO")
		return nil, fmt.Errorf("error preparing feedback response: %w", err)
	}
	return &resp, nil
}

// formatTranscript renders the turns as "-{role}: {text}" lines, in call
// order, exactly as the scorer's rubric prompt expects.
func formatTranscript(transcript []callsession.TranscriptTurn) string {
	var sb strings.Builder
	for _, turn := range transcript {
		sb.WriteString("-")
		sb.WriteString(turn.Role)
		sb.WriteString(": ")
		sb.WriteString(turn.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
