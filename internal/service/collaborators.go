package service

import (
	"context"

	"github.com/tdhoang/mockmate/internal/model"
)

// TextGenerator is the free-text generation collaborator. Implemented by
// GeminiService; faked in tests.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ScoredFeedback is the structured result of scoring one transcript.
type ScoredFeedback struct {
	TotalScore          int
	CategoryScores      model.CategoryScoreList
	Strengths           []string
	AreasForImprovement []string
	FinalAssessment     string
}

// TranscriptScorer is the structured-scoring collaborator. It receives the
// formatted transcript and returns scores for the fixed five-category rubric.
type TranscriptScorer interface {
	ScoreTranscript(ctx context.Context, formattedTranscript string) (*ScoredFeedback, error)
}
