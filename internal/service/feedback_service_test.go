package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdhoang/mockmate/internal/callsession"
	"github.com/tdhoang/mockmate/internal/model"
	"gorm.io/gorm"
)

type fakeScorer struct {
	result      *ScoredFeedback
	err         error
	transcripts []string
}

func (f *fakeScorer) ScoreTranscript(ctx context.Context, formattedTranscript string) (*ScoredFeedback, error) {
	f.transcripts = append(f.transcripts, formattedTranscript)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeFeedbackRepo mimics the upsert semantics of the real repository: one
// row per (interview, user), overwritten in place on conflict.
type fakeFeedbackRepo struct {
	rows    map[string]*model.Feedback
	upserts int
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{rows: make(map[string]*model.Feedback)}
}

func (f *fakeFeedbackRepo) key(interviewID, userID string) string {
	return interviewID + "|" + userID
}

func (f *fakeFeedbackRepo) Upsert(feedback *model.Feedback) (*model.Feedback, error) {
	f.upserts++
	key := f.key(feedback.InterviewID, feedback.UserID)
	if existing, ok := f.rows[key]; ok {
		existing.TotalScore = feedback.TotalScore
		existing.CategoryScores = feedback.CategoryScores
		existing.Strengths = feedback.Strengths
		existing.AreasForImprovement = feedback.AreasForImprovement
		existing.FinalAssessment = feedback.FinalAssessment
		return existing, nil
	}
	stored := *feedback
	stored.ID = fmt.Sprintf("feedback-%d", len(f.rows)+1)
	f.rows[key] = &stored
	return &stored, nil
}

func (f *fakeFeedbackRepo) FindByInterviewAndUser(interviewID, userID string) (*model.Feedback, error) {
	if row, ok := f.rows[f.key(interviewID, userID)]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func scoredFixture(total int) *ScoredFeedback {
	scores := make(model.CategoryScoreList, 0, len(model.FeedbackCategories))
	for _, name := range model.FeedbackCategories {
		scores = append(scores, model.CategoryScore{Name: name, Score: total, Comment: "ok"})
	}
	return &ScoredFeedback{
		TotalScore:          total,
		CategoryScores:      scores,
		Strengths:           []string{"clear answers"},
		AreasForImprovement: []string{"more depth"},
		FinalAssessment:     "solid run",
	}
}

func TestDeriveFeedback(t *testing.T) {
	t.Run("formats the transcript for the scorer", func(t *testing.T) {
		scorer := &fakeScorer{result: scoredFixture(70)}
		svc := NewFeedbackService(newFakeFeedbackRepo(), scorer)

		transcript := []callsession.TranscriptTurn{
			{Role: "assistant", Text: "Tell me about yourself."},
			{Role: "user", Text: "I build Go services."},
		}
		_, err := svc.DeriveFeedback(context.Background(), "int-1", "user-1", transcript)
		require.NoError(t, err)

		require.Len(t, scorer.transcripts, 1)
		assert.Equal(t, "-assistant: Tell me about yourself.\n-user: I build Go services.\n", scorer.transcripts[0])
	})

	t.Run("retake overwrites the existing row", func(t *testing.T) {
		repo := newFakeFeedbackRepo()
		scorer := &fakeScorer{result: scoredFixture(60)}
		svc := NewFeedbackService(repo, scorer)

		firstID, err := svc.DeriveFeedback(context.Background(), "int-1", "user-1", nil)
		require.NoError(t, err)

		scorer.result = scoredFixture(85)
		secondID, err := svc.DeriveFeedback(context.Background(), "int-1", "user-1", nil)
		require.NoError(t, err)

		assert.Equal(t, firstID, secondID)
		assert.Len(t, repo.rows, 1)
		assert.Equal(t, 2, repo.upserts)

		row, err := repo.FindByInterviewAndUser("int-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, 85, row.TotalScore)
	})

	t.Run("different users keep separate rows", func(t *testing.T) {
		repo := newFakeFeedbackRepo()
		svc := NewFeedbackService(repo, &fakeScorer{result: scoredFixture(50)})

		idA, err := svc.DeriveFeedback(context.Background(), "int-1", "user-a", nil)
		require.NoError(t, err)
		idB, err := svc.DeriveFeedback(context.Background(), "int-1", "user-b", nil)
		require.NoError(t, err)

		assert.NotEqual(t, idA, idB)
		assert.Len(t, repo.rows, 2)
	})

	t.Run("scoring failure is propagated and nothing is stored", func(t *testing.T) {
		repo := newFakeFeedbackRepo()
		boom := errors.New("scorer down")
		svc := NewFeedbackService(repo, &fakeScorer{err: boom})

		_, err := svc.DeriveFeedback(context.Background(), "int-1", "user-1", nil)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, repo.rows)
	})
}

func TestGetByInterviewAndUser(t *testing.T) {
	t.Run("missing feedback maps to not-found", func(t *testing.T) {
		svc := NewFeedbackService(newFakeFeedbackRepo(), &fakeScorer{result: scoredFixture(50)})
		_, err := svc.GetByInterviewAndUser(context.Background(), "int-1", "user-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns the derived feedback", func(t *testing.T) {
		repo := newFakeFeedbackRepo()
		svc := NewFeedbackService(repo, &fakeScorer{result: scoredFixture(90)})

		id, err := svc.DeriveFeedback(context.Background(), "int-1", "user-1", nil)
		require.NoError(t, err)

		got, err := svc.GetByInterviewAndUser(context.Background(), "int-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, 90, got.TotalScore)
		assert.Len(t, got.CategoryScores, len(model.FeedbackCategories))
	})
}
