package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/model"
	"gorm.io/gorm"
)

type fakeInterviewRepo struct {
	rows        map[string]*model.Interview
	latestCalls []int
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{rows: make(map[string]*model.Interview)}
}

func (f *fakeInterviewRepo) Create(interview *model.Interview) error {
	if interview.ID == "" {
		interview.ID = fmt.Sprintf("int-%d", len(f.rows)+1)
	}
	f.rows[interview.ID] = interview
	return nil
}

func (f *fakeInterviewRepo) FindByID(id string) (*model.Interview, error) {
	if row, ok := f.rows[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInterviewRepo) FindAllByUser(userID string) ([]model.Interview, error) {
	var out []model.Interview
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) FindLatestExcludingUser(userID string, limit int) ([]model.Interview, error) {
	f.latestCalls = append(f.latestCalls, limit)
	var out []model.Interview
	for _, row := range f.rows {
		if row.UserID != userID && row.Finalized {
			out = append(out, *row)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestCreateInterview(t *testing.T) {
	req := dto.CreateInterviewRequest{
		Role:      "Backend Developer",
		Level:     "Mid",
		Type:      model.InterviewTypeTechnical,
		TechStack: []string{"Go", "PostgreSQL"},
		Amount:    3,
	}

	t.Run("stores a finalized interview with generated questions", func(t *testing.T) {
		repo := newFakeInterviewRepo()
		gen := &fakeGenerator{reply: `["Why Go?", "Explain channels.", "What is gorm?"]`}
		svc := NewInterviewService(repo, gen)

		got, err := svc.Create(context.Background(), "user-1", req)
		require.NoError(t, err)

		assert.Equal(t, "user-1", got.UserID)
		assert.True(t, got.Finalized)
		assert.Equal(t, 3, got.QuestionCount)
		assert.Equal(t, []string{"Why Go?", "Explain channels.", "What is gorm?"}, got.Questions)
		assert.NotEmpty(t, got.CoverImage)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("unparseable question reply is a malformed-response error", func(t *testing.T) {
		repo := newFakeInterviewRepo()
		svc := NewInterviewService(repo, &fakeGenerator{reply: "I'd rather not."})

		_, err := svc.Create(context.Background(), "user-1", req)
		assert.ErrorIs(t, err, ErrMalformedAIResponse)
		assert.Empty(t, repo.rows)
	})
}

func TestGetInterviewByID(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewInterviewService(repo, &fakeGenerator{})

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(&model.Interview{UserID: "user-1", Role: "SRE", Questions: model.StringList{"q1"}}))
	got, err := svc.GetByID(context.Background(), "int-1")
	require.NoError(t, err)
	assert.Equal(t, "SRE", got.Role)
	assert.Equal(t, []string{"q1"}, got.Questions)
}

func TestListLatest(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewInterviewService(repo, &fakeGenerator{})
	require.NoError(t, repo.Create(&model.Interview{UserID: "other", Finalized: true, Role: "SRE"}))
	require.NoError(t, repo.Create(&model.Interview{UserID: "me", Finalized: true, Role: "SRE"}))

	t.Run("excludes the requesting user", func(t *testing.T) {
		got, err := svc.ListLatest(context.Background(), "me", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "other", got[0].UserID)
	})

	t.Run("non-positive limit falls back to the default", func(t *testing.T) {
		_, err := svc.ListLatest(context.Background(), "me", 0)
		require.NoError(t, err)
		assert.Equal(t, defaultLatestLimit, repo.latestCalls[len(repo.latestCalls)-1])
	})
}
