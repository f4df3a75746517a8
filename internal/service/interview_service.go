package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/model"
	"github.com/tdhoang/mockmate/internal/repository"
	"gorm.io/gorm"
)

const defaultLatestLimit = 20

var interviewCovers = []string{
	"/covers/adobe.png",
	"/covers/amazon.png",
	"/covers/facebook.png",
	"/covers/hostinger.png",
	"/covers/pinterest.png",
	"/covers/quora.png",
	"/covers/reddit.png",
	"/covers/skype.png",
	"/covers/spotify.png",
	"/covers/telegram.png",
	"/covers/tiktok.png",
	"/covers/yahoo.png",
}

type InterviewService interface {
	// Create generates the question list for the requested role/level/stack
	// and stores the interview, finalized and ready to be taken.
	Create(ctx context.Context, userID string, req dto.CreateInterviewRequest) (*dto.InterviewResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InterviewResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.InterviewSummaryDTO, error)
	// ListLatest returns other users' finalized interviews, newest first.
	ListLatest(ctx context.Context, excludeUserID string, limit int) ([]dto.InterviewSummaryDTO, error)
}

type interviewService struct {
	interviewRepo repository.InterviewRepository
	generator     TextGenerator
}

func NewInterviewService(interviewRepo repository.InterviewRepository, generator TextGenerator) InterviewService {
	return &interviewService{interviewRepo: interviewRepo, generator: generator}
}

func (s *interviewService) Create(ctx context.Context, userID string, req dto.CreateInterviewRequest) (*dto.InterviewResponse, error) {
	questions, err := s.generateQuestions(ctx, req)
	if err != nil {
		return nil, err
	}

	interview := &model.Interview{
		UserID:        userID,
		Role:          strings.TrimSpace(req.Role),
		Level:         req.Level,
		Type:          req.Type,
		TechStack:     req.TechStack,
		QuestionCount: len(questions),
		Questions:     questions,
		CoverImage:    interviewCovers[rand.Intn(len(interviewCovers))],
		Finalized:     true,
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Create: failed to store interview")
		return nil, fmt.Errorf("storing interview: %w", err)
	}

	var resp dto.InterviewResponse
	if err := copier.Copy(&resp, interview); err != nil {
		return nil, fmt.Errorf("error preparing interview response: %w", err)
	}
	return &resp, nil
}

func (s *interviewService) generateQuestions(ctx context.Context, req dto.CreateInterviewRequest) (model.StringList, error) {
	prompt := fmt.Sprintf(`Prepare questions for a job interview.
The job role is %s. The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
The amount of questions required is: %d.
Please return only the questions, without any additional text.
The questions are going to be read by a voice assistant so do not use "/" or "*" or any other special characters which might break the voice assistant.
Return the questions formatted like this: ["Question 1", "Question 2", "Question 3"]`,
		req.Role, req.Level, strings.Join(req.TechStack, ", "), req.Type, req.Amount)

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating interview questions: %w", err)
	}

	questions, ok := extractStringArray(text)
	if !ok || len(questions) == 0 {
		log.Warn().Str("rawResponse", text).Msg("generateQuestions: AI did not return a question list")
		return nil, fmt.Errorf("AI did not return a question list: %w", ErrMalformedAIResponse)
	}
	return questions, nil
}

func (s *interviewService) GetByID(ctx context.Context, id string) (*dto.InterviewResponse, error) {
	interview, err := s.interviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching interview: %w", err)
	}

	var resp dto.InterviewResponse
	if err := copier.Copy(&resp, interview); err != nil {
		return nil, fmt.Errorf("error preparing interview response: %w", err)
	}
	return &resp, nil
}

func (s *interviewService) ListByUser(ctx context.Context, userID string) ([]dto.InterviewSummaryDTO, error) {
	interviews, err := s.interviewRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching interviews for user: %w", err)
	}
	return toSummaries(interviews), nil
}

func (s *interviewService) ListLatest(ctx context.Context, excludeUserID string, limit int) ([]dto.InterviewSummaryDTO, error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}
	interviews, err := s.interviewRepo.FindLatestExcludingUser(excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching latest interviews: %w", err)
	}
	return toSummaries(interviews), nil
}

func toSummaries(interviews []model.Interview) []dto.InterviewSummaryDTO {
	summaries := make([]dto.InterviewSummaryDTO, 0, len(interviews))
	for i := range interviews {
		var summary dto.InterviewSummaryDTO
		if err := copier.Copy(&summary, &interviews[i]); err != nil {
			log.Error().Err(err).Str("interviewID", interviews[i].ID).Msg("toSummaries: error copying interview to summary DTO")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
