package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/internal/model"
	"google.golang.org/api/option"
)

// GeminiService bundles both Gemini-backed collaborators: free-text
// generation (tech suggestions, question generation) and structured
// transcript scoring.
type GeminiService interface {
	TextGenerator
	TranscriptScorer
}

type geminiService struct {
	textModel    *genai.GenerativeModel
	scoringModel *genai.GenerativeModel
	cfg          *config.Config
}

func NewGeminiService(cfg *config.Config) (GeminiService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiService will be non-functional.")
		return &geminiService{cfg: cfg}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	textModel := client.GenerativeModel("gemini-2.0-flash-001")

	scoringModel := client.GenerativeModel("gemini-2.0-flash-001")
	scoringModel.ResponseMIMEType = "application/json"
	scoringModel.ResponseSchema = feedbackSchema()
	scoringModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are a professional interviewer analyzing a mock interview. " +
				"Your task is to evaluate the candidate based on structured categories.",
		)},
	}

	return &geminiService{textModel: textModel, scoringModel: scoringModel, cfg: cfg}, nil
}

func (s *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.textModel == nil {
		return "", fmt.Errorf("gemini client not initialized: %w", ErrCollaborator)
	}

	resp, err := s.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during text generation")
		return "", fmt.Errorf("gemini text generation: %w", ErrCollaborator)
	}

	text := collectText(resp)
	if text == "" {
		log.Warn().Msg("Gemini returned no text content")
		return "", fmt.Errorf("gemini returned no text content: %w", ErrCollaborator)
	}
	return text, nil
}

// scoredPayload mirrors the JSON shape the scoring model is constrained to.
type scoredPayload struct {
	TotalScore          float64          `json:"totalScore"`
	CategoryScores      []scoredCategory `json:"categoryScores"`
	Strengths           []string         `json:"strengths"`
	AreasForImprovement []string         `json:"areasForImprovement"`
	FinalAssessment     string           `json:"finalAssessment"`
}

type scoredCategory struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

func (s *geminiService) ScoreTranscript(ctx context.Context, formattedTranscript string) (*ScoredFeedback, error) {
	if s.scoringModel == nil {
		return nil, fmt.Errorf("gemini client not initialized: %w", ErrCollaborator)
	}

	prompt := fmt.Sprintf(`You are an AI interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories. Be thorough and detailed in your analysis. Don't be lenient with the candidate. If there are mistakes or areas for improvement, point them out.
Transcript:
%s

Please score the candidate from 0 to 100 in the following areas. Do not add categories other than the ones provided:
- **Communication Skills**: Clarity, articulation, structured responses.
- **Technical Knowledge**: Understanding of key concepts for the role.
- **Problem Solving**: Ability to analyze problems and propose solutions.
- **Cultural Fit**: Alignment with company values and job role.
- **Confidence and Clarity**: Confidence in responses, engagement, and clarity.
`, formattedTranscript)

	resp, err := s.scoringModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during transcript scoring")
		return nil, fmt.Errorf("gemini transcript scoring: %w", ErrCollaborator)
	}

	text := collectText(resp)
	if text == "" {
		return nil, fmt.Errorf("gemini returned no scoring content: %w", ErrMalformedAIResponse)
	}

	var payload scoredPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		log.Warn().Err(err).Str("rawResponse", text).Msg("Failed to decode structured scoring response")
		return nil, fmt.Errorf("decoding scoring response: %w", ErrMalformedAIResponse)
	}
	if len(payload.CategoryScores) != len(model.FeedbackCategories) {
		log.Warn().Int("categories", len(payload.CategoryScores)).Msg("Scoring response has wrong category count")
		return nil, fmt.Errorf("expected %d category scores, got %d: %w",
			len(model.FeedbackCategories), len(payload.CategoryScores), ErrMalformedAIResponse)
	}

	return &ScoredFeedback{
		TotalScore:          clampScore(payload.TotalScore),
		CategoryScores:      canonicalCategories(payload.CategoryScores),
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		FinalAssessment:     payload.FinalAssessment,
	}, nil
}

// canonicalCategories reorders the model's category entries into the fixed
// rubric order, matched by name so a reply listing categories out of order
// keeps each score with its category. Entries whose names drifted off the
// schema enum fall back to their position. Callers validate the count.
func canonicalCategories(entries []scoredCategory) model.CategoryScoreList {
	byName := make(map[string]scoredCategory, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	out := make(model.CategoryScoreList, len(model.FeedbackCategories))
	for i, name := range model.FeedbackCategories {
		entry, ok := byName[name]
		if !ok {
			entry = entries[i]
		}
		out[i] = model.CategoryScore{
			Name:    name,
			Score:   clampScore(entry.Score),
			Comment: entry.Comment,
		}
	}
	return out
}

func feedbackSchema() *genai.Schema {
	categorySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":    {Type: genai.TypeString, Enum: model.FeedbackCategories[:]},
			"score":   {Type: genai.TypeNumber},
			"comment": {Type: genai.TypeString},
		},
		Required: []string{"name", "score", "comment"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"totalScore":          {Type: genai.TypeNumber},
			"categoryScores":      {Type: genai.TypeArray, Items: categorySchema},
			"strengths":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"areasForImprovement": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"finalAssessment":     {Type: genai.TypeString},
		},
		Required: []string{"totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
	}
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score + 0.5)
}
