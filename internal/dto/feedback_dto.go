package dto

import "time"

type CategoryScoreDTO struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

type FeedbackResponse struct {
	ID                  string             `json:"id"`
	InterviewID         string             `json:"interview_id"`
	UserID              string             `json:"user_id"`
	TotalScore          int                `json:"total_score"`
	CategoryScores      []CategoryScoreDTO `json:"category_scores"`
	Strengths           []string           `json:"strengths"`
	AreasForImprovement []string           `json:"areas_for_improvement"`
	FinalAssessment     string             `json:"final_assessment"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}
