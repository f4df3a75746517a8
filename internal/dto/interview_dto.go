package dto

import "time"

type CreateInterviewRequest struct {
	Role      string   `json:"role" binding:"required,min=2"`
	Level     string   `json:"level" binding:"required"`
	Type      string   `json:"type" binding:"required,oneof=Technical HR Managerial Mixed"`
	TechStack []string `json:"techstack" binding:"required,min=1"`
	Amount    int      `json:"amount" binding:"required,min=1,max=20"`
}

type InterviewResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Role          string    `json:"role"`
	Level         string    `json:"level"`
	Type          string    `json:"type"`
	TechStack     []string  `json:"techstack"`
	QuestionCount int       `json:"question_count"`
	Questions     []string  `json:"questions"`
	CoverImage    string    `json:"cover_image,omitempty"`
	Finalized     bool      `json:"finalized"`
	CreatedAt     time.Time `json:"created_at"`
}

// InterviewSummaryDTO is used for the home-view interview lists; it omits
// the question text so other users' questions are not exposed in listings.
type InterviewSummaryDTO struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Role          string    `json:"role"`
	Level         string    `json:"level"`
	Type          string    `json:"type"`
	TechStack     []string  `json:"techstack"`
	QuestionCount int       `json:"question_count"`
	CoverImage    string    `json:"cover_image,omitempty"`
	Finalized     bool      `json:"finalized"`
	CreatedAt     time.Time `json:"created_at"`
}
