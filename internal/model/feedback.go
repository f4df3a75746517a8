package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The scoring rubric is closed: every feedback carries exactly these five
// categories, in this order.
var FeedbackCategories = [5]string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem Solving",
	"Cultural Fit",
	"Confidence and Clarity",
}

type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// CategoryScoreList is stored as a jsonb column.
type CategoryScoreList []CategoryScore

func (l CategoryScoreList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *CategoryScoreList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for CategoryScoreList", value)
	}
}

// StringList is stored as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Feedback holds the AI evaluation of one user's run of one interview.
// The composite unique index enforces the one-row-per-(interview,user)
// invariant at the database level; writes go through an ON CONFLICT upsert.
type Feedback struct {
	ID                  string            `gorm:"type:uuid;primarykey" json:"id"`
	InterviewID         string            `json:"interview_id" gorm:"type:uuid;not null;uniqueIndex:idx_feedback_interview_user"`
	UserID              string            `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_feedback_interview_user"`
	TotalScore          int               `json:"total_score" gorm:"not null"`
	CategoryScores      CategoryScoreList `json:"category_scores" gorm:"type:jsonb;not null"`
	Strengths           StringList        `json:"strengths" gorm:"type:jsonb"`
	AreasForImprovement StringList        `json:"areas_for_improvement" gorm:"type:jsonb"`
	FinalAssessment     string            `json:"final_assessment" gorm:"type:text"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	DeletedAt           gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
