package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview types mirror the options offered on the creation form.
const (
	InterviewTypeTechnical  = "Technical"
	InterviewTypeHR         = "HR"
	InterviewTypeManagerial = "Managerial"
	InterviewTypeMixed      = "Mixed"
)

type Interview struct {
	ID            string         `gorm:"type:uuid;primarykey" json:"id"`
	UserID        string         `json:"user_id" gorm:"type:uuid;not null;index"`
	Role          string         `json:"role" gorm:"not null"`
	Level         string         `json:"level" gorm:"not null"`
	Type          string         `json:"type" gorm:"not null"` // Technical, HR, Managerial, Mixed
	TechStack     StringList     `json:"techstack" gorm:"type:jsonb;not null"`
	QuestionCount int            `json:"question_count" gorm:"not null"`
	Questions     StringList     `json:"questions" gorm:"type:jsonb;not null"`
	CoverImage    string         `json:"cover_image"`
	Finalized     bool           `json:"finalized" gorm:"not null;default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
