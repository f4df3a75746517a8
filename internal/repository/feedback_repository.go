package repository

import (
	"github.com/tdhoang/mockmate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepository interface {
	// Upsert inserts the feedback or, when a row for the same
	// (interview_id, user_id) already exists, overwrites its scores in
	// place. The returned feedback carries the id of the surviving row.
	Upsert(feedback *model.Feedback) (*model.Feedback, error)
	FindByInterviewAndUser(interviewID, userID string) (*model.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Upsert(feedback *model.Feedback) (*model.Feedback, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "interview_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_score", "category_scores", "strengths",
			"areas_for_improvement", "final_assessment", "updated_at",
		}),
	}).Create(feedback).Error
	if err != nil {
		return nil, err
	}
	// On the update path the generated id of the insert attempt is not the
	// persisted one; read the row back to report the real id.
	return r.FindByInterviewAndUser(feedback.InterviewID, feedback.UserID)
}

func (r *feedbackRepository) FindByInterviewAndUser(interviewID, userID string) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
