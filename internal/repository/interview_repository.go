package repository

import (
	"github.com/tdhoang/mockmate/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	Create(interview *model.Interview) error
	FindByID(id string) (*model.Interview, error)
	FindAllByUser(userID string) ([]model.Interview, error)
	// FindLatestExcludingUser returns finalized interviews created by other
	// users, newest first, capped at limit.
	FindLatestExcludingUser(userID string, limit int) ([]model.Interview, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *model.Interview) error {
	return r.db.Create(interview).Error
}

func (r *interviewRepository) FindByID(id string) (*model.Interview, error) {
	var interview model.Interview
	if err := r.db.Where("id = ?", id).First(&interview).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) FindAllByUser(userID string) ([]model.Interview, error) {
	var interviews []model.Interview
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepository) FindLatestExcludingUser(userID string, limit int) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.
		Where("finalized = ?", true).
		Where("user_id <> ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}
