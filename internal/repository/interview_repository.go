package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/mockmate/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) CreateInterview(ctx context.Context, interview *model.Interview) error {
	if err := r.db.WithContext(ctx).Create(interview).Error; err != nil {
		return writeError("create interview", err)
	}
	return nil
}

// FindInterviewByID returns nil without error when the interview does not exist.
func (r *InterviewRepository) FindInterviewByID(ctx context.Context, id string) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.WithContext(ctx).Take(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, readError("find interview", err)
	}
	return &interview, nil
}

// FindLatestInterviews lists finalized interviews owned by anyone but excludeUserID.
func (r *InterviewRepository) FindLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]model.Interview, error) {
	interviews := []model.Interview{}
	err := r.db.WithContext(ctx).
		Where("finalized = ?", true).
		Where("user_id <> ?", excludeUserID).
		Order("created_at DESC").
		Limit(limit).
		Find(&interviews).Error
	if err != nil {
		return nil, readError("find latest interviews", err)
	}
	return interviews, nil
}

func (r *InterviewRepository) FindInterviewsByUserID(ctx context.Context, userID string) ([]model.Interview, error) {
	interviews := []model.Interview{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, readError("find interviews by user", err)
	}
	return interviews, nil
}
