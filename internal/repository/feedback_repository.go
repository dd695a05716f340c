package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/mockmate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db}
}

var feedbackColumns = []string{
	"interview_id",
	"user_id",
	"total_score",
	"category_scores",
	"strengths",
	"areas_for_improvement",
	"final_assessment",
	"created_at",
}

// ErrFeedbackConflict is returned when a chosen feedback id already belongs to
// a different interview or user.
var ErrFeedbackConflict = errors.New("feedback id belongs to another interview or user")

// SaveFeedback creates the feedback, or replaces every column of the row
// with the same id. An existing row is only replaced when its interview and
// user match; otherwise nothing is written. An empty ID is allocated.
func (r *FeedbackRepository) SaveFeedback(ctx context.Context, feedback *model.Feedback) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "feedback.interview_id = excluded.interview_id AND feedback.user_id = excluded.user_id"},
			}},
			DoUpdates: clause.AssignmentColumns(feedbackColumns),
		}).
		Create(feedback)
	if result.Error != nil {
		return writeError("save feedback", result.Error)
	}
	if result.RowsAffected == 0 {
		return writeError("save feedback", ErrFeedbackConflict)
	}
	return nil
}

// FindFeedbackByInterviewAndUser returns nil without error when no feedback matches.
func (r *FeedbackRepository) FindFeedbackByInterviewAndUser(ctx context.Context, interviewID, userID string) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Limit(1).
		Take(&feedback).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, readError("find feedback", err)
	}
	return &feedback, nil
}
