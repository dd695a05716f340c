package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Feedback categories, in the order they are requested from the model.
const (
	CategoryCommunication = "Communication Skills"
	CategoryTechnical     = "Technical Knowledge"
	CategoryProblem       = "Problem Solving"
	CategoryCulturalFit   = "Cultural Fit"
	CategoryConfidence    = "Confidence and Clarity"
)

var FeedbackCategories = []string{
	CategoryCommunication,
	CategoryTechnical,
	CategoryProblem,
	CategoryCulturalFit,
	CategoryConfidence,
}

type CategoryScore struct {
	Name    string `json:"name" validate:"required,oneof='Communication Skills' 'Technical Knowledge' 'Problem Solving' 'Cultural Fit' 'Confidence and Clarity'"`
	Score   int    `json:"score" validate:"min=0,max=100"`
	Comment string `json:"comment"`
}

type Feedback struct {
	ID                  string                             `gorm:"type:varchar(64);primaryKey" json:"id"`
	InterviewID         string                             `gorm:"type:varchar(64);index:idx_feedback_interview_user" json:"interviewId"`
	UserID              string                             `gorm:"type:varchar(128);index:idx_feedback_interview_user" json:"userId"`
	TotalScore          int                                `json:"totalScore"`
	CategoryScores      datatypes.JSONSlice[CategoryScore] `json:"categoryScores"`
	Strengths           datatypes.JSONSlice[string]        `json:"strengths"`
	AreasForImprovement datatypes.JSONSlice[string]        `json:"areasForImprovement"`
	FinalAssessment     string                             `gorm:"type:text" json:"finalAssessment"`
	CreatedAt           time.Time                          `json:"createdAt"`
}

func (f *Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
