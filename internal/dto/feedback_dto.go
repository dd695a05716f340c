package dto

import "github.com/fadilmartias/mockmate/internal/model"

type TranscriptLine struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content"`
}

type CreateFeedbackParams struct {
	InterviewID string           `json:"interviewId" validate:"required"`
	UserID      string           `json:"userId" validate:"required"`
	Transcript  []TranscriptLine `json:"transcript" validate:"required,min=1,dive"`
	FeedbackID  string           `json:"feedbackId,omitempty"`
}

// CreateFeedbackRequest is the HTTP body; interview and user come from the
// route and the session.
type CreateFeedbackRequest struct {
	Transcript []TranscriptLine `json:"transcript"`
	FeedbackID string           `json:"feedbackId,omitempty"`
}

type CreateFeedbackResult struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId,omitempty"`
}

type FeedbackQuery struct {
	InterviewID string
	UserID      string
}

// FeedbackObject is the shape the structured model call must return.
type FeedbackObject struct {
	TotalScore          int                   `json:"totalScore" validate:"min=0,max=100"`
	CategoryScores      []model.CategoryScore `json:"categoryScores" validate:"len=5,unique=Name,dive"`
	Strengths           []string              `json:"strengths" validate:"required"`
	AreasForImprovement []string              `json:"areasForImprovement" validate:"required"`
	FinalAssessment     string                `json:"finalAssessment" validate:"required"`
}
