package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/mockmate/internal/dto"
	"github.com/fadilmartias/mockmate/internal/metrics"
	"github.com/fadilmartias/mockmate/internal/model"
	"github.com/fadilmartias/mockmate/internal/service"
	"github.com/fadilmartias/mockmate/internal/util"
	log "github.com/sirupsen/logrus"
)

type FeedbackStore interface {
	SaveFeedback(ctx context.Context, feedback *model.Feedback) error
	FindFeedbackByInterviewAndUser(ctx context.Context, interviewID, userID string) (*model.Feedback, error)
}

type FeedbackUsecase struct {
	feedbackRepo FeedbackStore
	llm          service.StructuredGenerator
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewFeedbackUsecase(feedbackRepo FeedbackStore, llm service.StructuredGenerator, m *metrics.Metrics) *FeedbackUsecase {
	return &FeedbackUsecase{
		feedbackRepo: feedbackRepo,
		llm:          llm,
		metrics:      m,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create scores the transcript and upserts the feedback. Failures are logged
// and reported only as Success=false.
func (uc *FeedbackUsecase) Create(ctx context.Context, params dto.CreateFeedbackParams) dto.CreateFeedbackResult {
	feedback, err := uc.create(ctx, params)
	uc.metrics.FeedbackGenerated(err)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"interviewId": params.InterviewID,
			"userId":      params.UserID,
		}).Error("Error saving feedback")
		return dto.CreateFeedbackResult{Success: false}
	}
	return dto.CreateFeedbackResult{Success: true, FeedbackID: feedback.ID}
}

func (uc *FeedbackUsecase) create(ctx context.Context, params dto.CreateFeedbackParams) (*model.Feedback, error) {
	if err := util.ValidateStruct(params); err != nil {
		return nil, err
	}

	var object dto.FeedbackObject
	err := uc.llm.GenerateObject(ctx, service.ObjectRequest{
		Prompt: buildFeedbackPrompt(params.Transcript),
		System: feedbackSystemPrompt,
		Schema: feedbackSchema,
	}, &object)
	if err != nil {
		return nil, err
	}

	feedback := &model.Feedback{
		ID:                  params.FeedbackID,
		InterviewID:         params.InterviewID,
		UserID:              params.UserID,
		TotalScore:          object.TotalScore,
		CategoryScores:      object.CategoryScores,
		Strengths:           object.Strengths,
		AreasForImprovement: object.AreasForImprovement,
		FinalAssessment:     object.FinalAssessment,
		CreatedAt:           uc.now(),
	}
	if err := uc.feedbackRepo.SaveFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// GetByInterviewID returns the caller's feedback for an interview, or nil.
func (uc *FeedbackUsecase) GetByInterviewID(ctx context.Context, q dto.FeedbackQuery) (*model.Feedback, error) {
	return uc.feedbackRepo.FindFeedbackByInterviewAndUser(ctx, q.InterviewID, q.UserID)
}
