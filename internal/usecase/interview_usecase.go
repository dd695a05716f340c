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

type InterviewStore interface {
	CreateInterview(ctx context.Context, interview *model.Interview) error
	FindInterviewByID(ctx context.Context, id string) (*model.Interview, error)
	FindLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]model.Interview, error)
	FindInterviewsByUserID(ctx context.Context, userID string) ([]model.Interview, error)
}

type InterviewUsecase struct {
	interviewRepo InterviewStore
	llm           service.TextGenerator
	metrics       *metrics.Metrics
	now           func() time.Time
	cover         func() string
}

func NewInterviewUsecase(interviewRepo InterviewStore, llm service.TextGenerator, m *metrics.Metrics) *InterviewUsecase {
	return &InterviewUsecase{
		interviewRepo: interviewRepo,
		llm:           llm,
		metrics:       m,
		now:           func() time.Time { return time.Now().UTC() },
		cover:         util.RandomInterviewCover,
	}
}

// Generate asks the model for questions and stores the resulting interview.
// Nothing is written unless the model output parses. Errors are a
// *util.FormError, util.ErrNoJSONFound, a *util.JSONParseError, or a wrapped
// repository.ErrStoreWrite.
func (uc *InterviewUsecase) Generate(ctx context.Context, req dto.GenerateInterviewRequest) (*model.Interview, error) {
	interview, err := uc.generate(ctx, req)
	uc.metrics.InterviewGenerated(err)
	return interview, err
}

func (uc *InterviewUsecase) generate(ctx context.Context, req dto.GenerateInterviewRequest) (*model.Interview, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	reqLog := log.WithFields(log.Fields{"userId": req.UserID, "role": req.Role, "amount": int(req.Amount)})

	llmStart := time.Now()
	reqLog.Info("Asking LLM for interview questions")
	raw, err := uc.llm.GenerateText(ctx, buildQuestionPrompt(req))
	if err != nil {
		reqLog.WithError(err).Error("LLM question generation failed")
		return nil, err
	}
	reqLog.Infof("LLM complete in %+v", time.Since(llmStart))

	parsed := util.ParseQuestions(raw)
	if err := parsed.Error(); err != nil {
		reqLog.WithError(err).WithFields(log.Fields{
			"raw":       parsed.Raw,
			"extracted": parsed.Extracted,
		}).Error("Could not extract questions from model response")
		return nil, err
	}

	interview := &model.Interview{
		Role:       req.Role,
		Type:       req.Type,
		Level:      req.Level,
		Techstack:  util.SplitTechstack(req.Techstack),
		Questions:  parsed.Questions,
		UserID:     req.UserID,
		Finalized:  true,
		CoverImage: uc.cover(),
		CreatedAt:  uc.now(),
	}
	if err := uc.interviewRepo.CreateInterview(ctx, interview); err != nil {
		reqLog.WithError(err).Error("Saving interview failed")
		return nil, err
	}

	reqLog.WithField("interviewId", interview.ID).Infof("Interview saved with %d questions", len(interview.Questions))
	return interview, nil
}

// GetByID returns nil when no interview has the id.
func (uc *InterviewUsecase) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	return uc.interviewRepo.FindInterviewByID(ctx, id)
}

// GetLatest lists finalized interviews of other users, newest first.
func (uc *InterviewUsecase) GetLatest(ctx context.Context, q dto.LatestInterviewsQuery) ([]model.Interview, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = dto.DefaultLatestLimit
	}
	return uc.interviewRepo.FindLatestInterviews(ctx, q.UserID, limit)
}

func (uc *InterviewUsecase) GetByUserID(ctx context.Context, userID string) ([]model.Interview, error) {
	return uc.interviewRepo.FindInterviewsByUserID(ctx, userID)
}
