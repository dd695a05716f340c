package handler

import (
	"github.com/fadilmartias/mockmate/internal/dto"
	"github.com/fadilmartias/mockmate/internal/middleware"
	"github.com/fadilmartias/mockmate/internal/response"
	"github.com/fadilmartias/mockmate/internal/usecase"
	"github.com/fadilmartias/mockmate/internal/util"
	"github.com/gofiber/fiber/v2"
)

type InterviewHandler struct {
	interviews *usecase.InterviewUsecase
	feedback   *usecase.FeedbackUsecase
}

func NewInterviewHandler(interviews *usecase.InterviewUsecase, feedback *usecase.FeedbackUsecase) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, feedback: feedback}
}

// RegisterRoutes mounts /interviews behind the given auth handler.
func (h *InterviewHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	interviews := router.Group("/interviews", auth)
	interviews.Get("/", h.ListMine)
	interviews.Get("/latest", h.ListLatest)
	interviews.Get("/:id", h.Get)
	interviews.Get("/:id/feedback", h.GetFeedback)
	interviews.Post("/:id/feedback", h.CreateFeedback)
}

func (h *InterviewHandler) ListMine(c *fiber.Ctx) error {
	interviews, err := h.interviews.GetByUserID(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get interviews",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Data: interviews,
		List: response.NewListMeta(len(interviews), 0),
	})
}

func (h *InterviewHandler) ListLatest(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", dto.DefaultLatestLimit)
	if limit <= 0 {
		limit = dto.DefaultLatestLimit
	}
	interviews, err := h.interviews.GetLatest(c.UserContext(), dto.LatestInterviewsQuery{
		UserID: middleware.UserID(c),
		Limit:  limit,
	})
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get latest interviews",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Data: interviews,
		List: response.NewListMeta(len(interviews), limit),
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	interview, err := h.interviews.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get interview",
		}, err)
	}
	if interview == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "interview not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Data: interview,
	})
}

func (h *InterviewHandler) GetFeedback(c *fiber.Ctx) error {
	feedback, err := h.feedback.GetByInterviewID(c.UserContext(), dto.FeedbackQuery{
		InterviewID: c.Params("id"),
		UserID:      middleware.UserID(c),
	})
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get feedback",
		}, err)
	}
	if feedback == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "feedback not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Data: feedback,
	})
}

func (h *InterviewHandler) CreateFeedback(c *fiber.Ctx) error {
	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	result := h.feedback.Create(c.UserContext(), dto.CreateFeedbackParams{
		InterviewID: c.Params("id"),
		UserID:      middleware.UserID(c),
		Transcript:  req.Transcript,
		FeedbackID:  req.FeedbackID,
	})
	if !result.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}
	return c.JSON(result)
}
