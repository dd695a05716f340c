package handler

import (
	"errors"

	"github.com/fadilmartias/mockmate/internal/dto"
	"github.com/fadilmartias/mockmate/internal/usecase"
	"github.com/fadilmartias/mockmate/internal/util"
	"github.com/gofiber/fiber/v2"
)

// GenerateHandler serves the voice assistant's tool endpoint. It is called
// server to server and is not behind the auth gate.
type GenerateHandler struct {
	uc *usecase.InterviewUsecase
}

func NewGenerateHandler(uc *usecase.InterviewUsecase) *GenerateHandler {
	return &GenerateHandler{uc: uc}
}

func (h *GenerateHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/vapi/generate", h.Ping)
	router.Post("/vapi/generate", h.Generate)
}

func (h *GenerateHandler) Ping(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Data: "Thank you!",
	})
}

func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	if _, err := h.uc.Generate(c.UserContext(), req); err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: formErr.Message,
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{})
}
