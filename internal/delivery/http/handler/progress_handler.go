package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/progress"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProgressHandler struct {
	uc usecase.ProgressUsecase
}

type updateProgressRequest struct {
	Milestones []progress.Milestone `json:"milestones"`
	Notes      string               `json:"notes"`
}

func NewProgressHandler(uc usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

// RegisterRoutes mounts under the exchanges group; progress is always scoped
// to one exchange.
func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id/progress", h.Get)
	r.Put("/:id/progress", h.Update)
}

func (h *ProgressHandler) Get(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	exchangeID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), userID, exchangeID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgressResponse(p))
}

func (h *ProgressHandler) Update(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	exchangeID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateProgressRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Update(c.Context(), userID, exchangeID, usecase.UpdateProgressInput{
		Milestones: req.Milestones,
		Notes:      req.Notes,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgressResponse(p))
}
