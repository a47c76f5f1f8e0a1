package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/exchange"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ExchangeHandler struct {
	uc usecase.ExchangeUsecase
}

type createExchangeRequest struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	StudentID uuid.UUID `json:"student_id"`
	SkillID   uuid.UUID `json:"skill_id"`
}

type transitionExchangeRequest struct {
	Status string `json:"status"`
}

type rateExchangeRequest struct {
	Rating   float64 `json:"rating"`
	Feedback string  `json:"feedback"`
}

func NewExchangeHandler(uc usecase.ExchangeUsecase) *ExchangeHandler {
	return &ExchangeHandler{uc: uc}
}

func (h *ExchangeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Post("/:id/status", h.Transition)
	r.Post("/:id/rating", h.Rate)
}

func (h *ExchangeHandler) Create(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	var req createExchangeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateExchangeInput{
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		SkillID:   req.SkillID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewExchangeResponse(created))
}

func (h *ExchangeHandler) Get(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	ex, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewExchangeResponse(ex))
}

func (h *ExchangeHandler) List(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	role := exchange.Role(c.Query("role", string(exchange.RoleBoth)))
	status := exchange.Status(c.Query("status"))

	items, err := h.uc.ListForUser(c.Context(), userID, role, status)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewExchangeResponses(items))
}

func (h *ExchangeHandler) Transition(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req transitionExchangeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Transition(c.Context(), userID, id, exchange.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewExchangeResponse(updated))
}

func (h *ExchangeHandler) Rate(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req rateExchangeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rated, err := h.uc.Rate(c.Context(), userID, id, usecase.RateExchangeInput{
		Rating:   req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewExchangeResponse(rated))
}
