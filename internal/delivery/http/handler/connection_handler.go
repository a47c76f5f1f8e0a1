package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	uc usecase.ConnectionUsecase
}

type sendRequestRequest struct {
	ToUserID           uuid.UUID `json:"to_user_id"`
	Message            string    `json:"message"`
	RequesterWillLearn string    `json:"requester_will_learn"`
	RecipientWillLearn string    `json:"recipient_will_learn"`
}

type respondRequestRequest struct {
	Accept bool `json:"accept"`
}

func NewConnectionHandler(uc usecase.ConnectionUsecase) *ConnectionHandler {
	return &ConnectionHandler{uc: uc}
}

func (h *ConnectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/status/:userId", h.StatusWith)

	reqs := r.Group("/requests")
	reqs.Get("/", h.ListRequests)
	reqs.Post("/", h.SendRequest)
	reqs.Post("/:id/respond", h.Respond)
}

func (h *ConnectionHandler) SendRequest(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	var req sendRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.SendRequest(c.Context(), userID, usecase.SendRequestInput{
		ToUserID:           req.ToUserID,
		Message:            req.Message,
		RequesterWillLearn: req.RequesterWillLearn,
		RecipientWillLearn: req.RecipientWillLearn,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewConnectionRequestResponse(created))
}

func (h *ConnectionHandler) Respond(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	requestID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req respondRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	resolved, err := h.uc.Respond(c.Context(), userID, requestID, req.Accept)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionRequestResponse(resolved))
}

func (h *ConnectionHandler) ListRequests(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	pendingOnly := c.Query("pending", "true") != "false"
	items, err := h.uc.ListIncomingRequests(c.Context(), userID, pendingOnly)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionRequestResponses(items))
}

func (h *ConnectionHandler) List(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	ids, err := h.uc.ListConnections(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, ids)
}

func (h *ConnectionHandler) StatusWith(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	otherID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	status, err := h.uc.StatusWith(c.Context(), userID, otherID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"status": status})
}
