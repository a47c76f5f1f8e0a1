package handler

import (
	"strconv"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

type createChatRequest struct {
	Title           string      `json:"title"`
	Participants    []uuid.UUID `json:"participants"`
	SkillExchangeID *uuid.UUID  `json:"skill_exchange_id"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Get("/:id/messages", h.ListMessages)
	r.Post("/:id/messages", h.SendMessage)
	r.Post("/:id/read", h.MarkRead)
}

func (h *ChatHandler) Create(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	var req createChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateChat(c.Context(), userID, usecase.CreateChatInput{
		Title:           req.Title,
		Participants:    req.Participants,
		SkillExchangeID: req.SkillExchangeID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewChatResponse(created))
}

func (h *ChatHandler) Get(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	chatID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	chat, err := h.uc.GetChat(c.Context(), userID, chatID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatResponse(chat))
}

func (h *ChatHandler) List(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	chats, err := h.uc.ListChats(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatResponses(chats))
}

func (h *ChatHandler) SendMessage(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	chatID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msg, err := h.uc.SendMessage(c.Context(), userID, chatID, req.Content)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewMessageResponse(msg))
}

func (h *ChatHandler) ListMessages(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	chatID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
	}

	msgs, err := h.uc.ListMessages(c.Context(), userID, chatID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageResponses(msgs))
}

func (h *ChatHandler) MarkRead(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	chatID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	n, err := h.uc.MarkMessagesRead(c.Context(), userID, chatID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"marked_read": n})
}
