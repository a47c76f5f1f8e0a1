package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/skill"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type addSkillRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Level    string   `json:"level"`
	Tags     []string `json:"tags"`
	Kind     string   `json:"kind"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Delete("/:id", h.Remove)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	kind := skill.Kind(c.Query("kind", string(skill.KindOwned)))
	items, err := h.uc.ListSkills(c.Context(), userID, kind)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponses(items))
}

func (h *SkillHandler) Add(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	var req addSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	kind := skill.Kind(req.Kind)
	if req.Kind == "" {
		kind = skill.KindOwned
	}

	created, err := h.uc.AddSkill(c.Context(), userID, usecase.AddSkillInput{
		Name:     req.Name,
		Category: skill.Category(req.Category),
		Level:    skill.Level(req.Level),
		Tags:     req.Tags,
		Kind:     kind,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewSkillResponse(created))
}

func (h *SkillHandler) Remove(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveSkill(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
