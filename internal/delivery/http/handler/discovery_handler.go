package handler

import (
	"strconv"
	"strings"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/discovery"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const defaultDiscoveryLimit = 20

type DiscoveryHandler struct {
	uc usecase.DiscoveryUsecase
}

func NewDiscoveryHandler(uc usecase.DiscoveryUsecase) *DiscoveryHandler {
	return &DiscoveryHandler{uc: uc}
}

func (h *DiscoveryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Discover)
}

func (h *DiscoveryHandler) Discover(c fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	in := usecase.DiscoverInput{
		Query:              c.Query("query"),
		IncludedSkillTypes: discovery.SkillTypes(c.Query("skill_types")),
		SortBy:             discovery.SortBy(c.Query("sort_by", string(discovery.SortByName))),
		Limit:              defaultDiscoveryLimit,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		in.Limit = limit
	}

	if raw := strings.TrimSpace(c.Query("skill_ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
			}
			in.SkillIDs = append(in.SkillIDs, id)
		}
	}

	result, err := h.uc.Discover(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponses(result))
}
