package member

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"kusgan/internal/api"
	"kusgan/internal/logger"
	"kusgan/internal/membership"

	"github.com/gin-gonic/gin"
)

// StatusProvider computes the membership status shown on the member page.
type StatusProvider interface {
	Status(ctx context.Context, memberID string) (membership.Status, error)
}

type Handler struct {
	service Service
	status  StatusProvider
}

func NewHandler(service Service, status StatusProvider) *Handler {
	return &Handler{service: service, status: status}
}

// @Summary      Register a member
// @Description  Creates a member and assigns the front-desk ID (nickname + join date)
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.RegisterRequest true "Member details"
// @Success      201 {object} member.Member
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	m, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidNickname) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to register member", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to register member"})
		return
	}

	logger.Info("Member registered", "member_id", m.ID)
	c.JSON(http.StatusCreated, m)
}

// @Summary      Get a member
// @Description  Member record together with the current gym and coach status
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Member ID"
// @Success      200 {object} member.Detail
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	m, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		logger.Error("Failed to fetch member", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch member"})
		return
	}

	status, err := h.status.Status(ctx, m.ID)
	if err != nil {
		logger.Error("Failed to compute status", "member_id", m.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute membership status"})
		return
	}

	c.JSON(http.StatusOK, Detail{Member: *m, Status: status})
}

// @Summary      List members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        q      query string false "Search by ID, nickname or name"
// @Param        limit  query int    false "Page size (default 50, max 200)"
// @Param        offset query int    false "Offset"
// @Success      200 {object} member.ListResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid limit"})
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid offset"})
		return
	}

	members, err := h.service.List(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		logger.Error("Failed to list members", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Members: members, Limit: limit, Offset: offset})
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
