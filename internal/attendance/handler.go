package attendance

import (
	"errors"
	"net/http"

	"kusgan/internal/api"
	"kusgan/internal/logger"
	"kusgan/internal/member"
	"kusgan/internal/membership"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
	case errors.Is(err, ErrMembershipInactive):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Gym membership is not active"})
	case errors.Is(err, ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Member is already checked in"})
	case errors.Is(err, ErrNotCheckedIn):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Member is not checked in"})
	default:
		logger.Error("Failed to "+action, "member_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to " + action})
	}
}

// @Summary      Check a member in
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Member ID"
// @Success      201 {object} attendance.Visit
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	v, err := h.service.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "check in")
		return
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary      Check a member out
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Member ID"
// @Success      200 {object} attendance.Visit
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/checkout [post]
func (h *Handler) CheckOut(c *gin.Context) {
	v, err := h.service.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "check out")
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      A member's visits
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Member ID"
// @Success      200 {array} attendance.Visit
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/attendance [get]
func (h *Handler) ListByMember(c *gin.Context) {
	visits, err := h.service.ListByMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "fetch attendance")
		return
	}
	c.JSON(http.StatusOK, visits)
}

// @Summary      Visits on a day
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Day as YYYY-MM-DD, defaults to today"
// @Success      200 {array} attendance.Visit
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /attendance [get]
func (h *Handler) ListByDate(c *gin.Context) {
	var day *membership.Date
	if raw := c.Query("date"); raw != "" {
		d, err := membership.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date must be formatted as YYYY-MM-DD"})
			return
		}
		day = &d
	}

	visits, err := h.service.ListByDate(c.Request.Context(), day)
	if err != nil {
		writeError(c, err, "fetch attendance")
		return
	}
	c.JSON(http.StatusOK, visits)
}
