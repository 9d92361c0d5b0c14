package payment

import (
	"errors"
	"net/http"

	"kusgan/internal/api"
	"kusgan/internal/auth"
	"kusgan/internal/logger"

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
	case errors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
	case errors.Is(err, ErrUnknownProduct), errors.Is(err, ErrProductInactive):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to "+action, "member_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to " + action})
	}
}

// @Summary      Preview a purchase
// @Description  Shows the windows a product would open without recording anything
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                  true "Member ID"
// @Param        request body payment.PurchaseRequest true "Product and optional start date"
// @Success      200 {object} payment.Quote
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/payments/preview [post]
func (h *Handler) Preview(c *gin.Context) {
	var req PurchaseRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	q, err := h.service.Preview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err, "preview purchase")
		return
	}

	c.JSON(http.StatusOK, q)
}

// @Summary      Record a payment
// @Description  Stores the purchase and extends the member's gym and/or coach validity
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                  true "Member ID"
// @Param        request body payment.PurchaseRequest true "Product and optional start date"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/payments [post]
func (h *Handler) Record(c *gin.Context) {
	var req PurchaseRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	staffID, _ := auth.GetStaffID(c)

	p, err := h.service.Record(c.Request.Context(), c.Param("id"), staffID, req)
	if err != nil {
		writeError(c, err, "record payment")
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      List a member's payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Member ID"
// @Success      200 {array} payment.Payment
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/payments [get]
func (h *Handler) List(c *gin.Context) {
	payments, err := h.service.ListByMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "fetch payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// @Summary      Membership status
// @Description  Gym state (none, active, expired) and coach activity as of today in the gym's timezone
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Member ID"
// @Success      200 {object} membership.Status
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/status [get]
func (h *Handler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "compute status")
		return
	}

	c.JSON(http.StatusOK, status)
}
