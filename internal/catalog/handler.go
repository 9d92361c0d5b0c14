package catalog

import (
	"errors"
	"net/http"

	"kusgan/internal/api"
	"kusgan/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List products
// @Description  Price list. Admins may pass all=true to include retired products.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        all  query  bool  false  "Include inactive products"
// @Success      200 {array} catalog.Product
// @Failure      500 {object} api.ErrorResponse
// @Router       /products [get]
func (h *Handler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		logger.Error("Failed to list products", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary      Create a product
// @Tags         admin,products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreateProductRequest true "Product payload"
// @Success      201 {object} catalog.Product
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrLabelExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Product label already exists"})
		case errors.Is(err, ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create product", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      Update a product
// @Tags         admin,products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        label   path string true "Product label"
// @Param        request body catalog.UpdateProductRequest true "Fields to change"
// @Success      200 {object} catalog.Product
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/products/{label} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateProductRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("label"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Product not found"})
		case errors.Is(err, ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update product", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}
