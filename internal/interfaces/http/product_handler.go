package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huseyintonguc/DEPO/internal/application/dto"
	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
)

// ProductHandler serves the read-only product catalog.
type ProductHandler struct {
	catalog *appinv.CatalogUseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(catalog *appinv.CatalogUseCase) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List godoc
// @Summary      Product catalog
// @Tags         products
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{Code: p.Code, Name: p.Name})
	}
	return c.JSON(out)
}
