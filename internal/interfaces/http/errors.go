package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/application/dto"
	"github.com/huseyintonguc/DEPO/internal/domain"
)

// respondError maps domain and application errors to HTTP responses.
// Rejections carry no side effect; a diverged persist is reported with the
// unsynced movement so the client can retry without losing the entry.
func respondError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	var diverged *appinv.DivergedError

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity) || errors.Is(err, domain.ErrInvalidKind):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnknownProduct):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "UNKNOWN_PRODUCT", Message: "urun_kodu is not in the catalog",
		})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "INSUFFICIENT_STOCK",
			"message":   insufficient.Error(),
			"urun_kodu": insufficient.ProductCode,
			"mevcut":    insufficient.Available,
			"istenen":   insufficient.Requested,
		})
	case errors.As(err, &diverged):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    "STORE_DIVERGED",
			"message": "movement recorded locally but the remote write failed; retry or reload",
			"hareket": dto.NewMovementResponse(diverged.Movement, false),
		})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "STORE_UNAVAILABLE", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
