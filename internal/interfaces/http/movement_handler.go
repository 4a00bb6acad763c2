package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/huseyintonguc/DEPO/internal/application/dto"
	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
)

// MovementHandler serves the stock-in / stock-out form: record one movement
// and list the recent tail of the ledger.
type MovementHandler struct {
	recorder *appinv.RecordMovementUseCase
	reports  *appinv.ReportUseCase
}

// NewMovementHandler builds the handler.
func NewMovementHandler(recorder *appinv.RecordMovementUseCase, reports *appinv.ReportUseCase) *MovementHandler {
	return &MovementHandler{recorder: recorder, reports: reports}
}

// Record godoc
// @Summary      Record a stock movement
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "urun_kodu, islem_turu (Giriş/Çıkış), miktar, birim, aciklama, tarih"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if !parseAndValidate(c, &in) {
		return nil
	}

	kind, err := entity.ParseMovementKind(in.Kind)
	if err != nil {
		return respondError(c, err)
	}

	var effective time.Time
	if in.EffectiveDate != "" {
		effective, err = time.Parse("2006-01-02", in.EffectiveDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "tarih must be YYYY-MM-DD",
			})
		}
	}

	movement, err := h.recorder.Record(c.Context(), appinv.RecordMovementInput{
		ProductCode:   in.ProductCode,
		Kind:          kind,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		Note:          in.Note,
		EffectiveDate: effective,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(*movement, true))
}

// List godoc
// @Summary      Recent movements, newest first
// @Tags         movements
// @Produce      json
// @Param        limit  query  int  false  "Max entries (default 50, 0 = all)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "limit must be a non-negative integer",
			})
		}
		limit = n
	}

	movements, load, err := h.reports.Recent(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementListResponse{
		Items:    dto.NewMovementResponses(movements),
		Warnings: loadWarnings(load),
	})
}

func loadWarnings(load *appinv.LoadReport) *dto.LoadWarnings {
	if load.Clean() {
		return nil
	}
	return &dto.LoadWarnings{
		SkippedRows: len(load.Skipped),
		CoercedRows: len(load.Coerced),
	}
}
