package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/huseyintonguc/DEPO/internal/application/dto"
	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/export"
)

// ReportHandler serves the report page: filtered movement reports, the
// net-stock view and their downloadable exports.
type ReportHandler struct {
	reports *appinv.ReportUseCase
	pdf     *export.PDFGenerator
}

// NewReportHandler builds the handler.
func NewReportHandler(reports *appinv.ReportUseCase, pdf *export.PDFGenerator) *ReportHandler {
	return &ReportHandler{reports: reports, pdf: pdf}
}

func (h *ReportHandler) parseQuery(c *fiber.Ctx) (*dto.ReportQuery, time.Time, time.Time, bool) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_QUERY", Message: "query parameters could not be parsed",
		})
		return nil, time.Time{}, time.Time{}, false
	}
	if err := validate.Struct(&q); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "baslangic and bitis must be YYYY-MM-DD",
		})
		return nil, time.Time{}, time.Time{}, false
	}
	start, _ := time.Parse("2006-01-02", q.Start)
	end, _ := time.Parse("2006-01-02", q.End)
	return &q, start, end, true
}

// Movements godoc
// @Summary      Filtered movement report with totals
// @Tags         reports
// @Produce      json
// @Param        baslangic  query  string  true   "Start date (YYYY-MM-DD), inclusive"
// @Param        bitis      query  string  true   "End date (YYYY-MM-DD), inclusive"
// @Param        urun_kodu  query  string  false  "Restrict to one product"
// @Success      200  {object}  dto.MovementReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	q, start, end, ok := h.parseQuery(c)
	if !ok {
		return nil
	}

	report, err := h.reports.Movements(c.Context(), start, end, q.ProductCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementReportResponse{
		Items:    dto.NewMovementResponses(report.Movements),
		Summary:  dto.NewSummaryResponse(report.Summary),
		Warnings: loadWarnings(report.Load),
	})
}

// ExportMovements godoc
// @Summary      Download a filtered movement report
// @Tags         reports
// @Produce      application/octet-stream
// @Param        baslangic  query  string  true   "Start date (YYYY-MM-DD), inclusive"
// @Param        bitis      query  string  true   "End date (YYYY-MM-DD), inclusive"
// @Param        urun_kodu  query  string  false  "Restrict to one product"
// @Param        format     query  string  false  "xlsx (default), csv or pdf"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements/export [get]
func (h *ReportHandler) ExportMovements(c *fiber.Ctx) error {
	q, start, end, ok := h.parseQuery(c)
	if !ok {
		return nil
	}

	report, err := h.reports.Movements(c.Context(), start, end, q.ProductCode)
	if err != nil {
		return respondError(c, err)
	}

	title := fmt.Sprintf("Depo Raporu %s - %s", q.Start, q.End)
	return h.sendMovementExport(c, title, report.Movements, report.Summary)
}

// Stock godoc
// @Summary      Net stock per product
// @Tags         reports
// @Produce      json
// @Param        katalog  query  bool  false  "Include catalog products without movements as zero rows"
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	levels, err := h.reports.StockLevels(c.Context(), c.QueryBool("katalog"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockLevelResponses(levels))
}

// ExportStock godoc
// @Summary      Download the net-stock view
// @Tags         reports
// @Produce      application/octet-stream
// @Param        katalog  query  bool    false  "Include zero rows"
// @Param        format   query  string  false  "xlsx (default), csv or pdf"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/export [get]
func (h *ReportHandler) ExportStock(c *fiber.Ctx) error {
	levels, err := h.reports.StockLevels(c.Context(), c.QueryBool("katalog"))
	if err != nil {
		return respondError(c, err)
	}
	return h.sendStockExport(c, "Stok Durumu", levels)
}

func (h *ReportHandler) sendMovementExport(c *fiber.Ctx, title string, movements []entity.Movement, summary dominv.Summary) error {
	var (
		data []byte
		err  error
	)
	format := c.Query("format", "xlsx")
	switch format {
	case "xlsx":
		data, err = export.MovementsXLSX(movements)
	case "csv":
		data, err = export.MovementsCSV(movements)
	case "pdf":
		data, err = h.pdf.MovementReportPDF(title, movements, summary)
	default:
		return badFormat(c)
	}
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "rapor", format, data)
}

func (h *ReportHandler) sendStockExport(c *fiber.Ctx, title string, levels []entity.StockLevel) error {
	var (
		data []byte
		err  error
	)
	format := c.Query("format", "xlsx")
	switch format {
	case "xlsx":
		data, err = export.StockXLSX(levels)
	case "csv":
		data, err = export.StockCSV(levels)
	case "pdf":
		data, err = h.pdf.StockReportPDF(title, levels)
	default:
		return badFormat(c)
	}
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "stok", format, data)
}

var exportContentTypes = map[string]string{
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":  "text/csv; charset=utf-8",
	"pdf":  "application/pdf",
}

func badFormat(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "format must be xlsx, csv or pdf",
	})
}

func sendAttachment(c *fiber.Ctx, name, format string, data []byte) error {
	c.Set(fiber.HeaderContentType, exportContentTypes[format])
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.%s", name, format))
	return c.Send(data)
}
