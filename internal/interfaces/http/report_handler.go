package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/application/report"
	"github.com/emmebi/gestione-ore/internal/domain"
)

// ReportHandler espone riepiloghi, statistiche ed export mensili (admin).
type ReportHandler struct {
	uc    *report.UseCase
	excel report.Exporter
	pdf   report.Exporter
}

// NewReportHandler costruisce l'handler dei report.
func NewReportHandler(uc *report.UseCase, excel, pdf report.Exporter) *ReportHandler {
	return &ReportHandler{uc: uc, excel: excel, pdf: pdf}
}

// Riepilogo godoc
// @Summary      Riepilogo ore su intervallo arbitrario
// @Tags         reports
// @Produce      json
// @Param        start        query  string  true   "data inizio YYYY-MM-DD"
// @Param        end          query  string  true   "data fine YYYY-MM-DD"
// @Param        employee_id  query  string  false  "filtro singolo dipendente"
// @Success      200  {object}  dto.RiepilogoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/riepilogo [get]
func (h *ReportHandler) Riepilogo(c *fiber.Ctx) error {
	out, err := h.uc.Riepilogo(c.Query("start"), c.Query("end"), c.Query("employee_id"))
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(out)
}

// RiepilogoMonth godoc
// @Summary      Riepilogo ore di un mese
// @Tags         reports
// @Produce      json
// @Param        year         path   int     true   "anno"
// @Param        month        path   int     true   "mese 1-12"
// @Param        employee_id  query  string  false  "filtro singolo dipendente"
// @Success      200  {object}  dto.RiepilogoResponse
// @Router       /api/admin/riepilogo/{year}/{month} [get]
func (h *ReportHandler) RiepilogoMonth(c *fiber.Ctx) error {
	year, month, err := yearMonthParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "anno o mese non validi"})
	}
	out, err := h.uc.RiepilogoMonth(year, month, c.Query("employee_id"))
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(out)
}

// ExportMonth godoc
// @Summary      Export mensile in Excel o PDF
// @Tags         reports
// @Produce      application/octet-stream
// @Param        year         path   int     true   "anno"
// @Param        month        path   int     true   "mese 1-12"
// @Param        format       query  string  false  "excel (default) | pdf"
// @Param        employee_id  query  string  false  "filtro singolo dipendente"
// @Success      200  {file}  binary
// @Router       /api/admin/export/{year}/{month} [get]
func (h *ReportHandler) ExportMonth(c *fiber.Ctx) error {
	year, month, err := yearMonthParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "anno o mese non validi"})
	}
	exp := h.excel
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	switch c.Query("format", "excel") {
	case "excel":
	case "pdf":
		exp = h.pdf
		contentType = "application/pdf"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato non supportato (excel | pdf)"})
	}
	fileName, content, err := h.uc.ExportMonth(exp, year, month, c.Query("employee_id"))
	if err != nil {
		return h.reportError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(content)
}

// Statistics godoc
// @Summary      Statistiche dei registri
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StatisticsResponse
// @Router       /api/admin/statistics [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.Statistics()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func (h *ReportHandler) reportError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "intervallo date non valido"})
	}
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dipendente non trovato"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func yearMonthParams(c *fiber.Ctx) (year, month int, err error) {
	year, err = strconv.Atoi(c.Params("year"))
	if err != nil {
		return 0, 0, err
	}
	month, err = strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, strconv.ErrRange
	}
	return year, month, nil
}
