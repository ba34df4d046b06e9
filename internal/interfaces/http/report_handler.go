package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/reporting"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler expone el análisis financiero, el histórico y las exportaciones. Solo el dueño.
type ReportHandler struct {
	uc *reporting.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen financiero
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM para la tagihan del mes (por defecto el mes actual)"
// @Success      200    {object}  dto.FinancialSummaryDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProfitByItem godoc
// @Summary      Ganancia agregada por artículo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemProfitDTO
// @Router       /api/reports/profit-by-item [get]
func (h *ReportHandler) ProfitByItem(c *fiber.Ctx) error {
	out, err := h.uc.ProfitByItem(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSnapshots godoc
// @Summary      Histórico de snapshots financieros
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SnapshotDTO
// @Router       /api/reports/snapshots [get]
func (h *ReportHandler) ListSnapshots(c *fiber.Ctx) error {
	out, err := h.uc.ListSnapshots(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TakeSnapshot godoc
// @Summary      Guardar snapshot del día (reemplaza el de la misma fecha)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TakeSnapshotRequest  false  "Fecha opcional"
// @Success      201   {object}  dto.SnapshotDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/snapshots [post]
func (h *ReportHandler) TakeSnapshot(c *fiber.Ctx) error {
	var in dto.TakeSnapshotRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.TakeSnapshot(c.Context(), in.Date)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SnapshotsCSV godoc
// @Summary      Histórico de snapshots en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /api/reports/snapshots.csv [get]
func (h *ReportHandler) SnapshotsCSV(c *fiber.Ctx) error {
	body, err := h.uc.SnapshotsCSV(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="histori_analisis_keuangan.csv"`)
	return c.Send(body)
}

// ExportWorkbook godoc
// @Summary      Exportar todos los ledgers a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/reports/export.xlsx [get]
func (h *ReportHandler) ExportWorkbook(c *fiber.Ctx) error {
	body, err := h.uc.ExportWorkbook(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="laporan_sakti.xlsx"`)
	return c.Send(body)
}
