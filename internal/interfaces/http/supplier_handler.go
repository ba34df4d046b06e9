package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/supplier"
)

// SupplierHandler maneja los pedidos a proveedores.
type SupplierHandler struct {
	uc *supplier.UseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *supplier.UseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// List godoc
// @Summary      Listar o buscar pedidos de proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Subcadena en nombre o marca del artículo"
// @Success      200  {object}  dto.SupplierOrderListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.SupplierOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "pedido no encontrado")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar pedido de proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertSupplierOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.SupplierOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.UpsertSupplierOrderRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Upsert(c.Context(), "", in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar pedido de proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpsertSupplierOrderRequest  true  "Datos del pedido"
// @Success      200   {object}  dto.SupplierOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpsertSupplierOrderRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Upsert(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Bills godoc
// @Summary      Tagihan del mes y total histórico
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "YYYY-MM"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/suppliers/bills [get]
func (h *SupplierHandler) Bills(c *fiber.Ctx) error {
	month := c.Query("month")
	monthly, err := h.uc.SumBillsForMonth(c.Context(), month)
	if err != nil {
		return writeError(c, err)
	}
	total, err := h.uc.TotalBills(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"month": month, "month_bills": monthly, "total_bills": total})
}
