package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/receivable"
	"github.com/jhoicas/sakti-pos/internal/domain"
)

// ReceivableHandler maneja las cuentas por cobrar (piutang konsumen). Solo el dueño.
type ReceivableHandler struct {
	uc *receivable.UseCase
}

// NewReceivableHandler construye el handler.
func NewReceivableHandler(uc *receivable.UseCase) *ReceivableHandler {
	return &ReceivableHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas por cobrar
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReceivableListResponse
// @Router       /api/receivables [get]
func (h *ReceivableHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta por cobrar
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ReceivableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivables/{id} [get]
func (h *ReceivableHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cuenta por cobrar no encontrada")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar cuenta por cobrar
// @Tags         receivables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertReceivableRequest  true  "Datos"
// @Success      201   {object}  dto.ReceivableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receivables [post]
func (h *ReceivableHandler) Create(c *fiber.Ctx) error {
	var in dto.UpsertReceivableRequest
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
// @Summary      Editar cuenta por cobrar (abonos)
// @Tags         receivables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpsertReceivableRequest  true  "Datos"
// @Success      200   {object}  dto.ReceivableResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receivables/{id} [put]
func (h *ReceivableHandler) Update(c *fiber.Ctx) error {
	var in dto.UpsertReceivableRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Upsert(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta por cobrar por ID
// @Tags         receivables
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivables/{id} [delete]
func (h *ReceivableHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteByCustomer godoc
// @Summary      Eliminar todas las cuentas de un cliente (nombre exacto)
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        customer  query  string  true  "Nombre del cliente"
// @Success      200       {object}  dto.DeleteResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/receivables [delete]
func (h *ReceivableHandler) DeleteByCustomer(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("customer"))
	if name == "" {
		return writeError(c, domain.ErrInvalidInput)
	}
	n, err := h.uc.RemoveByCustomer(c.Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteResponse{Deleted: n})
}
