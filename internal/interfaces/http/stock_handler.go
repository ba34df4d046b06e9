package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/inventory"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// StockHandler maneja el ledger de inventario (stok barang).
type StockHandler struct {
	uc *inventory.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar o buscar artículos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Subcadena en nombre o marca"
// @Success      200  {object}  dto.StockItemListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), GetRole(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetRole(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "artículo no encontrado")
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Buscar artículo por clave compuesta (autocompletar precio en el formulario de venta)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        name   query  string  true   "Nombre"
// @Param        brand  query  string  true   "Marca"
// @Param        size   query  string  true   "Tamaño o empaque"
// @Param        color  query  string  false  "Color"
// @Success      200    {object}  dto.StockItemResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/stock/lookup [get]
func (h *StockHandler) Lookup(c *fiber.Ctx) error {
	key := entity.ItemKey{Name: c.Query("name"), Brand: c.Query("brand"), Size: c.Query("size"), Color: c.Query("color")}
	out, err := h.uc.FindByKey(c.Context(), GetRole(c), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertStockItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.UpsertStockItemRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Upsert(c.Context(), GetRole(c), "", in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar artículo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpsertStockItemRequest  true  "Datos del artículo"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpsertStockItemRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Upsert(c.Context(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         stock
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajustar cantidad por clave compuesta (reposición o corrección)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Clave y delta"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	key := entity.ItemKey{Name: in.Name, Brand: in.Brand, Size: in.Size, Color: in.Color}
	out, err := h.uc.AdjustQuantity(c.Context(), key, in.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
