package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
)

// TaxHandler impuestos de la mipyme y su asignación a productos.
type TaxHandler struct {
	uc *usecase.TaxUseCase
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *usecase.TaxUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// Create godoc
// @Summary      Crear impuesto
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaxRequest  true  "Impuesto"
// @Success      201   {object}  dto.TaxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/taxes [post]
func (h *TaxHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaxRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener impuesto
// @Tags         taxes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del impuesto"
// @Success      200  {object}  dto.TaxResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/taxes/{id} [get]
func (h *TaxHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar impuestos
// @Tags         taxes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TaxResponse
// @Router       /api/taxes [get]
func (h *TaxHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar impuesto
// @Description  Recalcula los productos que lo tienen asignado.
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del impuesto"
// @Param        body  body  dto.UpdateTaxRequest  true  "Cambios"
// @Success      200   {object}  dto.TaxResponse
// @Router       /api/taxes/{id} [put]
func (h *TaxHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTaxRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar impuesto
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del impuesto"
// @Param        body  body  dto.SetTaxActiveRequest  true  "Estado"
// @Success      200   {object}  dto.TaxResponse
// @Router       /api/taxes/{id}/active [patch]
func (h *TaxHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetTaxActiveRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SetActive(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar impuesto
// @Tags         taxes
// @Security     Bearer
// @Param        id   path  string  true  "ID del impuesto"
// @Success      204
// @Router       /api/taxes/{id} [delete]
func (h *TaxHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByProduct godoc
// @Summary      Impuestos asignados a un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.TaxResponse
// @Router       /api/products/{id}/taxes [get]
func (h *TaxHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar impuesto a producto
// @Tags         products
// @Security     Bearer
// @Param        id     path  string  true  "ID del producto"
// @Param        taxId  path  string  true  "ID del impuesto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/taxes/{taxId} [post]
func (h *TaxHandler) Assign(c *fiber.Ctx) error {
	if err := h.uc.Assign(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("taxId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Unassign godoc
// @Summary      Quitar impuesto de producto
// @Tags         products
// @Security     Bearer
// @Param        id     path  string  true  "ID del producto"
// @Param        taxId  path  string  true  "ID del impuesto"
// @Success      204
// @Router       /api/products/{id}/taxes/{taxId} [delete]
func (h *TaxHandler) Unassign(c *fiber.Ctx) error {
	if err := h.uc.Unassign(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("taxId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
