package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
)

// RecipeHandler formulación (insumos) y ruta (procesos) de un producto.
// Cada cambio recalcula el precio del producto.
type RecipeHandler struct {
	uc *usecase.RecipeUseCase
}

func NewRecipeHandler(uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// ListRecipe godoc
// @Summary      Formulación del producto
// @Tags         recipe
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.RecipeLineResponse
// @Router       /api/products/{id}/recipe [get]
func (h *RecipeHandler) ListRecipe(c *fiber.Ctx) error {
	out, err := h.uc.ListRecipe(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddRecipeLine godoc
// @Summary      Agregar insumo a la formulación
// @Tags         recipe
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AddRecipeLineRequest  true  "Línea"
// @Success      201   {object}  dto.RecipeLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [post]
func (h *RecipeHandler) AddRecipeLine(c *fiber.Ctx) error {
	var in dto.AddRecipeLineRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddRecipeLine(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRecipeLine godoc
// @Summary      Cambiar línea de formulación
// @Tags         recipe
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del producto"
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateRecipeLineRequest  true  "Cambios"
// @Success      200     {object}  dto.RecipeLineResponse
// @Router       /api/products/{id}/recipe/{lineId} [put]
func (h *RecipeHandler) UpdateRecipeLine(c *fiber.Ctx) error {
	var in dto.UpdateRecipeLineRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateRecipeLine(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveRecipeLine godoc
// @Summary      Quitar línea de formulación
// @Tags         recipe
// @Security     Bearer
// @Param        id      path  string  true  "ID del producto"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      204
// @Router       /api/products/{id}/recipe/{lineId} [delete]
func (h *RecipeHandler) RemoveRecipeLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveRecipeLine(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRouting godoc
// @Summary      Ruta de producción del producto
// @Tags         routing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.RoutingStepResponse
// @Router       /api/products/{id}/routing [get]
func (h *RecipeHandler) ListRouting(c *fiber.Ctx) error {
	out, err := h.uc.ListRouting(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddRoutingStep godoc
// @Summary      Agregar proceso a la ruta
// @Tags         routing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AddRoutingStepRequest  true  "Paso"
// @Success      201   {object}  dto.RoutingStepResponse
// @Router       /api/products/{id}/routing [post]
func (h *RecipeHandler) AddRoutingStep(c *fiber.Ctx) error {
	var in dto.AddRoutingStepRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddRoutingStep(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRoutingStep godoc
// @Summary      Cambiar minutos de un paso
// @Tags         routing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del producto"
// @Param        stepId  path  string  true  "ID del paso"
// @Param        body    body  dto.UpdateRoutingStepRequest  true  "Minutos"
// @Success      200     {object}  dto.RoutingStepResponse
// @Router       /api/products/{id}/routing/{stepId} [put]
func (h *RecipeHandler) UpdateRoutingStep(c *fiber.Ctx) error {
	var in dto.UpdateRoutingStepRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateRoutingStep(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("stepId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveRoutingStep godoc
// @Summary      Quitar paso de la ruta
// @Tags         routing
// @Security     Bearer
// @Param        id      path  string  true  "ID del producto"
// @Param        stepId  path  string  true  "ID del paso"
// @Success      204
// @Router       /api/products/{id}/routing/{stepId} [delete]
func (h *RecipeHandler) RemoveRoutingStep(c *fiber.Ctx) error {
	if err := h.uc.RemoveRoutingStep(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("stepId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
