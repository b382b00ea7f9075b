package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/production"
)

// BatchHandler planificación y ejecución de lotes de producción.
type BatchHandler struct {
	uc *production.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *production.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Plan godoc
// @Summary      Planificar lote
// @Description  Consumo de insumos, horas por proceso, costo del lote y faltantes. No modifica nada.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true  "ID del producto"
// @Param        units  query  int     true  "Unidades a producir"
// @Success      200    {object}  dto.BatchPlanResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/products/{id}/batches/plan [get]
func (h *BatchHandler) Plan(c *fiber.Ctx) error {
	units := int64(c.QueryInt("units", 0))
	out, err := h.uc.PlanBatch(c.UserContext(), GetCompanyID(c), c.Params("id"), units)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Execute godoc
// @Summary      Ejecutar lote
// @Description  Descuenta insumos y suma unidades al producto. Con faltantes responde 409 y no escribe nada.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ExecuteBatchRequest  true  "Unidades"
// @Success      201   {object}  dto.BatchResultResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/batches [post]
func (h *BatchHandler) Execute(c *fiber.Ctx) error {
	var in dto.ExecuteBatchRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ExecuteBatch(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Units, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
