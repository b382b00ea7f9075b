package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
)

// ProcessHandler procesos productivos con costo por hora.
type ProcessHandler struct {
	uc *usecase.ProcessUseCase
}

func NewProcessHandler(uc *usecase.ProcessUseCase) *ProcessHandler {
	return &ProcessHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proceso
// @Tags         processes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProcessRequest  true  "Datos del proceso"
// @Success      201   {object}  dto.ProcessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/processes [post]
func (h *ProcessHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProcessRequest
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
// @Summary      Obtener proceso
// @Tags         processes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proceso"
// @Success      200  {object}  dto.ProcessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/processes/{id} [get]
func (h *ProcessHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar procesos
// @Tags         processes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProcessListResponse
// @Router       /api/processes [get]
func (h *ProcessHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proceso
// @Tags         processes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proceso"
// @Param        body  body  dto.UpdateProcessRequest  true  "Cambios"
// @Success      200   {object}  dto.ProcessResponse
// @Router       /api/processes/{id} [put]
func (h *ProcessHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProcessRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proceso
// @Tags         processes
// @Security     Bearer
// @Param        id   path  string  true  "ID del proceso"
// @Success      204
// @Router       /api/processes/{id} [delete]
func (h *ProcessHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
