package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
)

// CompanyHandler maneja el alta de la mipyme y su configuración de producción.
type CompanyHandler struct {
	uc *usecase.MipymeUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.MipymeUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar mipyme
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMipymeRequest  true  "Datos de la mipyme"
// @Success      201   {object}  dto.MipymeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMipymeRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Settings godoc
// @Summary      Configuración de la mipyme del token
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MipymeResponse
// @Router       /api/settings [get]
func (h *CompanyHandler) Settings(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProduction godoc
// @Summary      Cambiar valores por defecto de producción
// @Description  Si cambia la ganancia por defecto se recalculan los productos que la heredan.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductionSettingsRequest  true  "Cambios"
// @Success      200   {object}  dto.MipymeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/production [put]
func (h *CompanyHandler) UpdateProduction(c *fiber.Ctx) error {
	var in dto.UpdateProductionSettingsRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateProductionSettings(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
