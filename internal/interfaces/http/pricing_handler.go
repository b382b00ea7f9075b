package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
)

type tenantRecalculator interface {
	RecalculateTenant(ctx context.Context, tenantID string) (int, error)
}

// PricingHandler recálculo de precios bajo demanda.
type PricingHandler struct {
	prices tenantRecalculator
}

func NewPricingHandler(prices tenantRecalculator) *PricingHandler {
	return &PricingHandler{prices: prices}
}

// Recalculate godoc
// @Summary      Recalcular todos los productos de la mipyme
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecalculateResponse
// @Router       /api/pricing/recalculate [post]
func (h *PricingHandler) Recalculate(c *fiber.Ctx) error {
	n, err := h.prices.RecalculateTenant(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RecalculateResponse{Products: n})
}
