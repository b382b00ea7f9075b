package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Fields     map[string]string   `json:"fields,omitempty"`
	Shortfalls []ShortfallResponse `json:"shortfalls,omitempty"`
}

// ShortfallResponse faltante de stock reportado al rechazar un lote o una venta.
type ShortfallResponse struct {
	Kind      string          `json:"kind"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Available decimal.Decimal `json:"available"`
	Required  decimal.Decimal `json:"required"`
	Missing   decimal.Decimal `json:"missing"`
}

// ToShortfalls mapea los faltantes de dominio a la salida HTTP.
func ToShortfalls(list []domain.Shortfall) []ShortfallResponse {
	if len(list) == 0 {
		return nil
	}
	out := make([]ShortfallResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ShortfallResponse{
			Kind:      string(s.Kind),
			ID:        s.ID,
			Name:      s.Name,
			Available: s.Available,
			Required:  s.Required,
			Missing:   s.Missing(),
		})
	}
	return out
}
