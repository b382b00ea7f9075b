package ports

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción; los repos del Store quedan atados a ella.
// Si fn devuelve error se hace rollback y nada queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Store) error) error
}
