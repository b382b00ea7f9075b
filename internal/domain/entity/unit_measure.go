package entity

// UnitOfMeasure es global (no pertenece a una mipyme); los insumos la referencian.
type UnitOfMeasure struct {
	ID           string
	Name         string // ej. "Kilogramo", único
	Abbreviation string // ej. "kg"
}
