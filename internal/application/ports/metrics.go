package ports

// Recorder contadores de dominio (lotes, ventas, recálculos). Lo implementa el
// adaptador de métricas; NopRecorder lo sustituye cuando están desactivadas.
type Recorder interface {
	BatchExecuted(units int64)
	BatchRejected()
	SaleRegistered(total float64)
	SaleRejected()
	ProductsRepriced(trigger string, n int)
}

// NopRecorder descarta todas las mediciones.
type NopRecorder struct{}

func (NopRecorder) BatchExecuted(int64)          {}
func (NopRecorder) BatchRejected()               {}
func (NopRecorder) SaleRegistered(float64)       {}
func (NopRecorder) SaleRejected()                {}
func (NopRecorder) ProductsRepriced(string, int) {}
