// Package metrics expone contadores Prometheus de producción, ventas y
// repricing, más las métricas HTTP de la API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/mipymes-api/internal/application/ports"
)

const namespace = "mipymes"

var _ ports.Recorder = (*Registry)(nil)

// Registry agrupa los colectores en un registro propio (no el global), así
// cada instancia y cada test arrancan en cero.
type Registry struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	batches         prometheus.Counter
	batchUnits      prometheus.Counter
	batchesRejected prometheus.Counter

	sales         prometheus.Counter
	salesAmount   prometheus.Counter
	salesRejected prometheus.Counter

	repriced *prometheus.CounterVec
}

// New registra todos los colectores. Con withRuntime agrega los de proceso y Go.
func New(withRuntime bool) *Registry {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	f := promauto.With(reg)

	return &Registry{
		reg: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		batches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_executed_total",
			Help:      "Lotes de producción ejecutados",
		}),
		batchUnits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_units_produced_total",
			Help:      "Unidades producidas por lotes",
		}),
		batchesRejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_rejected_total",
			Help:      "Lotes rechazados por insumos insuficientes",
		}),
		sales: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_registered_total",
			Help:      "Ventas registradas",
		}),
		salesAmount: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_amount_total",
			Help:      "Suma de totales de venta (en la moneda de cada mipyme)",
		}),
		salesRejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_rejected_total",
			Help:      "Ventas rechazadas por stock insuficiente",
		}),
		repriced: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_repriced_total",
			Help:      "Productos recalculados por disparador",
		}, []string{"trigger"}),
	}
}

func (r *Registry) BatchExecuted(units int64) {
	r.batches.Inc()
	r.batchUnits.Add(float64(units))
}

func (r *Registry) BatchRejected() { r.batchesRejected.Inc() }

func (r *Registry) SaleRegistered(total float64) {
	r.sales.Inc()
	if total > 0 {
		r.salesAmount.Add(total)
	}
}

func (r *Registry) SaleRejected() { r.salesRejected.Inc() }

func (r *Registry) ProductsRepriced(trigger string, n int) {
	if n <= 0 {
		return
	}
	r.repriced.WithLabelValues(trigger).Add(float64(n))
}

// Gatherer expone el registro para tests y exportadores.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Middleware mide cada petición. Usa la ruta registrada (no la URL) para no
// explotar la cardinalidad con ids.
func (r *Registry) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		r.httpRequests.WithLabelValues(labels...).Inc()
		r.httpDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics en formato de exposición.
func (r *Registry) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}
