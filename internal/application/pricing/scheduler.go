package pricing

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler corre el barrido de consistencia de precios según una expresión cron
// de 5 campos (min, hora, día, mes, día de semana).
type Scheduler struct {
	cron    *cron.Cron
	p       *Propagator
	log     zerolog.Logger
	timeout time.Duration
}

// NewScheduler registra el barrido. Devuelve error si la expresión es inválida.
func NewScheduler(spec string, p *Propagator, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		p:       p,
		log:     log,
		timeout: 10 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start inicia el cron en segundo plano.
func (s *Scheduler) Start() {
	s.log.Info().Msg("iniciando barrido programado de precios")
	s.cron.Start()
}

// Stop detiene el cron y espera el barrido en curso o el fin de ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info().Msg("deteniendo barrido programado de precios")
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.p.RecalculateAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Int("products", n).Msg("barrido de precios con errores")
		return
	}
	s.log.Info().Int("products", n).Dur("elapsed", time.Since(start)).Msg("barrido de precios completado")
}
