package render

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/billera-api/internal/application/export"
	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// Surface es la única superficie de render: muestra una factura a la vez.
// Mount encola la nueva versión y un worker la renderiza; Settle espera a que
// no quede nada pendiente.
type Surface struct {
	renderer *HTMLRenderer
	log      zerolog.Logger

	mu        sync.Mutex
	frame     export.Frame
	next      *entity.InvoiceData
	requested uint64
	mounted   bool
	done      chan struct{} // se cierra cuando no hay render pendiente
	wake      chan struct{}
	stop      chan struct{}
	closeOnce sync.Once
}

// NewSurface arranca el worker de render. Llamar Close al terminar.
func NewSurface(renderer *HTMLRenderer, log zerolog.Logger) *Surface {
	s := &Surface{
		renderer: renderer,
		log:      log.With().Str("component", "surface").Logger(),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	go s.loop()
	return s
}

// Mount monta una versión de la factura. Versiones anteriores a la última se ignoran.
func (s *Surface) Mount(version uint64, inv entity.InvoiceData) {
	s.mu.Lock()
	if s.mounted && version < s.requested {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.requested = version
	s.next = &inv
	if s.done == nil {
		s.done = make(chan struct{})
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Current devuelve el último frame renderizado.
func (s *Surface) Current() export.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Settle bloquea hasta que la última versión montada está renderizada.
func (s *Surface) Settle(ctx context.Context) error {
	s.mu.Lock()
	ch := s.done
	s.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close detiene el worker.
func (s *Surface) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
}

func (s *Surface) loop() {
	for {
		select {
		case <-s.stop:
			return
		case <-s.wake:
		}
		s.drain()
	}
}

func (s *Surface) drain() {
	for {
		s.mu.Lock()
		job, version := s.next, s.requested
		if job == nil {
			if s.done != nil {
				close(s.done)
				s.done = nil
			}
			s.mu.Unlock()
			return
		}
		s.next = nil
		s.mu.Unlock()

		markup, err := s.renderer.Render(*job)
		if err != nil {
			s.log.Error().Err(err).Uint64("version", version).Msg("render de factura")
		}

		s.mu.Lock()
		s.frame = export.Frame{Invoice: *job, Markup: markup, Version: version}
		s.mu.Unlock()
	}
}
