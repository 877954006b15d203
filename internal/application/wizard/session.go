// Package wizard contiene el controlador de la sesión del asistente de facturación:
// único dueño de la factura activa, del lote y de la importación en curso.
package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/billera-api/internal/application/importer"
	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
)

// Listener recibe cada nueva versión de la factura activa, en orden de versión.
type Listener func(version uint64, inv entity.InvoiceData)

// Snapshot estado observable de la sesión.
type Snapshot struct {
	Invoice     entity.InvoiceData
	Version     uint64
	BatchIndex  int // -1 sin lote
	BatchSize   int
	ImportState importer.State
	Exporting   bool
}

// Session es segura para uso concurrente. Los mutadores son atómicos respecto al modelo
// y se rechazan con domain.ErrExportInProgress mientras hay una exportación activa.
type Session struct {
	mu        sync.Mutex
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
	defaults  invoice.Defaults
	active    entity.InvoiceData
	batch     *entity.InvoiceBatch
	importer  *importer.Engine
	exporting bool
	version   uint64
	listeners []Listener
}

// Option configura la sesión.
type Option func(*Session)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator reemplaza el generador de ids de línea (tests).
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// NewSession crea la sesión con una factura por defecto.
func NewSession(defaults invoice.Defaults, log zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		log:      log.With().Str("component", "wizard").Logger(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		defaults: defaults,
		importer: importer.NewEngine(log),
	}
	for _, o := range opts {
		o(s)
	}
	s.active = invoice.New(s.now(), s.defaults)
	return s
}

// OnActiveChange registra un listener y le entrega de inmediato la versión actual.
func (s *Session) OnActiveChange(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	version, inv := s.version, s.active.Clone()
	s.mu.Unlock()
	l(version, inv)
}

// Invoice devuelve una copia de la factura activa.
func (s *Session) Invoice() entity.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}

// Snapshot devuelve el estado completo de la sesión.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Invoice:     s.active.Clone(),
		Version:     s.version,
		BatchIndex:  -1,
		ImportState: s.importer.State(),
		Exporting:   s.exporting,
	}
	if s.batch != nil {
		snap.BatchIndex = s.batch.CurrentIndex
		snap.BatchSize = s.batch.Len()
	}
	return snap
}

// Batch devuelve una copia del lote; ok=false si no hay lote.
func (s *Session) Batch() (entity.InvoiceBatch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return entity.InvoiceBatch{}, false
	}
	return s.batch.Clone(), true
}

// mutate aplica fn bajo el lock y notifica fuera de él.
func (s *Session) mutate(fn func(entity.InvoiceData) (entity.InvoiceData, error)) error {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		return domain.ErrExportInProgress
	}
	next, err := fn(s.active)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.setActiveLocked(next)
	s.unlockAndNotify()
	return nil
}

func (s *Session) setActiveLocked(inv entity.InvoiceData) {
	s.active = inv
	s.version++
}

// unlockAndNotify libera el lock y avisa a los listeners con la versión vigente.
func (s *Session) unlockAndNotify() {
	version, inv := s.version, s.active.Clone()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(version, inv.Clone())
	}
}

// UpdateBusinessInfo actualiza parcialmente el emisor.
func (s *Session) UpdateBusinessInfo(p entity.BusinessInfoPatch) error {
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		return invoice.UpdateBusinessInfo(inv, p), nil
	})
}

// UpdateClientInfo actualiza parcialmente el cliente.
func (s *Session) UpdateClientInfo(p entity.ClientInfoPatch) error {
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		return invoice.UpdateClientInfo(inv, p), nil
	})
}

// AddLineItem valida y agrega una línea; devuelve la línea creada.
func (s *Session) AddLineItem(in entity.LineItemInput) (entity.LineItem, error) {
	if err := invoice.ValidateLineItemInput(in); err != nil {
		return entity.LineItem{}, err
	}
	var added entity.LineItem
	err := s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		next := invoice.AddLineItem(inv, in, s.newID())
		added = next.LineItems[len(next.LineItems)-1]
		return next, nil
	})
	return added, err
}

// UpdateLineItem valida y aplica un patch. domain.ErrNotFound si la línea no existe.
func (s *Session) UpdateLineItem(id string, p entity.LineItemPatch) (entity.LineItem, error) {
	if err := invoice.ValidateLineItemPatch(p); err != nil {
		return entity.LineItem{}, err
	}
	var updated entity.LineItem
	err := s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		next, found := invoice.UpdateLineItem(inv, id, p)
		if !found {
			return inv, fmt.Errorf("línea %s: %w", id, domain.ErrNotFound)
		}
		updated = next.LineItems[next.FindLineItem(id)]
		return next, nil
	})
	return updated, err
}

// RemoveLineItem elimina una línea; un id desconocido no es error.
func (s *Session) RemoveLineItem(id string) error {
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		return invoice.RemoveLineItem(inv, id), nil
	})
}

// UpdateColumnVisibility actualiza las columnas visibles.
func (s *Session) UpdateColumnVisibility(p entity.ColumnVisibilityPatch) error {
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		return invoice.UpdateColumnVisibility(inv, p), nil
	})
}

// SetTemplate selecciona una plantilla del catálogo.
func (s *Session) SetTemplate(id string) error {
	tpl, ok := invoice.FindTemplate(id)
	if !ok {
		return fmt.Errorf("%q: %w", id, domain.ErrUnknownTemplate)
	}
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		return invoice.SetTemplate(inv, tpl), nil
	})
}

// ToggleCategorySeparation invierte la agrupación por categoría.
func (s *Session) ToggleCategorySeparation() error {
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		return invoice.ToggleCategorySeparation(inv), nil
	})
}

// UpdateDetails valida y actualiza número, fechas, moneda, idioma, notas y términos.
func (s *Session) UpdateDetails(p entity.InvoiceDetailsPatch) error {
	if err := invoice.ValidateDetails(p); err != nil {
		return err
	}
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		return invoice.UpdateDetails(inv, p), nil
	})
}

// ResetInvoice restaura la factura por defecto y descarta el lote y la importación en curso.
func (s *Session) ResetInvoice() error {
	return s.mutate(func(entity.InvoiceData) (entity.InvoiceData, error) {
		s.batch = nil
		s.importer.Cancel()
		s.log.Info().Msg("factura reiniciada")
		return invoice.New(s.now(), s.defaults), nil
	})
}
