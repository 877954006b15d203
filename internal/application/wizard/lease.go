package wizard

import (
	"strings"

	"github.com/jhoicas/billera-api/internal/application/batch"
	"github.com/jhoicas/billera-api/internal/domain"
)

// ExportLease da acceso exclusivo a la navegación del lote durante una exportación.
// Mientras exista, los mutadores de la sesión devuelven domain.ErrExportInProgress.
type ExportLease struct {
	s        *Session
	released bool
}

// BeginExport adquiere la exclusividad de exportación. Las facturas sin número
// reciben el de su posición (INV-001...) para que documento y archivo coincidan.
func (s *Session) BeginExport() (*ExportLease, error) {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		return nil, domain.ErrExportInProgress
	}
	s.exporting = true
	s.log.Debug().Msg("exportación iniciada")
	lease := &ExportLease{s: s}
	if !s.assignMissingNumbersLocked() {
		s.mu.Unlock()
		return lease, nil
	}
	s.unlockAndNotify()
	return lease, nil
}

// assignMissingNumbersLocked numera las facturas del lote y la activa que no tengan
// número. Devuelve true si cambió la factura activa.
func (s *Session) assignMissingNumbersLocked() bool {
	idx := 0
	if s.batch != nil {
		idx = s.batch.CurrentIndex
		for i := range s.batch.Invoices {
			if strings.TrimSpace(s.batch.Invoices[i].InvoiceNumber) == "" {
				s.batch.Invoices[i].InvoiceNumber = batch.NumberFor(i)
			}
		}
	}
	if strings.TrimSpace(s.active.InvoiceNumber) != "" {
		return false
	}
	next := s.active.Clone()
	next.InvoiceNumber = batch.NumberFor(idx)
	s.setActiveLocked(next)
	s.log.Info().Str("number", next.InvoiceNumber).Msg("número de factura asignado")
	return true
}

// CurrentIndex índice activo del lote (0 sin lote).
func (l *ExportLease) CurrentIndex() int {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if l.s.batch == nil {
		return 0
	}
	return l.s.batch.CurrentIndex
}

// BatchLen tamaño del lote (0 sin lote).
func (l *ExportLease) BatchLen() int {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if l.s.batch == nil {
		return 0
	}
	return l.s.batch.Len()
}

// SelectNext avanza un paso.
func (l *ExportLease) SelectNext() bool {
	moved, _ := l.s.navigate(1, true)
	return moved
}

// SelectPrevious retrocede un paso.
func (l *ExportLease) SelectPrevious() bool {
	moved, _ := l.s.navigate(-1, true)
	return moved
}

// Release libera la exclusividad. Es idempotente.
func (l *ExportLease) Release() {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if l.released {
		return
	}
	l.released = true
	l.s.exporting = false
	l.s.log.Debug().Msg("exportación finalizada")
}
