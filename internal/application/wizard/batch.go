package wizard

import (
	"fmt"

	"github.com/jhoicas/billera-api/internal/application/batch"
	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
)

// CreateMultipleInvoices construye una factura por entrada heredando los campos
// compartidos de la factura activa. Con una sola entrada no se crea lote; con dos
// o más la primera queda activa y el lote arranca en el índice 0.
func (s *Session) CreateMultipleInvoices(entries []batch.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: se requiere al menos una factura", domain.ErrInvalidInput)
	}
	for i, e := range entries {
		for _, in := range e.LineItems {
			if err := invoice.ValidateLineItemInput(in); err != nil {
				return fmt.Errorf("factura %d: %w", i+1, err)
			}
		}
	}
	return s.mutate(func(inv entity.InvoiceData) (entity.InvoiceData, error) {
		list := batch.Build(inv, entries, s.newID)
		if len(list) == 1 {
			s.batch = nil
			return list[0], nil
		}
		s.batch = &entity.InvoiceBatch{CurrentIndex: 0, Invoices: list}
		s.log.Info().Int("invoices", len(list)).Msg("lote creado")
		return list[0].Clone(), nil
	})
}

// SelectNextInvoice avanza en el lote. En el último índice, o sin lote, no hace nada.
func (s *Session) SelectNextInvoice() (bool, error) {
	return s.navigate(1, false)
}

// SelectPreviousInvoice retrocede en el lote. En el índice 0, o sin lote, no hace nada.
func (s *Session) SelectPreviousInvoice() (bool, error) {
	return s.navigate(-1, false)
}

// navigate reemplaza la factura activa por Invoices[CurrentIndex] sin escribir
// de vuelta las ediciones hechas sobre la activa.
func (s *Session) navigate(step int, leased bool) (bool, error) {
	s.mu.Lock()
	if s.exporting && !leased {
		s.mu.Unlock()
		return false, domain.ErrExportInProgress
	}
	if s.batch == nil {
		s.mu.Unlock()
		return false, nil
	}
	idx := s.batch.CurrentIndex + step
	if idx < 0 || idx >= s.batch.Len() {
		s.mu.Unlock()
		return false, nil
	}
	s.batch.CurrentIndex = idx
	s.setActiveLocked(s.batch.Invoices[idx].Clone())
	s.unlockAndNotify()
	return true, nil
}

// CommitCurrentEditsToBatch guarda la factura activa en su posición del lote.
// domain.ErrNotFound si no hay lote.
func (s *Session) CommitCurrentEditsToBatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return domain.ErrExportInProgress
	}
	if s.batch == nil {
		return fmt.Errorf("lote: %w", domain.ErrNotFound)
	}
	s.batch.Invoices[s.batch.CurrentIndex] = s.active.Clone()
	return nil
}
