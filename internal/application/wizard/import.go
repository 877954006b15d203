package wizard

import (
	"github.com/jhoicas/billera-api/internal/application/importer"
	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
)

// ImportResult resultado de confirmar una importación CSV.
type ImportResult struct {
	ClientUpdated bool
	Added         []entity.LineItem
	Skipped       int
	Groups        []string
}

// BeginImport pasa el importador a Mapping con el CSV recibido.
func (s *Session) BeginImport(raw []byte) (importer.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.importer.Begin(raw)
}

// ImportPreview devuelve el mapeo vigente de la importación en curso.
func (s *Session) ImportPreview() (importer.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.importer.Preview()
}

// SetImportMapping reasigna el campo de una columna por índice.
func (s *Session) SetImportMapping(col int, f importer.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.importer.SetMapping(col, f)
}

// SetImportMappingByHeader reasigna el campo de una columna por encabezado.
func (s *Session) SetImportMappingByHeader(header string, f importer.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.importer.SetMappingByHeader(header, f)
}

// CancelImport descarta la importación en curso sin tocar la factura.
func (s *Session) CancelImport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importer.Cancel()
}

// ConfirmImport materializa la importación: primero un único UpdateClientInfo
// (si hay campos de cliente) y luego un AddLineItem por fila, todo bajo el mismo lock.
func (s *Session) ConfirmImport() (ImportResult, error) {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		return ImportResult{}, domain.ErrExportInProgress
	}
	plan, err := s.importer.Confirm()
	if err != nil {
		s.mu.Unlock()
		return ImportResult{}, err
	}

	res := ImportResult{Skipped: plan.Skipped, Groups: plan.Groups}
	next := s.active
	if plan.Client != nil {
		next = invoice.UpdateClientInfo(next, *plan.Client)
		res.ClientUpdated = true
	}
	for _, in := range plan.Items {
		next = invoice.AddLineItem(next, in, s.newID())
		res.Added = append(res.Added, next.LineItems[len(next.LineItems)-1])
	}
	if !res.ClientUpdated && len(res.Added) == 0 {
		s.mu.Unlock()
		return res, nil
	}
	s.setActiveLocked(next)
	s.unlockAndNotify()
	return res, nil
}
