package dto

import (
	"github.com/jhoicas/billera-api/internal/application/batch"
	"github.com/jhoicas/billera-api/internal/application/importer"
	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// ImportPreviewResponse encabezados, mapeo propuesto y primera fila.
type ImportPreviewResponse struct {
	Headers []string `json:"headers"`
	Mapping []string `json:"mapping"`
	Sample  []string `json:"sample"`
	Rows    int      `json:"rows"`
}

// ImportMappingRequest body para PUT /api/import/mapping.
// Se identifica la columna por índice o, si Column es nil, por encabezado.
type ImportMappingRequest struct {
	Column *int   `json:"column"`
	Header string `json:"header,omitempty"`
	Field  string `json:"field"`
}

// ImportResultResponse resultado de confirmar la importación.
type ImportResultResponse struct {
	ClientUpdated bool               `json:"client_updated"`
	Added         []LineItemResponse `json:"added"`
	Skipped       int                `json:"skipped"`
	Groups        []string           `json:"groups"`
}

// BatchEntryRequest datos propios de una factura del lote.
type BatchEntryRequest struct {
	Client    ClientInfoRequest `json:"client"`
	LineItems []LineItemRequest `json:"line_items"`
}

// CreateBatchRequest body para POST /api/batch.
type CreateBatchRequest struct {
	Entries []BatchEntryRequest `json:"entries"`
}

// BatchResponse lote completo con el índice activo.
type BatchResponse struct {
	CurrentIndex int               `json:"current_index"`
	Invoices     []InvoiceResponse `json:"invoices"`
}

// NavigationResponse resultado de next/previous.
type NavigationResponse struct {
	Moved   bool            `json:"moved"`
	Session SessionResponse `json:"session"`
}

// ExportStatusResponse estado de la exportación por lote.
type ExportStatusResponse struct {
	Generating bool `json:"generating"`
	Current    int  `json:"current"`
	Total      int  `json:"total"`
}

// ToImportPreviewResponse convierte la vista previa del importador.
func ToImportPreviewResponse(p importer.Preview) ImportPreviewResponse {
	out := ImportPreviewResponse{
		Headers: p.Headers,
		Mapping: make([]string, len(p.Mapping)),
		Sample:  p.Sample,
		Rows:    p.Rows,
	}
	for i, f := range p.Mapping {
		out.Mapping[i] = string(f)
	}
	if out.Sample == nil {
		out.Sample = []string{}
	}
	return out
}

// ToBatchResponse convierte el lote del dominio.
func ToBatchResponse(b entity.InvoiceBatch) BatchResponse {
	out := BatchResponse{CurrentIndex: b.CurrentIndex, Invoices: make([]InvoiceResponse, 0, b.Len())}
	for _, inv := range b.Invoices {
		out.Invoices = append(out.Invoices, ToInvoiceResponse(inv))
	}
	return out
}

// BatchEntries convierte el body en las entradas del lote.
func (r CreateBatchRequest) BatchEntries() []batch.Entry {
	out := make([]batch.Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		items := make([]entity.LineItemInput, 0, len(e.LineItems))
		for _, li := range e.LineItems {
			items = append(items, li.Input())
		}
		out = append(out, batch.Entry{Client: e.Client.Patch(), LineItems: items})
	}
	return out
}
