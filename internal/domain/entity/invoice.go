package entity

import "github.com/shopspring/decimal"

// Formato de fecha de las facturas (ISO 8601, solo fecha).
const DateLayout = "2006-01-02"

// InvoiceData es la raíz del agregado: la factura activa de la sesión del asistente.
// Subtotal, DiscountTotal, TaxTotal y GrandTotal son derivados de LineItems.
type InvoiceData struct {
	InvoiceNumber      string
	InvoiceDate        string // YYYY-MM-DD
	DueDate            string // YYYY-MM-DD
	Currency           string // ISO 4217
	Language           string
	Locale             string // BCP 47, usado para formatear montos
	Notes              string
	Terms              string
	Template           *InvoiceTemplate // nil hasta elegir plantilla
	BusinessInfo       BusinessInfo
	ClientInfo         ClientInfo
	LineItems          []LineItem
	ColumnVisibility   ColumnVisibility
	Subtotal           decimal.Decimal
	DiscountTotal      decimal.Decimal
	TaxTotal           decimal.Decimal
	GrandTotal         decimal.Decimal
	SeparateCategories bool
}

// Clone devuelve una copia profunda (líneas, logo y plantilla incluidos).
func (d InvoiceData) Clone() InvoiceData {
	out := d
	if d.LineItems != nil {
		out.LineItems = make([]LineItem, len(d.LineItems))
		copy(out.LineItems, d.LineItems)
	}
	if d.Template != nil {
		t := *d.Template
		out.Template = &t
	}
	out.BusinessInfo = d.BusinessInfo.Clone()
	return out
}

// HasCategories indica si alguna línea tiene categoría.
func (d InvoiceData) HasCategories() bool {
	for _, it := range d.LineItems {
		if it.Category != "" {
			return true
		}
	}
	return false
}

// FindLineItem devuelve el índice de la línea con el id dado o -1.
func (d InvoiceData) FindLineItem(id string) int {
	for i, it := range d.LineItems {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// InvoiceDetailsPatch actualización parcial de los datos generales de la factura.
// Campos nil no se modifican.
type InvoiceDetailsPatch struct {
	InvoiceNumber *string
	InvoiceDate   *string
	DueDate       *string
	Currency      *string
	Language      *string
	Locale        *string
	Notes         *string
	Terms         *string
}

// InvoiceBatch lote de facturas que comparten perfil de negocio.
// Existe solo cuando hay dos o más facturas; 0 <= CurrentIndex < len(Invoices).
type InvoiceBatch struct {
	CurrentIndex int
	Invoices     []InvoiceData
}

// Clone copia profunda del lote.
func (b InvoiceBatch) Clone() InvoiceBatch {
	out := InvoiceBatch{CurrentIndex: b.CurrentIndex, Invoices: make([]InvoiceData, len(b.Invoices))}
	for i, inv := range b.Invoices {
		out.Invoices[i] = inv.Clone()
	}
	return out
}

// Len cantidad de facturas del lote.
func (b InvoiceBatch) Len() int { return len(b.Invoices) }
