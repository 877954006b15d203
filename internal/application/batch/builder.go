// Package batch construye lotes de facturas a partir de un perfil de negocio compartido.
package batch

import (
	"fmt"

	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
)

// Entry datos propios de una factura del lote.
type Entry struct {
	Client    entity.ClientInfoPatch
	LineItems []entity.LineItemInput
}

// NumberFor número de factura de la posición index (base 0): INV-001, INV-002...
func NumberFor(index int) string {
	return fmt.Sprintf("INV-%03d", index+1)
}

// Build materializa una factura por entrada. Hereda de shared el emisor, plantilla,
// moneda, idioma, términos, notas, fechas, columnas y agrupación por categoría.
// El cliente parte de un ClientInfo vacío; las líneas reciben ids nuevos y totales.
func Build(shared entity.InvoiceData, entries []Entry, newID func() string) []entity.InvoiceData {
	out := make([]entity.InvoiceData, 0, len(entries))
	for i, e := range entries {
		inv := shared.Clone()
		inv.InvoiceNumber = NumberFor(i)
		inv.ClientInfo = e.Client.Apply(entity.ClientInfo{})
		inv.LineItems = make([]entity.LineItem, 0, len(e.LineItems))
		for _, in := range e.LineItems {
			inv.LineItems = append(inv.LineItems, invoice.NewLineItem(in, newID()))
		}
		out = append(out, invoice.Recalculate(inv))
	}
	return out
}
