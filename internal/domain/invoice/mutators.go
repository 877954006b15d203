package invoice

import (
	"strings"

	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// Los mutadores reciben la factura por valor, la clonan y devuelven la nueva versión.
// Nunca modifican las líneas del llamador.

// Recalculate recalcula el total de cada línea y los agregados desde cero.
func Recalculate(inv entity.InvoiceData) entity.InvoiceData {
	out := inv.Clone()
	for i := range out.LineItems {
		out.LineItems[i].Total = ComputeItemTotal(AmountsOf(out.LineItems[i]))
	}
	return withAggregates(out)
}

func withAggregates(inv entity.InvoiceData) entity.InvoiceData {
	agg := ComputeAggregates(inv.LineItems)
	inv.Subtotal = agg.Subtotal
	inv.DiscountTotal = agg.DiscountTotal
	inv.TaxTotal = agg.TaxTotal
	inv.GrandTotal = agg.GrandTotal
	return inv
}

// UpdateBusinessInfo aplica una actualización parcial del emisor.
func UpdateBusinessInfo(inv entity.InvoiceData, p entity.BusinessInfoPatch) entity.InvoiceData {
	out := inv.Clone()
	out.BusinessInfo = p.Apply(out.BusinessInfo)
	return out
}

// UpdateClientInfo aplica una actualización parcial del cliente.
func UpdateClientInfo(inv entity.InvoiceData, p entity.ClientInfoPatch) entity.InvoiceData {
	out := inv.Clone()
	out.ClientInfo = p.Apply(out.ClientInfo)
	return out
}

// NewLineItem materializa una línea con id y total calculado.
func NewLineItem(in entity.LineItemInput, id string) entity.LineItem {
	it := entity.LineItem{
		ID:          id,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		TaxRate:     in.TaxRate,
		Discount:    in.Discount,
		Category:    strings.TrimSpace(in.Category),
	}
	it.Total = ComputeItemTotal(AmountsOf(it))
	return it
}

// AddLineItem agrega una línea al final y recalcula los agregados.
func AddLineItem(inv entity.InvoiceData, in entity.LineItemInput, id string) entity.InvoiceData {
	out := inv.Clone()
	out.LineItems = append(out.LineItems, NewLineItem(in, id))
	return withAggregates(out)
}

// UpdateLineItem aplica un patch a la línea id. found=false si no existe (sin cambios).
func UpdateLineItem(inv entity.InvoiceData, id string, p entity.LineItemPatch) (entity.InvoiceData, bool) {
	idx := inv.FindLineItem(id)
	if idx < 0 {
		return inv, false
	}
	out := inv.Clone()
	it := p.Apply(out.LineItems[idx])
	it.Category = strings.TrimSpace(it.Category)
	it.Total = ComputeItemTotal(AmountsOf(it))
	out.LineItems[idx] = it
	return withAggregates(out), true
}

// RemoveLineItem elimina la línea id. Un id desconocido no es error.
func RemoveLineItem(inv entity.InvoiceData, id string) entity.InvoiceData {
	idx := inv.FindLineItem(id)
	if idx < 0 {
		return inv
	}
	out := inv.Clone()
	items := make([]entity.LineItem, 0, len(out.LineItems)-1)
	items = append(items, out.LineItems[:idx]...)
	items = append(items, out.LineItems[idx+1:]...)
	out.LineItems = items
	return withAggregates(out)
}

// UpdateColumnVisibility aplica el patch; descripción y total quedan siempre visibles.
func UpdateColumnVisibility(inv entity.InvoiceData, p entity.ColumnVisibilityPatch) entity.InvoiceData {
	out := inv.Clone()
	out.ColumnVisibility = p.Apply(out.ColumnVisibility)
	return out
}

// SetTemplate selecciona la plantilla visual.
func SetTemplate(inv entity.InvoiceData, t entity.InvoiceTemplate) entity.InvoiceData {
	out := inv.Clone()
	out.Template = &t
	return out
}

// ToggleCategorySeparation invierte la agrupación por categoría al exportar.
func ToggleCategorySeparation(inv entity.InvoiceData) entity.InvoiceData {
	out := inv.Clone()
	out.SeparateCategories = !out.SeparateCategories
	return out
}

// UpdateDetails actualiza número, fechas, moneda, idioma, notas y términos.
func UpdateDetails(inv entity.InvoiceData, p entity.InvoiceDetailsPatch) entity.InvoiceData {
	out := inv.Clone()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&out.InvoiceNumber, p.InvoiceNumber)
	set(&out.InvoiceDate, p.InvoiceDate)
	set(&out.DueDate, p.DueDate)
	set(&out.Language, p.Language)
	set(&out.Locale, p.Locale)
	if p.Currency != nil {
		out.Currency = strings.ToUpper(strings.TrimSpace(*p.Currency))
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Terms != nil {
		out.Terms = *p.Terms
	}
	return out
}
