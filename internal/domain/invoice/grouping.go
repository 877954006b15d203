package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// CategoryGroup líneas de una categoría con su subtotal (suma de totales).
type CategoryGroup struct {
	Category string // vacío = sin categoría
	Items    []entity.LineItem
	Total    decimal.Decimal
}

// GroupLineItems agrupa por categoría cuando SeparateCategories está activo y hay categorías.
// Orden: el de la primera aparición; las líneas sin categoría van al final.
// En otro caso devuelve un único grupo con todas las líneas.
func GroupLineItems(inv entity.InvoiceData) []CategoryGroup {
	if !inv.SeparateCategories || !inv.HasCategories() {
		g := CategoryGroup{Items: inv.LineItems, Total: decimal.Zero}
		for _, it := range inv.LineItems {
			g.Total = g.Total.Add(it.Total)
		}
		return []CategoryGroup{g}
	}

	index := make(map[string]int)
	var groups []CategoryGroup
	var none *CategoryGroup
	for _, it := range inv.LineItems {
		if it.Category == "" {
			if none == nil {
				none = &CategoryGroup{Total: decimal.Zero}
			}
			none.Items = append(none.Items, it)
			none.Total = none.Total.Add(it.Total)
			continue
		}
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, CategoryGroup{Category: it.Category, Total: decimal.Zero})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].Total = groups[i].Total.Add(it.Total)
	}
	if none != nil {
		groups = append(groups, *none)
	}
	return groups
}
