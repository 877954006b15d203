package entity

// ColumnVisibility columnas visibles de la tabla de líneas.
// Description y Total siempre son visibles.
type ColumnVisibility struct {
	Description bool
	Quantity    bool
	UnitPrice   bool
	TaxRate     bool
	Discount    bool
	Category    bool
	Total       bool
}

// DefaultColumnVisibility todas visibles excepto categoría.
func DefaultColumnVisibility() ColumnVisibility {
	return ColumnVisibility{
		Description: true,
		Quantity:    true,
		UnitPrice:   true,
		TaxRate:     true,
		Discount:    true,
		Category:    false,
		Total:       true,
	}
}

// Effective devuelve la visibilidad que deben usar los renderizadores:
// categoría solo cuenta si alguna línea tiene categoría.
func (c ColumnVisibility) Effective(hasCategories bool) ColumnVisibility {
	c.Description = true
	c.Total = true
	if !hasCategories {
		c.Category = false
	}
	return c
}

// ColumnVisibilityPatch actualización parcial. Description y Total no se pueden desactivar.
type ColumnVisibilityPatch struct {
	Description *bool
	Quantity    *bool
	UnitPrice   *bool
	TaxRate     *bool
	Discount    *bool
	Category    *bool
	Total       *bool
}

// Apply aplica el patch ignorando cualquier intento de ocultar descripción o total.
func (p ColumnVisibilityPatch) Apply(c ColumnVisibility) ColumnVisibility {
	if p.Quantity != nil {
		c.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		c.UnitPrice = *p.UnitPrice
	}
	if p.TaxRate != nil {
		c.TaxRate = *p.TaxRate
	}
	if p.Discount != nil {
		c.Discount = *p.Discount
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	c.Description = true
	c.Total = true
	return c
}
