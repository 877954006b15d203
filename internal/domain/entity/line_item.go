package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea facturable. Total es derivado: nunca lo asigna el llamador.
type LineItem struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje
	Discount    decimal.Decimal // porcentaje
	Category    string          // vacío = sin categoría
	Total       decimal.Decimal
}

// LineItemInput datos para agregar una línea (sin id ni total).
type LineItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Discount    decimal.Decimal
	Category    string
}

// NewLineItemInput devuelve la línea por defecto: cantidad 1, el resto en cero.
func NewLineItemInput() LineItemInput {
	return LineItemInput{Quantity: decimal.NewFromInt(1)}
}

// LineItemPatch actualización parcial de una línea. Campos nil no se modifican.
type LineItemPatch struct {
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	TaxRate     *decimal.Decimal
	Discount    *decimal.Decimal
	Category    *string
}

// Apply aplica el patch sobre la línea (sin recalcular el total).
func (p LineItemPatch) Apply(it LineItem) LineItem {
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		it.UnitPrice = *p.UnitPrice
	}
	if p.TaxRate != nil {
		it.TaxRate = *p.TaxRate
	}
	if p.Discount != nil {
		it.Discount = *p.Discount
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	return it
}
