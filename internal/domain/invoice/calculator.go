// Package invoice contiene las reglas puras de la factura: cálculo de montos
// y mutadores InvoiceData -> InvoiceData.
package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/billera-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ItemAmounts valores de entrada del cálculo de una línea.
type ItemAmounts struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Discount  decimal.Decimal
}

// AmountsOf extrae los valores de cálculo de una línea.
func AmountsOf(it entity.LineItem) ItemAmounts {
	return ItemAmounts{Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxRate: it.TaxRate, Discount: it.Discount}
}

// Breakdown descomposición del total de una línea.
type Breakdown struct {
	Subtotal decimal.Decimal // q * p
	Discount decimal.Decimal // subtotal * d/100
	Taxable  decimal.Decimal // subtotal - descuento
	Tax      decimal.Decimal // taxable * t/100
	Total    decimal.Decimal // taxable + impuesto
}

// ItemBreakdown aplica primero el descuento y luego el impuesto sobre el monto descontado.
// Tasas fuera de [0,100] y cantidades negativas se aceptan tal cual.
func ItemBreakdown(a ItemAmounts) Breakdown {
	sub := a.Quantity.Mul(a.UnitPrice)
	disc := sub.Mul(a.Discount).Div(hundred)
	taxable := sub.Sub(disc)
	tax := taxable.Mul(a.TaxRate).Div(hundred)
	return Breakdown{
		Subtotal: sub,
		Discount: disc,
		Taxable:  taxable,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}
}

// ComputeItemTotal total de una línea: q*p - descuento + impuesto.
func ComputeItemTotal(a ItemAmounts) decimal.Decimal {
	return ItemBreakdown(a).Total
}

// Aggregates totales de la factura.
type Aggregates struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ComputeAggregates suma la descomposición de cada línea.
// El impuesto se acumula por línea, nunca desde el subtotal agregado.
func ComputeAggregates(items []entity.LineItem) Aggregates {
	agg := Aggregates{
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		TaxTotal:      decimal.Zero,
	}
	for _, it := range items {
		b := ItemBreakdown(AmountsOf(it))
		agg.Subtotal = agg.Subtotal.Add(b.Subtotal)
		agg.DiscountTotal = agg.DiscountTotal.Add(b.Discount)
		agg.TaxTotal = agg.TaxTotal.Add(b.Tax)
	}
	agg.GrandTotal = agg.Subtotal.Sub(agg.DiscountTotal).Add(agg.TaxTotal)
	return agg
}
