package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// Defaults valores de fábrica de una factura nueva.
type Defaults struct {
	Currency string
	Language string
	Locale   string
	Terms    string
	DueDays  int
}

// DefaultDefaults valores usados si la configuración no define otros.
func DefaultDefaults() Defaults {
	return Defaults{
		Currency: "USD",
		Language: "en",
		Locale:   "en-US",
		Terms:    "Payment is due within 30 days",
		DueDays:  30,
	}
}

// New crea una factura vacía con fecha de hoy y vencimiento a DueDays días.
func New(now time.Time, d Defaults) entity.InvoiceData {
	return entity.InvoiceData{
		InvoiceDate:      now.Format(entity.DateLayout),
		DueDate:          now.AddDate(0, 0, d.DueDays).Format(entity.DateLayout),
		Currency:         d.Currency,
		Language:         d.Language,
		Locale:           d.Locale,
		Terms:            d.Terms,
		LineItems:        []entity.LineItem{},
		ColumnVisibility: entity.DefaultColumnVisibility(),
		Subtotal:         decimal.Zero,
		DiscountTotal:    decimal.Zero,
		TaxTotal:         decimal.Zero,
		GrandTotal:       decimal.Zero,
	}
}
