package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// ValidateLineItemInput valida una línea nueva antes de agregarla.
// Las tasas de impuesto y descuento no se limitan a [0,100].
func ValidateLineItemInput(in entity.LineItemInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}
	if err := positive("cantidad", in.Quantity); err != nil {
		return err
	}
	return positive("precio unitario", in.UnitPrice)
}

// ValidateLineItemPatch valida solo los campos presentes en el patch.
func ValidateLineItemPatch(p entity.LineItemPatch) error {
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}
	if p.Quantity != nil {
		if err := positive("cantidad", *p.Quantity); err != nil {
			return err
		}
	}
	if p.UnitPrice != nil {
		if err := positive("precio unitario", *p.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDetails valida fechas ISO, código de moneda ISO 4217 y locale BCP 47.
func ValidateDetails(p entity.InvoiceDetailsPatch) error {
	for name, v := range map[string]*string{"fecha de factura": p.InvoiceDate, "fecha de vencimiento": p.DueDate} {
		if v == nil {
			continue
		}
		if _, err := time.Parse(entity.DateLayout, *v); err != nil {
			return fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, name)
		}
	}
	if p.Currency != nil {
		if _, err := currency.ParseISO(*p.Currency); err != nil {
			return fmt.Errorf("%w: moneda %q no es un código ISO 4217", domain.ErrInvalidInput, *p.Currency)
		}
	}
	if p.Locale != nil {
		if _, err := language.Parse(*p.Locale); err != nil {
			return fmt.Errorf("%w: locale %q inválido", domain.ErrInvalidInput, *p.Locale)
		}
	}
	return nil
}

func positive(field string, v decimal.Decimal) error {
	if v.Sign() <= 0 {
		return fmt.Errorf("%w: %s debe ser mayor que cero", domain.ErrInvalidInput, field)
	}
	return nil
}
