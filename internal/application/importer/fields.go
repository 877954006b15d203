package importer

import "strings"

// Field campo destino de una columna del CSV.
type Field string

// Campos de línea.
const (
	FieldIgnore      Field = "ignore"
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unitPrice"
	FieldTaxRate     Field = "taxRate"
	FieldDiscount    Field = "discount"
	FieldCategory    Field = "category"
)

// Campos de cliente.
const (
	FieldClientName    Field = "clientName"
	FieldClientEmail   Field = "clientEmail"
	FieldClientPhone   Field = "clientPhone"
	FieldClientAddress Field = "clientAddress"
	FieldClientCity    Field = "clientCity"
	FieldClientState   Field = "clientState"
	FieldClientZip     Field = "clientZip"
	FieldClientCountry Field = "clientCountry"
)

var allFields = []Field{
	FieldIgnore,
	FieldDescription, FieldQuantity, FieldUnitPrice, FieldTaxRate, FieldDiscount, FieldCategory,
	FieldClientName, FieldClientEmail, FieldClientPhone, FieldClientAddress,
	FieldClientCity, FieldClientState, FieldClientZip, FieldClientCountry,
}

// ParseField valida un nombre de campo recibido del usuario.
func ParseField(s string) (Field, bool) {
	for _, f := range allFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// IsClient indica si el campo pertenece al cliente.
func (f Field) IsClient() bool {
	return strings.HasPrefix(string(f), "client")
}

// IsNumeric indica si el campo se interpreta como número.
func (f Field) IsNumeric() bool {
	switch f {
	case FieldQuantity, FieldUnitPrice, FieldTaxRate, FieldDiscount:
		return true
	}
	return false
}

type rule struct {
	field    Field
	keywords []string
}

// Reglas en orden de prioridad: gana la primera que coincide.
// "category" va antes que "name" y "description" para que "Category Name" no sea cliente.
// Los identificadores fiscales se ignoran antes de la regla de impuesto para que
// "Tax ID" o "VAT Number" no se propongan como tasa.
var rules = []rule{
	{FieldIgnore, []string{"tax id", "taxid", "tax_id", "tax-id", "tax number", "vat id", "vatid", "vat_id", "vat number", "vat reg"}},
	{FieldCategory, []string{"categ"}},
	{FieldDescription, []string{"desc", "item", "product", "service"}},
	{FieldTaxRate, []string{"tax", "vat"}},
	{FieldDiscount, []string{"disc"}},
	{FieldQuantity, []string{"quant", "qty"}},
	{FieldUnitPrice, []string{"price", "rate", "amount", "cost"}},
	{FieldClientEmail, []string{"mail"}},
	{FieldClientPhone, []string{"phone", "tel"}},
	{FieldClientAddress, []string{"addr", "street"}},
	{FieldClientCity, []string{"city"}},
	{FieldClientState, []string{"state", "province", "region"}},
	{FieldClientZip, []string{"zip", "postal"}},
	{FieldClientCountry, []string{"country"}},
	{FieldClientName, []string{"name", "client", "customer", "company"}},
}

// DetectField propone un campo para un encabezado. Es solo una sugerencia.
func DetectField(header string) Field {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return FieldIgnore
	}
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(h, k) {
				return r.field
			}
		}
	}
	return FieldIgnore
}
