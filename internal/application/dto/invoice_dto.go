package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// TemplateResponse plantilla del catálogo.
type TemplateResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// BusinessInfoResponse datos del emisor.
type BusinessInfoResponse struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Zip     string  `json:"zip"`
	Country string  `json:"country"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Website string  `json:"website"`
	TaxID   string  `json:"tax_id"`
	Logo    *string `json:"logo"` // data URI
}

// ClientInfoResponse datos del cliente.
type ClientInfoResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// LineItemResponse línea con su total calculado.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Discount    decimal.Decimal `json:"discount"`
	Category    string          `json:"category,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

// ColumnVisibilityDTO visibilidad de columnas (respuesta).
type ColumnVisibilityDTO struct {
	Description bool `json:"description"`
	Quantity    bool `json:"quantity"`
	UnitPrice   bool `json:"unit_price"`
	TaxRate     bool `json:"tax_rate"`
	Discount    bool `json:"discount"`
	Category    bool `json:"category"`
	Total       bool `json:"total"`
}

// InvoiceResponse factura activa con totales.
type InvoiceResponse struct {
	InvoiceNumber      string               `json:"invoice_number"`
	InvoiceDate        string               `json:"invoice_date"`
	DueDate            string               `json:"due_date"`
	Currency           string               `json:"currency"`
	Language           string               `json:"language"`
	Locale             string               `json:"locale"`
	Notes              string               `json:"notes"`
	Terms              string               `json:"terms"`
	Template           *TemplateResponse    `json:"template"`
	BusinessInfo       BusinessInfoResponse `json:"business_info"`
	ClientInfo         ClientInfoResponse   `json:"client_info"`
	LineItems          []LineItemResponse   `json:"line_items"`
	ColumnVisibility   ColumnVisibilityDTO  `json:"column_visibility"`
	Subtotal           decimal.Decimal      `json:"subtotal"`
	DiscountTotal      decimal.Decimal      `json:"discount_total"`
	TaxTotal           decimal.Decimal      `json:"tax_total"`
	GrandTotal         decimal.Decimal      `json:"grand_total"`
	SeparateCategories bool                 `json:"separate_categories"`
}

// SessionResponse factura activa más la posición en el lote.
type SessionResponse struct {
	Invoice     InvoiceResponse `json:"invoice"`
	Version     uint64          `json:"version"`
	BatchIndex  int             `json:"batch_index"` // -1 sin lote
	BatchSize   int             `json:"batch_size"`
	ImportState string          `json:"import_state"`
	Exporting   bool            `json:"exporting"`
}

// UpdateDetailsRequest body para PUT /api/invoice/details. Campos ausentes no cambian.
type UpdateDetailsRequest struct {
	InvoiceNumber *string `json:"invoice_number"`
	InvoiceDate   *string `json:"invoice_date"`
	DueDate       *string `json:"due_date"`
	Currency      *string `json:"currency"`
	Language      *string `json:"language"`
	Locale        *string `json:"locale"`
	Notes         *string `json:"notes"`
	Terms         *string `json:"terms"`
}

// SetTemplateRequest body para PUT /api/invoice/template.
type SetTemplateRequest struct {
	TemplateID string `json:"template_id"`
}

// UpdateBusinessInfoRequest body para PUT /api/invoice/business.
type UpdateBusinessInfoRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Zip       *string `json:"zip"`
	Country   *string `json:"country"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Website   *string `json:"website"`
	TaxID     *string `json:"tax_id"`
	ClearLogo bool    `json:"clear_logo,omitempty"`
}

// ClientInfoRequest datos de cliente; campos ausentes no cambian.
type ClientInfoRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Zip     *string `json:"zip"`
	Country *string `json:"country"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// ColumnVisibilityRequest body para PUT /api/invoice/columns.
type ColumnVisibilityRequest struct {
	Description *bool `json:"description"`
	Quantity    *bool `json:"quantity"`
	UnitPrice   *bool `json:"unit_price"`
	TaxRate     *bool `json:"tax_rate"`
	Discount    *bool `json:"discount"`
	Category    *bool `json:"category"`
	Total       *bool `json:"total"`
}

// LineItemRequest body para POST /api/invoice/items. Quantity ausente = 1.
type LineItemRequest struct {
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TaxRate     decimal.Decimal  `json:"tax_rate"`
	Discount    decimal.Decimal  `json:"discount"`
	Category    string           `json:"category,omitempty"`
}

// LineItemPatchRequest body para PATCH /api/invoice/items/:id.
type LineItemPatchRequest struct {
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	Discount    *decimal.Decimal `json:"discount"`
	Category    *string          `json:"category"`
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

// ToTemplateResponse convierte una plantilla del dominio.
func ToTemplateResponse(t entity.InvoiceTemplate) TemplateResponse {
	return TemplateResponse{ID: t.ID, Name: t.Name, Image: t.Image}
}

// ToLineItemResponse convierte una línea del dominio.
func ToLineItemResponse(it entity.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:          it.ID,
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		TaxRate:     it.TaxRate,
		Discount:    it.Discount,
		Category:    it.Category,
		Total:       it.Total,
	}
}

// ToLineItemResponses convierte una lista de líneas (nunca nil).
func ToLineItemResponses(items []entity.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToLineItemResponse(it))
	}
	return out
}

// ToInvoiceResponse convierte la factura del dominio.
func ToInvoiceResponse(inv entity.InvoiceData) InvoiceResponse {
	b, c, cv := inv.BusinessInfo, inv.ClientInfo, inv.ColumnVisibility
	out := InvoiceResponse{
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Currency:      inv.Currency,
		Language:      inv.Language,
		Locale:        inv.Locale,
		Notes:         inv.Notes,
		Terms:         inv.Terms,
		BusinessInfo: BusinessInfoResponse{
			Name: b.Name, Address: b.Address, City: b.City, State: b.State, Zip: b.Zip,
			Country: b.Country, Phone: b.Phone, Email: b.Email, Website: b.Website,
			TaxID: b.TaxID, Logo: b.Logo,
		},
		ClientInfo: ClientInfoResponse{
			Name: c.Name, Address: c.Address, City: c.City, State: c.State, Zip: c.Zip,
			Country: c.Country, Phone: c.Phone, Email: c.Email,
		},
		LineItems: ToLineItemResponses(inv.LineItems),
		ColumnVisibility: ColumnVisibilityDTO{
			Description: cv.Description, Quantity: cv.Quantity, UnitPrice: cv.UnitPrice,
			TaxRate: cv.TaxRate, Discount: cv.Discount, Category: cv.Category, Total: cv.Total,
		},
		Subtotal:           inv.Subtotal,
		DiscountTotal:      inv.DiscountTotal,
		TaxTotal:           inv.TaxTotal,
		GrandTotal:         inv.GrandTotal,
		SeparateCategories: inv.SeparateCategories,
	}
	if inv.Template != nil {
		t := ToTemplateResponse(*inv.Template)
		out.Template = &t
	}
	return out
}

// Details convierte el body en el patch del dominio.
func (r UpdateDetailsRequest) Details() entity.InvoiceDetailsPatch {
	return entity.InvoiceDetailsPatch{
		InvoiceNumber: r.InvoiceNumber,
		InvoiceDate:   r.InvoiceDate,
		DueDate:       r.DueDate,
		Currency:      r.Currency,
		Language:      r.Language,
		Locale:        r.Locale,
		Notes:         r.Notes,
		Terms:         r.Terms,
	}
}

// Patch convierte el body en el patch del dominio (el logo se sube aparte).
func (r UpdateBusinessInfoRequest) Patch() entity.BusinessInfoPatch {
	return entity.BusinessInfoPatch{
		Name: r.Name, Address: r.Address, City: r.City, State: r.State, Zip: r.Zip,
		Country: r.Country, Phone: r.Phone, Email: r.Email, Website: r.Website,
		TaxID: r.TaxID, ClearLogo: r.ClearLogo,
	}
}

// Patch convierte el body en el patch del dominio.
func (r ClientInfoRequest) Patch() entity.ClientInfoPatch {
	return entity.ClientInfoPatch{
		Name: r.Name, Address: r.Address, City: r.City, State: r.State, Zip: r.Zip,
		Country: r.Country, Phone: r.Phone, Email: r.Email,
	}
}

// Patch convierte el body en el patch del dominio.
func (r ColumnVisibilityRequest) Patch() entity.ColumnVisibilityPatch {
	return entity.ColumnVisibilityPatch{
		Description: r.Description, Quantity: r.Quantity, UnitPrice: r.UnitPrice,
		TaxRate: r.TaxRate, Discount: r.Discount, Category: r.Category, Total: r.Total,
	}
}

// Input convierte el body en la entrada del dominio.
func (r LineItemRequest) Input() entity.LineItemInput {
	in := entity.NewLineItemInput()
	in.Description = r.Description
	if r.Quantity != nil {
		in.Quantity = *r.Quantity
	}
	in.UnitPrice = r.UnitPrice
	in.TaxRate = r.TaxRate
	in.Discount = r.Discount
	in.Category = r.Category
	return in
}

// Patch convierte el body en el patch del dominio.
func (r LineItemPatchRequest) Patch() entity.LineItemPatch {
	return entity.LineItemPatch{
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		TaxRate:     r.TaxRate,
		Discount:    r.Discount,
		Category:    r.Category,
	}
}
