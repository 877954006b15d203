package entity

// InvoiceTemplate plantilla visual de la factura (solo cosmética).
type InvoiceTemplate struct {
	ID    string
	Name  string
	Image string
}
