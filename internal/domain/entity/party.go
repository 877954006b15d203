package entity

// BusinessInfo datos del emisor. Cadena vacía = no definido; Logo es un data URI o nil.
type BusinessInfo struct {
	Name    string
	Address string
	City    string
	State   string
	Zip     string
	Country string
	Phone   string
	Email   string
	Website string
	TaxID   string
	Logo    *string
}

// Clone copia el logo para no compartir el puntero.
func (b BusinessInfo) Clone() BusinessInfo {
	if b.Logo != nil {
		l := *b.Logo
		b.Logo = &l
	}
	return b
}

// ClientInfo datos del cliente (receptor).
type ClientInfo struct {
	Name    string
	Address string
	City    string
	State   string
	Zip     string
	Country string
	Phone   string
	Email   string
}

// BusinessInfoPatch actualización parcial del emisor. ClearLogo elimina el logo.
type BusinessInfoPatch struct {
	Name      *string
	Address   *string
	City      *string
	State     *string
	Zip       *string
	Country   *string
	Phone     *string
	Email     *string
	Website   *string
	TaxID     *string
	Logo      *string
	ClearLogo bool
}

// Apply aplica el patch sobre b.
func (p BusinessInfoPatch) Apply(b BusinessInfo) BusinessInfo {
	setIf(&b.Name, p.Name)
	setIf(&b.Address, p.Address)
	setIf(&b.City, p.City)
	setIf(&b.State, p.State)
	setIf(&b.Zip, p.Zip)
	setIf(&b.Country, p.Country)
	setIf(&b.Phone, p.Phone)
	setIf(&b.Email, p.Email)
	setIf(&b.Website, p.Website)
	setIf(&b.TaxID, p.TaxID)
	switch {
	case p.ClearLogo:
		b.Logo = nil
	case p.Logo != nil:
		l := *p.Logo
		b.Logo = &l
	}
	return b
}

// ClientInfoPatch actualización parcial del cliente.
type ClientInfoPatch struct {
	Name    *string
	Address *string
	City    *string
	State   *string
	Zip     *string
	Country *string
	Phone   *string
	Email   *string
}

// Apply aplica el patch sobre c.
func (p ClientInfoPatch) Apply(c ClientInfo) ClientInfo {
	setIf(&c.Name, p.Name)
	setIf(&c.Address, p.Address)
	setIf(&c.City, p.City)
	setIf(&c.State, p.State)
	setIf(&c.Zip, p.Zip)
	setIf(&c.Country, p.Country)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Email, p.Email)
	return c
}

// IsEmpty indica si el patch no toca ningún campo.
func (p ClientInfoPatch) IsEmpty() bool {
	return p == ClientInfoPatch{}
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
