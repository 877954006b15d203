package importer_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billera-api/internal/application/importer"
	"github.com/jhoicas/billera-api/internal/domain"
)

func newEngine() *importer.Engine { return importer.NewEngine(zerolog.Nop()) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDetectField_Prioridades(t *testing.T) {
	cases := map[string]importer.Field{
		"Name":             importer.FieldClientName,
		"Customer":         importer.FieldClientName,
		"Email":            importer.FieldClientEmail,
		"E-mail Address":   importer.FieldClientEmail,
		"Client Address":   importer.FieldClientAddress,
		"Description":      importer.FieldDescription,
		"Item":             importer.FieldDescription,
		"Product Category": importer.FieldCategory,
		"Category Name":    importer.FieldCategory,
		"Qty":              importer.FieldQuantity,
		"Quantity":         importer.FieldQuantity,
		"UnitPrice":        importer.FieldUnitPrice,
		"Unit Price":       importer.FieldUnitPrice,
		"Tax Rate":         importer.FieldTaxRate,
		"VAT":              importer.FieldTaxRate,
		"Discount":         importer.FieldDiscount,
		"Tax ID":           importer.FieldIgnore,
		"Client TaxID":     importer.FieldIgnore,
		"VAT Number":       importer.FieldIgnore,
		"Tax %":            importer.FieldTaxRate,
		"Phone":            importer.FieldClientPhone,
		"City":             importer.FieldClientCity,
		"Province":         importer.FieldClientState,
		"Postal Code":      importer.FieldClientZip,
		"Country":          importer.FieldClientCountry,
		"Notas internas":   importer.FieldIgnore,
		"":                 importer.FieldIgnore,
	}
	for header, want := range cases {
		assert.Equal(t, want, importer.DetectField(header), "encabezado %q", header)
	}
}

func TestBegin_IdentificadorFiscalNoEsTasa(t *testing.T) {
	e := newEngine()
	preview, err := e.Begin([]byte("Customer,Tax ID,Description,Qty,Price,Tax Rate\nAcme,900123456,Widget,1,100,19\n"))
	require.NoError(t, err)
	assert.Equal(t, importer.FieldIgnore, preview.Mapping[1], "el NIT/VAT del cliente no debe leerse como porcentaje")
	assert.Equal(t, importer.FieldTaxRate, preview.Mapping[5])

	plan, err := e.Confirm()
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.True(t, plan.Items[0].TaxRate.Equal(decimal.NewFromInt(19)))
}

func TestConfirm_ClienteYLinea(t *testing.T) {
	e := newEngine()
	preview, err := e.Begin([]byte("Name,Email,Description,Quantity,UnitPrice\nAcme,acme@x.com,Widget,2,50\n"))
	require.NoError(t, err)
	assert.Equal(t, importer.StateMapping, e.State())
	assert.Equal(t, []importer.Field{
		importer.FieldClientName, importer.FieldClientEmail, importer.FieldDescription,
		importer.FieldQuantity, importer.FieldUnitPrice,
	}, preview.Mapping)
	assert.Equal(t, []string{"Acme", "acme@x.com", "Widget", "2", "50"}, preview.Sample)

	plan, err := e.Confirm()
	require.NoError(t, err)

	assert.Equal(t, importer.StateIdle, e.State())
	require.NotNil(t, plan.Client)
	require.NotNil(t, plan.Client.Name)
	assert.Equal(t, "Acme", *plan.Client.Name)
	assert.Equal(t, "acme@x.com", *plan.Client.Email)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "Widget", plan.Items[0].Description)
	assert.True(t, plan.Items[0].Quantity.Equal(dec("2")))
	assert.True(t, plan.Items[0].UnitPrice.Equal(dec("50")))
}

func TestBegin_SoloEncabezadoEsEmptyData(t *testing.T) {
	e := newEngine()

	_, err := e.Begin([]byte("Name,Email,Description\n\n"))

	assert.ErrorIs(t, err, domain.ErrEmptyData)
	assert.Equal(t, importer.StateIdle, e.State())
}

func TestConfirm_SinIdentificadorDeCliente(t *testing.T) {
	e := newEngine()
	_, err := e.Begin([]byte("City,Description,Price\nQuito,Widget,10"))
	require.NoError(t, err)

	_, err = e.Confirm()

	assert.ErrorIs(t, err, domain.ErrMissingClientIdentifier)
	assert.Equal(t, importer.StateIdle, e.State(), "la importación se descarta")
}

func TestConfirm_SoloPrimerCliente(t *testing.T) {
	csv := "Customer,Item,Qty,Price\n" +
		"Acme,Widget,1,10\n" +
		"Globex,Gadget,2,20\n" +
		"Acme,Bolt,3,1\n" +
		",Huérfano,1,1\n"
	e := newEngine()
	_, err := e.Begin([]byte(csv))
	require.NoError(t, err)

	plan, err := e.Confirm()
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme", "Globex"}, plan.Groups)
	require.Len(t, plan.Items, 2)
	assert.Equal(t, "Widget", plan.Items[0].Description)
	assert.Equal(t, "Bolt", plan.Items[1].Description)
}

func TestConfirm_EmailComoIdentificador(t *testing.T) {
	e := newEngine()
	_, err := e.Begin([]byte("Email,Description\nb@x.com,Uno\na@x.com,Dos\nb@x.com,Tres"))
	require.NoError(t, err)

	plan, err := e.Confirm()
	require.NoError(t, err)

	require.Len(t, plan.Items, 2)
	assert.Equal(t, "b@x.com", *plan.Client.Email)
	assert.Nil(t, plan.Client.Name)
}

func TestConfirm_SinCamposDeClienteImportaTodo(t *testing.T) {
	csv := "Description,Quantity,Unit Price,Tax,Discount,Category\n" +
		"Hosting,,120,19%,0,Servicios\n" +
		",5,5,0,0,\n" +
		"Dominio,abc,15,0,10,\n"
	e := newEngine()
	_, err := e.Begin([]byte(csv))
	require.NoError(t, err)

	plan, err := e.Confirm()
	require.NoError(t, err)

	assert.Nil(t, plan.Client)
	assert.Equal(t, 1, plan.Skipped, "fila sin descripción")
	require.Len(t, plan.Items, 2)

	assert.True(t, plan.Items[0].Quantity.Equal(dec("1")), "celda vacía conserva la cantidad por defecto")
	assert.True(t, plan.Items[0].TaxRate.Equal(dec("19")))
	assert.Equal(t, "Servicios", plan.Items[0].Category)

	assert.True(t, plan.Items[1].Quantity.IsZero(), "número inválido se interpreta como cero")
	assert.True(t, plan.Items[1].Discount.Equal(dec("10")))
}

func TestSetMapping_SobrescribePropuesta(t *testing.T) {
	e := newEngine()
	_, err := e.Begin([]byte("Producto,Valor,Nota\nTaza,12,frágil"))
	require.NoError(t, err)

	require.NoError(t, e.SetMappingByHeader("valor", importer.FieldUnitPrice))
	require.NoError(t, e.SetMapping(2, importer.FieldIgnore))
	assert.ErrorIs(t, e.SetMapping(7, importer.FieldQuantity), domain.ErrInvalidInput)
	assert.ErrorIs(t, e.SetMappingByHeader("nope", importer.FieldQuantity), domain.ErrNotFound)

	plan, err := e.Confirm()
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "Taza", plan.Items[0].Description)
	assert.True(t, plan.Items[0].UnitPrice.Equal(dec("12")))
}

func TestCancel_VuelveAIdle(t *testing.T) {
	e := newEngine()
	_, err := e.Begin([]byte("Description\nUno"))
	require.NoError(t, err)

	e.Cancel()

	assert.Equal(t, importer.StateIdle, e.State())
	_, err = e.Confirm()
	assert.ErrorIs(t, err, domain.ErrNoImportInProgress)
	_, err = e.Preview()
	assert.ErrorIs(t, err, domain.ErrNoImportInProgress)
}

func TestParse_Latin1YCRLF(t *testing.T) {
	// "Descripción" en ISO-8859-1 (ó = 0xF3).
	raw := append([]byte("Descripci\xf3n,Qty\r\n"), []byte("Caf\xe9,2\r\n")...)

	rows, err := importer.Parse(raw)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Descripción", rows[0][0])
	assert.Equal(t, []string{"Café", "2"}, rows[1])
}
