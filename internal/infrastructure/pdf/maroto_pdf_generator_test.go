package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billera-api/internal/application/export"
	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
	"github.com/jhoicas/billera-api/internal/infrastructure/money"
	"github.com/jhoicas/billera-api/internal/infrastructure/pdf"
)

func frame() export.Frame {
	inv := invoice.New(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), invoice.DefaultDefaults())
	inv.InvoiceNumber = "INV-001"
	inv.BusinessInfo.Name = "Acme"
	inv.ClientInfo.Name = "Globex"
	inv.Notes = "Gracias"
	inv = invoice.AddLineItem(inv, entity.LineItemInput{
		Description: "Widget",
		Quantity:    decimal.NewFromInt(3),
		UnitPrice:   decimal.NewFromInt(100),
		TaxRate:     decimal.NewFromInt(10),
		Discount:    decimal.NewFromInt(20),
		Category:    "Hardware",
	}, "1")
	inv = invoice.AddLineItem(inv, entity.LineItemInput{
		Description: "Soporte",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(50),
	}, "2")
	return export.Frame{Invoice: inv, Version: 1}
}

func TestMarotoRasterizer_GeneraPDF(t *testing.T) {
	r := pdf.NewMarotoRasterizer(money.NewFormatter(), pdf.Margins{})

	data, err := r.Rasterize(context.Background(), frame())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")
	assert.Greater(t, len(data), 1000)
}

func TestMarotoRasterizer_CategoriasSeparadas(t *testing.T) {
	r := pdf.NewMarotoRasterizer(money.NewFormatter(), pdf.Margins{Top: 15, Right: 12, Bottom: 15, Left: 12})
	f := frame()
	f.Invoice = invoice.ToggleCategorySeparation(f.Invoice)

	data, err := r.Rasterize(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestMarotoRasterizer_LogoInvalidoSeOmite(t *testing.T) {
	r := pdf.NewMarotoRasterizer(money.NewFormatter(), pdf.Margins{})
	f := frame()
	bad := "data:image/png;base64,@@@"
	f.Invoice.BusinessInfo.Logo = &bad

	data, err := r.Rasterize(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestMarotoRasterizer_ContextoCancelado(t *testing.T) {
	r := pdf.NewMarotoRasterizer(money.NewFormatter(), pdf.Margins{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Rasterize(ctx, frame())

	assert.ErrorIs(t, err, context.Canceled)
}
