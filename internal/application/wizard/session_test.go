package wizard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billera-api/internal/application/batch"
	"github.com/jhoicas/billera-api/internal/application/importer"
	"github.com/jhoicas/billera-api/internal/application/wizard"
	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
)

func newSession() *wizard.Session {
	n := 0
	return wizard.NewSession(invoice.DefaultDefaults(), zerolog.Nop(),
		wizard.WithClock(func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }),
		wizard.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("li-%d", n)
		}),
	)
}

func str(s string) *string { return &s }

func item(desc string, q, p int64) entity.LineItemInput {
	return entity.LineItemInput{Description: desc, Quantity: decimal.NewFromInt(q), UnitPrice: decimal.NewFromInt(p)}
}

func entries(n int) []batch.Entry {
	out := make([]batch.Entry, n)
	for i := range out {
		out[i] = batch.Entry{
			Client:    entity.ClientInfoPatch{Name: str(fmt.Sprintf("Cliente %d", i+1))},
			LineItems: []entity.LineItemInput{item("Servicio", int64(i+1), 10)},
		}
	}
	return out
}

func TestAddLineItem_ValidaAntesDeMutar(t *testing.T) {
	s := newSession()

	_, err := s.AddLineItem(entity.LineItemInput{Description: "", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.AddLineItem(item("Widget", 0, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.Invoice().LineItems, "no debe haber estado parcial")

	added, err := s.AddLineItem(item("Widget", 2, 50))
	require.NoError(t, err)
	assert.Equal(t, "li-1", added.ID)
	assert.True(t, s.Invoice().GrandTotal.Equal(decimal.NewFromInt(100)))
}

func TestUpdateLineItem_NoEncontrado(t *testing.T) {
	s := newSession()

	_, err := s.UpdateLineItem("nope", entity.LineItemPatch{Description: str("x")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetTemplate_Desconocida(t *testing.T) {
	s := newSession()

	assert.ErrorIs(t, s.SetTemplate("baroque"), domain.ErrUnknownTemplate)
	require.NoError(t, s.SetTemplate(invoice.TemplateMinimal))
	assert.Equal(t, "Minimal", s.Invoice().Template.Name)
}

func TestConfirmImport_AplicaClienteYLineas(t *testing.T) {
	s := newSession()
	_, err := s.BeginImport([]byte("Name,Email,Description,Quantity,UnitPrice\nAcme,acme@x.com,Widget,2,50"))
	require.NoError(t, err)
	assert.Equal(t, importer.StateMapping, s.Snapshot().ImportState)

	res, err := s.ConfirmImport()
	require.NoError(t, err)

	inv := s.Invoice()
	assert.True(t, res.ClientUpdated)
	assert.Equal(t, "Acme", inv.ClientInfo.Name)
	assert.Equal(t, "acme@x.com", inv.ClientInfo.Email)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "Widget", inv.LineItems[0].Description)
	assert.True(t, inv.LineItems[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, inv.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, inv.LineItems[0].Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, importer.StateIdle, s.Snapshot().ImportState)
}

func TestBeginImport_EmptyDataNoMuta(t *testing.T) {
	s := newSession()
	before := s.Snapshot()

	_, err := s.BeginImport([]byte("Name,Email,Description"))

	assert.ErrorIs(t, err, domain.ErrEmptyData)
	after := s.Snapshot()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, entity.ClientInfo{}, after.Invoice.ClientInfo)
	assert.Empty(t, after.Invoice.LineItems)
}

func TestCreateMultipleInvoices_TresEntradas(t *testing.T) {
	s := newSession()

	require.NoError(t, s.CreateMultipleInvoices(entries(3)))

	b, ok := s.Batch()
	require.True(t, ok)
	assert.Equal(t, 0, b.CurrentIndex)
	require.Len(t, b.Invoices, 3)
	for i, inv := range b.Invoices {
		assert.Equal(t, fmt.Sprintf("INV-%03d", i+1), inv.InvoiceNumber)
	}
	assert.Equal(t, "INV-001", s.Invoice().InvoiceNumber)
	assert.Equal(t, "Cliente 1", s.Invoice().ClientInfo.Name)
}

func TestCreateMultipleInvoices_UnaEntradaSinLote(t *testing.T) {
	s := newSession()
	require.NoError(t, s.CreateMultipleInvoices(entries(3)))

	require.NoError(t, s.CreateMultipleInvoices(entries(1)))

	_, ok := s.Batch()
	assert.False(t, ok, "con una sola factura no hay lote")
	assert.Equal(t, "INV-001", s.Invoice().InvoiceNumber)
	assert.Equal(t, -1, s.Snapshot().BatchIndex)
}

func TestCreateMultipleInvoices_SinEntradas(t *testing.T) {
	assert.ErrorIs(t, newSession().CreateMultipleInvoices(nil), domain.ErrInvalidInput)
}

func TestNavegacion_LimitesSonNoOp(t *testing.T) {
	s := newSession()
	require.NoError(t, s.CreateMultipleInvoices(entries(3)))

	moved, err := s.SelectPreviousInvoice()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 0, s.Snapshot().BatchIndex)

	for i := 0; i < 2; i++ {
		moved, err = s.SelectNextInvoice()
		require.NoError(t, err)
		assert.True(t, moved)
	}
	moved, err = s.SelectNextInvoice()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 2, s.Snapshot().BatchIndex)
	assert.Equal(t, "INV-003", s.Invoice().InvoiceNumber)
}

func TestNavegacion_NoEscribeEdicionesSinCommit(t *testing.T) {
	s := newSession()
	require.NoError(t, s.CreateMultipleInvoices(entries(2)))

	require.NoError(t, s.UpdateClientInfo(entity.ClientInfoPatch{Name: str("Editado")}))
	_, _ = s.SelectNextInvoice()
	_, _ = s.SelectPreviousInvoice()
	assert.Equal(t, "Cliente 1", s.Invoice().ClientInfo.Name, "la edición se pierde al navegar")

	require.NoError(t, s.UpdateClientInfo(entity.ClientInfoPatch{Name: str("Editado")}))
	require.NoError(t, s.CommitCurrentEditsToBatch())
	_, _ = s.SelectNextInvoice()
	_, _ = s.SelectPreviousInvoice()
	assert.Equal(t, "Editado", s.Invoice().ClientInfo.Name)
}

func TestCommitCurrentEditsToBatch_SinLote(t *testing.T) {
	assert.ErrorIs(t, newSession().CommitCurrentEditsToBatch(), domain.ErrNotFound)
}

func TestResetInvoice_LimpiaLoteEImportacion(t *testing.T) {
	s := newSession()
	require.NoError(t, s.CreateMultipleInvoices(entries(2)))
	_, err := s.BeginImport([]byte("Description\nUno"))
	require.NoError(t, err)

	require.NoError(t, s.ResetInvoice())

	_, ok := s.Batch()
	assert.False(t, ok)
	snap := s.Snapshot()
	assert.Equal(t, importer.StateIdle, snap.ImportState)
	assert.Empty(t, snap.Invoice.LineItems)
	assert.Equal(t, "", snap.Invoice.InvoiceNumber)
	assert.Equal(t, "2024-07-01", snap.Invoice.DueDate)
}

func TestBeginExport_BloqueaMutaciones(t *testing.T) {
	s := newSession()
	require.NoError(t, s.CreateMultipleInvoices(entries(2)))

	lease, err := s.BeginExport()
	require.NoError(t, err)

	_, err = s.AddLineItem(item("x", 1, 1))
	assert.ErrorIs(t, err, domain.ErrExportInProgress)
	_, err = s.SelectNextInvoice()
	assert.ErrorIs(t, err, domain.ErrExportInProgress)
	_, err = s.BeginExport()
	assert.ErrorIs(t, err, domain.ErrExportInProgress)

	assert.True(t, lease.SelectNext(), "el lease sí puede navegar")
	assert.Equal(t, 1, lease.CurrentIndex())
	assert.Equal(t, 2, lease.BatchLen())

	lease.Release()
	lease.Release()
	_, err = s.AddLineItem(item("x", 1, 1))
	assert.NoError(t, err)
}

func TestOnActiveChange_NotificaVersiones(t *testing.T) {
	s := newSession()
	var versions []uint64
	var last entity.InvoiceData
	s.OnActiveChange(func(v uint64, inv entity.InvoiceData) {
		versions = append(versions, v)
		last = inv
	})

	_, err := s.AddLineItem(item("Widget", 1, 10))
	require.NoError(t, err)
	require.NoError(t, s.RemoveLineItem("no-existe"))

	assert.Equal(t, []uint64{0, 1, 2}, versions)
	assert.Len(t, last.LineItems, 1)
}

func TestBeginExport_AsignaNumeroFaltante(t *testing.T) {
	s := newSession()
	var last entity.InvoiceData
	s.OnActiveChange(func(_ uint64, inv entity.InvoiceData) { last = inv })
	require.Equal(t, "", s.Invoice().InvoiceNumber)

	lease, err := s.BeginExport()
	require.NoError(t, err)
	defer lease.Release()

	assert.Equal(t, "INV-001", s.Invoice().InvoiceNumber)
	assert.Equal(t, "INV-001", last.InvoiceNumber, "la superficie debe recibir la factura numerada")
}

func TestBeginExport_NumeraFacturasDelLote(t *testing.T) {
	s := newSession()
	require.NoError(t, s.CreateMultipleInvoices(entries(3)))
	_, err := s.SelectNextInvoice()
	require.NoError(t, err)
	require.NoError(t, s.UpdateDetails(entity.InvoiceDetailsPatch{InvoiceNumber: str("")}))
	require.NoError(t, s.CommitCurrentEditsToBatch())
	before := s.Snapshot().Version

	lease, err := s.BeginExport()
	require.NoError(t, err)
	defer lease.Release()

	assert.Equal(t, "INV-002", s.Invoice().InvoiceNumber)
	assert.Greater(t, s.Snapshot().Version, before)
	b, ok := s.Batch()
	require.True(t, ok)
	assert.Equal(t, "INV-002", b.Invoices[1].InvoiceNumber)
}

func TestBeginExport_ConNumeroNoNotifica(t *testing.T) {
	s := newSession()
	require.NoError(t, s.UpdateDetails(entity.InvoiceDetailsPatch{InvoiceNumber: str("F-77")}))
	before := s.Snapshot().Version

	lease, err := s.BeginExport()
	require.NoError(t, err)
	defer lease.Release()

	assert.Equal(t, before, s.Snapshot().Version)
	assert.Equal(t, "F-77", s.Invoice().InvoiceNumber)
}
