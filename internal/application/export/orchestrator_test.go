package export_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billera-api/internal/application/export"
	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// ── Fakes ──────────────────────────────────────────────────────────────────────

// fakeBatch simula el lote navegable y la superficie que muestra la factura activa.
type fakeBatch struct {
	numbers  []string
	index    int
	steps    int
	settles  int
	released int
	onStep   func(index int)
}

func (b *fakeBatch) CurrentIndex() int { return b.index }
func (b *fakeBatch) BatchLen() int     { return len(b.numbers) }
func (b *fakeBatch) Release()          { b.released++ }

func (b *fakeBatch) SelectNext() bool {
	if b.index >= len(b.numbers)-1 {
		return false
	}
	b.index++
	b.step()
	return true
}

func (b *fakeBatch) SelectPrevious() bool {
	if b.index <= 0 {
		return false
	}
	b.index--
	b.step()
	return true
}

func (b *fakeBatch) step() {
	b.steps++
	if b.onStep != nil {
		b.onStep(b.index)
	}
}

func (b *fakeBatch) Current() export.Frame {
	num := ""
	if len(b.numbers) > 0 {
		num = b.numbers[b.index]
	}
	return export.Frame{Invoice: entity.InvoiceData{InvoiceNumber: num}, Markup: "<html>" + num + "</html>"}
}

func (b *fakeBatch) Settle(context.Context) error {
	b.settles++
	return nil
}

type fakeRaster struct {
	failOn  map[string]error
	blankOn map[string]bool
	calls   []string
}

func (r *fakeRaster) Rasterize(_ context.Context, f export.Frame) ([]byte, error) {
	n := f.Invoice.InvoiceNumber
	r.calls = append(r.calls, n)
	if err := r.failOn[n]; err != nil {
		return nil, err
	}
	if r.blankOn[n] {
		return []byte("%PDF"), nil
	}
	return bytes.Repeat([]byte("x"), 2048), nil
}

type memArchive struct{ names []string }

func (a *memArchive) Add(name string, _ []byte) error {
	a.names = append(a.names, name)
	return nil
}

func (a *memArchive) Len() int               { return len(a.names) }
func (a *memArchive) Bytes() ([]byte, error) { return []byte("zip"), nil }

type memSaver struct{ saved map[string][]byte }

func (s *memSaver) Save(_ context.Context, name string, data []byte) error {
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[name] = data
	return nil
}

type harness struct {
	batch   *fakeBatch
	raster  *fakeRaster
	archive *memArchive
	saver   *memSaver
	orch    *export.Orchestrator
}

func newHarness(n, start int) *harness {
	h := &harness{
		batch:   &fakeBatch{index: start},
		raster:  &fakeRaster{failOn: map[string]error{}, blankOn: map[string]bool{}},
		archive: &memArchive{},
		saver:   &memSaver{},
	}
	for i := 0; i < n; i++ {
		h.batch.numbers = append(h.batch.numbers, fmt.Sprintf("INV-%03d", i+1))
	}
	h.orch = export.NewOrchestrator(
		func() (export.Navigator, error) { return h.batch, nil },
		h.batch,
		h.raster,
		func() export.Archive { return h.archive },
		h.saver,
		export.Config{MinDocumentBytes: 1024},
		zerolog.Nop(),
	)
	return h
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestExportBatch_GeneraTodasEnOrden(t *testing.T) {
	h := newHarness(3, 0)
	var progress []export.Progress

	sum, err := h.orch.ExportBatch(context.Background(), func(p export.Progress) { progress = append(progress, p) })
	require.NoError(t, err)

	assert.Equal(t, []string{"INV-001", "INV-002", "INV-003"}, h.raster.calls)
	assert.Equal(t, []string{"Invoice_INV-001.pdf", "Invoice_INV-002.pdf", "Invoice_INV-003.pdf"}, h.archive.names)
	assert.Equal(t, 3, sum.Succeeded)
	assert.Empty(t, sum.Failed)
	assert.Equal(t, []export.Progress{{Current: 1, Total: 3}, {Current: 2, Total: 3}, {Current: 3, Total: 3}}, progress)
	assert.Contains(t, h.saver.saved, export.ArchiveName)
	assert.Equal(t, 1, h.batch.released)
	state, _ := h.orch.Status()
	assert.Equal(t, export.StateIdle, state)
}

func TestExportBatch_RestauraIndiceOriginal(t *testing.T) {
	for n := 2; n <= 5; n++ {
		for start := 0; start < n; start++ {
			t.Run(fmt.Sprintf("n=%d/start=%d", n, start), func(t *testing.T) {
				h := newHarness(n, start)

				_, err := h.orch.ExportBatch(context.Background(), nil)
				require.NoError(t, err)

				assert.Equal(t, start, h.batch.index)
				assert.Len(t, h.raster.calls, n)
			})
		}
	}
}

func TestExportBatch_NavegaDeAUnPasoYEspera(t *testing.T) {
	h := newHarness(3, 2)

	_, err := h.orch.ExportBatch(context.Background(), nil)
	require.NoError(t, err)

	// 2 -> 0 (2 pasos), 0 -> 1 -> 2 (2 pasos) y ya está en el original.
	assert.Equal(t, 4, h.batch.steps)
	assert.GreaterOrEqual(t, h.batch.settles, h.batch.steps, "cada paso espera el render")
}

func TestExportBatch_FallosParciales(t *testing.T) {
	h := newHarness(3, 0)
	h.raster.failOn["INV-002"] = errors.New("canvas vacío")
	h.raster.blankOn["INV-003"] = true

	sum, err := h.orch.ExportBatch(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Succeeded)
	assert.Equal(t, []int{1, 2}, sum.Failed)
	assert.Equal(t, []string{"Invoice_INV-001.pdf"}, h.archive.names)
	assert.Contains(t, h.saver.saved, export.ArchiveName)
}

func TestExportBatch_NingunExitoNoGuarda(t *testing.T) {
	h := newHarness(2, 1)
	h.raster.failOn["INV-001"] = errors.New("x")
	h.raster.failOn["INV-002"] = errors.New("x")

	sum, err := h.orch.ExportBatch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNothingArchived)
	assert.Empty(t, h.saver.saved)
	assert.Equal(t, []int{0, 1}, sum.Failed)
	assert.Equal(t, 1, h.batch.index)
}

func TestExportBatch_AbortTerminaFacturaEnCurso(t *testing.T) {
	h := newHarness(4, 3)
	h.batch.onStep = func(index int) {
		if index == 1 && len(h.raster.calls) == 1 {
			assert.True(t, h.orch.Abort())
		}
	}

	sum, err := h.orch.ExportBatch(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, sum.Aborted)
	assert.Equal(t, []string{"INV-001", "INV-002"}, h.raster.calls, "la factura en curso se completa")
	assert.Equal(t, 2, sum.Succeeded)
	assert.Equal(t, 3, h.batch.index, "se restaura el índice tras cancelar")
	assert.Contains(t, h.saver.saved, export.ArchiveName, "lo generado se conserva")
}

func TestExportBatch_ContextoCancelado(t *testing.T) {
	h := newHarness(3, 1)
	ctx, cancel := context.WithCancel(context.Background())
	h.batch.onStep = func(index int) {
		if index == 0 {
			cancel()
		}
	}

	sum, err := h.orch.ExportBatch(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, sum.Aborted)
	assert.Equal(t, 1, h.batch.index, "el índice se restaura aun con el contexto cancelado")
	assert.Empty(t, h.saver.saved)
}

func TestExportBatch_SinLoteExportaActiva(t *testing.T) {
	h := newHarness(0, 0)

	sum, err := h.orch.ExportBatch(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, []string{"Invoice_INV-001.pdf"}, h.archive.names)
}

func TestExportBatch_ExclusividadOcupada(t *testing.T) {
	h := newHarness(2, 0)
	orch := export.NewOrchestrator(
		func() (export.Navigator, error) { return nil, domain.ErrExportInProgress },
		h.batch, h.raster, func() export.Archive { return h.archive }, h.saver, export.Config{}, zerolog.Nop(),
	)

	_, err := orch.ExportBatch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrExportInProgress)
	assert.Empty(t, h.raster.calls)
}

func TestExportCurrent(t *testing.T) {
	h := newHarness(2, 1)

	res, err := h.orch.ExportCurrent(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^Invoice-INV-002-\d{4}-\d{2}-\d{2}\.pdf$`, res.Name)
	assert.Contains(t, h.saver.saved, res.Name)
}

func TestExportCurrent_FalloNoGuarda(t *testing.T) {
	h := newHarness(1, 0)
	h.raster.blankOn["INV-001"] = true

	_, err := h.orch.ExportCurrent(context.Background())

	assert.ErrorIs(t, err, domain.ErrBlankDocument)
	assert.Empty(t, h.saver.saved)
}

func TestPrintCurrent(t *testing.T) {
	h := newHarness(2, 1)

	markup, err := h.orch.PrintCurrent(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "<html>INV-002</html>", markup)
	assert.False(t, h.orch.Abort(), "sin exportación en curso no hay nada que cancelar")
}
