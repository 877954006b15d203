package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/billera-api/internal/application/batch"
	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// Nombre del archivo del lote.
const ArchiveName = "Invoices.zip"

// Config tiempos de espera y validación del documento.
type Config struct {
	SettleDelay      time.Duration // espera tras cada paso de navegación
	RenderDelay      time.Duration // espera extra antes de rasterizar
	MinDocumentBytes int           // documentos más chicos se consideran vacíos
}

// State estado de la exportación por lote.
type State int

const (
	StateIdle State = iota
	StateGenerating
)

// Progress avance de la exportación (Current de 1 a Total).
type Progress struct {
	Current int
	Total   int
}

// Summary resultado de una exportación por lote.
type Summary struct {
	Total       int
	Succeeded   int
	Failed      []int // índices del lote que no se pudieron generar
	Aborted     bool
	ArchiveName string
	Archive     []byte
}

// Result documento individual generado.
type Result struct {
	Name string
	Data []byte
}

// Orchestrator secuencia navegar -> esperar render -> rasterizar -> archivar.
type Orchestrator struct {
	acquire    AcquireFunc
	surface    Surface
	raster     Rasterizer
	newArchive ArchiveFactory
	saver      Saver
	cfg        Config
	log        zerolog.Logger
	now        func() time.Time

	aborting atomic.Bool
	mu       sync.Mutex
	state    State
	progress Progress
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(
	acquire AcquireFunc,
	surface Surface,
	raster Rasterizer,
	newArchive ArchiveFactory,
	saver Saver,
	cfg Config,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		acquire:    acquire,
		surface:    surface,
		raster:     raster,
		newArchive: newArchive,
		saver:      saver,
		cfg:        cfg,
		log:        log.With().Str("component", "export").Logger(),
		now:        time.Now,
	}
}

// Status estado y avance actuales.
func (o *Orchestrator) Status() (State, Progress) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.progress
}

// Abort pide detener la exportación en curso. Se respeta al terminar la factura
// que se está generando; devuelve false si no hay exportación.
func (o *Orchestrator) Abort() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateGenerating {
		return false
	}
	o.aborting.Store(true)
	o.log.Info().Msg("cancelación solicitada")
	return true
}

func (o *Orchestrator) setState(s State, p Progress) {
	o.mu.Lock()
	o.state = s
	o.progress = p
	o.mu.Unlock()
}

// ExportBatch genera un PDF por factura del lote y guarda Invoices.zip.
// Sin lote exporta la factura activa como único documento.
// Al terminar, o al cancelar, deja activo el índice original.
func (o *Orchestrator) ExportBatch(ctx context.Context, onProgress func(Progress)) (Summary, error) {
	nav, err := o.acquire()
	if err != nil {
		return Summary{}, err
	}
	defer nav.Release()

	total := nav.BatchLen()
	if total == 0 {
		total = 1
	}
	original := nav.CurrentIndex()
	current := original
	archive := o.newArchive()
	names := make(map[string]int)
	sum := Summary{Total: total}

	o.aborting.Store(false)
	o.setState(StateGenerating, Progress{Current: 0, Total: total})
	defer o.setState(StateIdle, Progress{})
	o.log.Info().Int("total", total).Int("from", original).Msg("exportación por lote iniciada")

	for i := 0; i < total; i++ {
		if o.aborting.Load() {
			sum.Aborted = true
			break
		}
		if ctx.Err() != nil {
			sum.Aborted = true
			break
		}

		if err := o.generate(ctx, nav, &current, i, archive, names); err != nil {
			if ctx.Err() != nil {
				sum.Aborted = true
				break
			}
			sum.Failed = append(sum.Failed, i)
			o.log.Warn().Err(err).Int("index", i).Msg("factura no generada")
		} else {
			sum.Succeeded++
		}

		p := Progress{Current: i + 1, Total: total}
		o.setState(StateGenerating, p)
		if onProgress != nil {
			onProgress(p)
		}
	}

	// La restauración no depende del contexto del llamador.
	if err := o.navigateTo(context.WithoutCancel(ctx), nav, &current, original); err != nil {
		o.log.Warn().Err(err).Msg("restaurar índice original")
	}

	o.log.Info().
		Int("succeeded", sum.Succeeded).
		Int("failed", len(sum.Failed)).
		Bool("aborted", sum.Aborted).
		Msg("exportación por lote finalizada")

	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("export: %w", err)
	}
	if archive.Len() == 0 {
		return sum, domain.ErrNothingArchived
	}
	data, err := archive.Bytes()
	if err != nil {
		return sum, fmt.Errorf("export: cerrar archivo: %w", err)
	}
	if err := o.saver.Save(ctx, ArchiveName, data); err != nil {
		return sum, fmt.Errorf("export: guardar %s: %w", ArchiveName, err)
	}
	sum.ArchiveName = ArchiveName
	sum.Archive = data
	return sum, nil
}

func (o *Orchestrator) generate(ctx context.Context, nav Navigator, current *int, i int, archive Archive, names map[string]int) error {
	if err := o.navigateTo(ctx, nav, current, i); err != nil {
		return err
	}
	if err := sleep(ctx, o.cfg.RenderDelay); err != nil {
		return err
	}
	frame := o.surface.Current()
	data, err := o.rasterize(ctx, frame)
	if err != nil {
		return err
	}
	name := uniqueName(names, fmt.Sprintf("Invoice_%s.pdf", fileNumber(frame.Invoice, i)))
	return archive.Add(name, data)
}

// navigateTo avanza o retrocede de a un paso hasta target, esperando el render en cada paso.
func (o *Orchestrator) navigateTo(ctx context.Context, nav Navigator, current *int, target int) error {
	for *current != target {
		var moved bool
		if *current < target {
			moved = nav.SelectNext()
		} else {
			moved = nav.SelectPrevious()
		}
		if !moved {
			break
		}
		if *current < target {
			*current++
		} else {
			*current--
		}
		if err := o.settle(ctx); err != nil {
			return err
		}
	}
	if *current != target {
		return fmt.Errorf("export: no se pudo navegar al índice %d", target)
	}
	return o.settle(ctx)
}

func (o *Orchestrator) settle(ctx context.Context) error {
	if err := o.surface.Settle(ctx); err != nil {
		return err
	}
	return sleep(ctx, o.cfg.SettleDelay)
}

func (o *Orchestrator) rasterize(ctx context.Context, f Frame) ([]byte, error) {
	data, err := o.raster.Rasterize(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("export: rasterizar: %w", err)
	}
	if len(data) < o.cfg.MinDocumentBytes {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrBlankDocument, len(data))
	}
	return data, nil
}

// ExportCurrent genera el PDF de la factura activa y lo guarda como
// Invoice-<número>-<fecha>.pdf. Si falla no se guarda nada.
func (o *Orchestrator) ExportCurrent(ctx context.Context) (Result, error) {
	nav, err := o.acquire()
	if err != nil {
		return Result{}, err
	}
	defer nav.Release()

	if err := o.settle(ctx); err != nil {
		return Result{}, err
	}
	frame := o.surface.Current()
	data, err := o.rasterize(ctx, frame)
	if err != nil {
		return Result{}, err
	}
	name := fmt.Sprintf("Invoice-%s-%s.pdf", fileNumber(frame.Invoice, nav.CurrentIndex()), o.now().Format(entity.DateLayout))
	if err := o.saver.Save(ctx, name, data); err != nil {
		return Result{}, fmt.Errorf("export: guardar %s: %w", name, err)
	}
	o.log.Info().Str("file", name).Int("bytes", len(data)).Msg("factura exportada")
	return Result{Name: name, Data: data}, nil
}

// PrintCurrent devuelve el markup renderizado de la factura activa.
func (o *Orchestrator) PrintCurrent(ctx context.Context) (string, error) {
	if err := o.surface.Settle(ctx); err != nil {
		return "", err
	}
	f := o.surface.Current()
	if f.Markup == "" {
		return "", errors.New("export: la superficie no tiene contenido")
	}
	return f.Markup, nil
}

func fileNumber(inv entity.InvoiceData, index int) string {
	n := strings.TrimSpace(inv.InvoiceNumber)
	if n == "" {
		n = batch.NumberFor(index)
	}
	return strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(n)
}

func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		ext := ".pdf"
		return fmt.Sprintf("%s(%d)%s", strings.TrimSuffix(name, ext), n, ext)
	}
	return name
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
