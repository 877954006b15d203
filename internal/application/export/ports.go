// Package export genera los PDF de la factura activa o de todo el lote,
// de a uno por vez sobre la superficie de render compartida.
package export

import (
	"context"

	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// Navigator navegación exclusiva del lote durante la exportación.
type Navigator interface {
	CurrentIndex() int
	BatchLen() int // 0 sin lote
	SelectNext() bool
	SelectPrevious() bool
	Release()
}

// AcquireFunc obtiene la exclusividad de exportación (domain.ErrExportInProgress si ya hay otra).
type AcquireFunc func() (Navigator, error)

// Frame lo que está montado en la superficie de render.
type Frame struct {
	Invoice entity.InvoiceData
	Markup  string
	Version uint64
}

// Surface superficie de render compartida: muestra una factura a la vez.
type Surface interface {
	Current() Frame
	// Settle bloquea hasta que la última factura montada terminó de renderizarse.
	Settle(ctx context.Context) error
}

// Rasterizer convierte un frame en un documento (PDF A4).
type Rasterizer interface {
	Rasterize(ctx context.Context, f Frame) ([]byte, error)
}

// Archive acumula documentos en un único archivo.
type Archive interface {
	Add(name string, data []byte) error
	Len() int
	Bytes() ([]byte, error)
}

// ArchiveFactory crea un archivo vacío por exportación.
type ArchiveFactory func() Archive

// Saver entrega el resultado final (descarga o disco).
type Saver interface {
	Save(ctx context.Context, name string, data []byte) error
}
