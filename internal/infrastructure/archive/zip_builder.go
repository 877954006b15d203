// Package archive empaqueta los PDF del lote en un ZIP en memoria.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// ZipBuilder acumula entradas en un ZIP en memoria. Bytes cierra el archivo;
// después de cerrarlo no admite más entradas.
type ZipBuilder struct {
	buf    bytes.Buffer
	zw     *zip.Writer
	n      int
	closed bool
	now    func() time.Time
}

// NewZipBuilder crea un ZIP vacío.
func NewZipBuilder() *ZipBuilder {
	b := &ZipBuilder{now: time.Now}
	b.zw = zip.NewWriter(&b.buf)
	return b
}

// Add agrega un archivo comprimido con Deflate.
func (b *ZipBuilder) Add(name string, data []byte) error {
	if b.closed {
		return fmt.Errorf("zip: archivo cerrado, no se puede agregar %s", name)
	}
	fw, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: b.now(),
	})
	if err != nil {
		return fmt.Errorf("zip: crear entrada %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("zip: escribir %s: %w", name, err)
	}
	b.n++
	return nil
}

// Len cantidad de entradas.
func (b *ZipBuilder) Len() int { return b.n }

// Bytes cierra el ZIP y devuelve su contenido.
func (b *ZipBuilder) Bytes() ([]byte, error) {
	if !b.closed {
		if err := b.zw.Close(); err != nil {
			return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
		}
		b.closed = true
	}
	return b.buf.Bytes(), nil
}
