// Package storage entrega los documentos exportados.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DirSaver escribe cada documento en un directorio local.
type DirSaver struct {
	dir string
	log zerolog.Logger
}

// NewDirSaver crea el directorio si no existe.
func NewDirSaver(dir string, log zerolog.Logger) (*DirSaver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &DirSaver{dir: dir, log: log.With().Str("component", "storage").Logger()}, nil
}

// Save escribe data en <dir>/<name>. El nombre no puede salir del directorio.
func (s *DirSaver) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return fmt.Errorf("storage: nombre inválido %q", name)
	}
	path := filepath.Join(s.dir, base)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: renombrar %s: %w", path, err)
	}
	s.log.Info().Str("file", path).Int("bytes", len(data)).Msg("documento guardado")
	return nil
}

// DiscardSaver no guarda nada: el documento solo se devuelve como descarga HTTP.
type DiscardSaver struct{}

// Save no hace nada.
func (DiscardSaver) Save(ctx context.Context, _ string, _ []byte) error { return ctx.Err() }
