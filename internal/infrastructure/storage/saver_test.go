package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billera-api/internal/infrastructure/storage"
)

func TestDirSaver_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s, err := storage.NewDirSaver(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "Invoices.zip", []byte("zip")))

	data, err := os.ReadFile(filepath.Join(dir, "Invoices.zip"))
	require.NoError(t, err)
	assert.Equal(t, "zip", string(data))
}

func TestDirSaver_NoSaleDelDirectorio(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewDirSaver(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "../../escape.pdf", []byte("x")))

	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err, "el archivo queda dentro del directorio")
}

func TestDiscardSaver_RespetaContexto(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, storage.DiscardSaver{}.Save(ctx, "x", nil), context.Canceled)
}
