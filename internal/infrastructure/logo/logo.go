// Package logo convierte imágenes subidas en data URIs para BusinessInfo.Logo.
package logo

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/billera-api/internal/domain"
)

// DefaultMaxBytes tamaño máximo por defecto (5 MB).
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// Encode lee la imagen (como mucho limit bytes) y devuelve "data:<mime>;base64,...".
// Rechaza archivos que superan el límite y contenido que no es imagen.
func Encode(r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("logo: leer: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: máximo %d bytes", domain.ErrLogoTooLarge, limit)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: el logo debe ser una imagen (%s)", domain.ErrInvalidInput, mime.String())
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Decode extrae los bytes y el tipo MIME de un data URI en base64.
func Decode(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("%w: no es un data URI", domain.ErrInvalidInput)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("%w: data URI sin base64", domain.ErrInvalidInput)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: base64: %v", domain.ErrInvalidInput, err)
	}
	return data, strings.TrimSuffix(meta, ";base64"), nil
}
