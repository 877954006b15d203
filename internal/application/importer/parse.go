package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/billera-api/internal/domain"
)

// Parse divide el texto en filas y celdas: salto de línea y luego coma, sin comillas.
// Una coma dentro de un campo no es representable.
// Si el contenido no es UTF-8 válido se decodifica como ISO-8859-1 (exportaciones de Excel).
func Parse(raw []byte) ([][]string, error) {
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, domain.ErrEmptyData
	}

	rows := make([][]string, len(lines))
	for i, line := range lines {
		cells := strings.Split(line, ",")
		for j := range cells {
			cells[j] = strings.TrimSpace(cells[j])
		}
		rows[i] = cells
	}
	return rows, nil
}

func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("importer: decodificar ISO-8859-1: %w", err)
	}
	return string(out), nil
}

// parseNumber interpreta un número de forma tolerante; si falla devuelve cero.
// Acepta sufijo "%" y espacios.
func parseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
