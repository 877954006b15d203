// Package importer implementa la importación de líneas desde CSV:
// Idle -> Mapping (encabezados y mapeo propuesto) -> Idle (confirmar o cancelar).
package importer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/billera-api/internal/domain"
	"github.com/jhoicas/billera-api/internal/domain/entity"
)

// State estado del motor de importación.
type State int

const (
	StateIdle State = iota
	StateMapping
)

func (s State) String() string {
	if s == StateMapping {
		return "mapping"
	}
	return "idle"
}

// Preview encabezados, mapeo vigente y primera fila de datos.
type Preview struct {
	Headers []string
	Mapping []Field
	Sample  []string
	Rows    int // filas de datos
}

// Plan resultado de confirmar: las mutaciones a aplicar sobre la factura.
// Client es nil si ninguna columna mapea a un campo de cliente.
type Plan struct {
	Client  *entity.ClientInfoPatch
	Items   []entity.LineItemInput
	Skipped int      // filas descartadas por descripción vacía
	Groups  []string // identificadores de cliente distintos, en orden de aparición
}

// Engine no es seguro para uso concurrente; lo protege el controlador de la sesión.
type Engine struct {
	log     zerolog.Logger
	state   State
	headers []string
	rows    [][]string
	mapping []Field
}

// NewEngine crea el motor en estado Idle.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log.With().Str("component", "importer").Logger()}
}

// State devuelve el estado actual.
func (e *Engine) State() State { return e.state }

// Begin parsea el CSV y propone el mapeo. Si ya había una importación pendiente la reemplaza.
// Con menos de dos filas devuelve domain.ErrEmptyData y el estado no cambia.
func (e *Engine) Begin(raw []byte) (Preview, error) {
	rows, err := Parse(raw)
	if err != nil {
		return Preview{}, err
	}
	e.headers = rows[0]
	e.rows = rows[1:]
	e.mapping = make([]Field, len(e.headers))
	for i, h := range e.headers {
		e.mapping[i] = DetectField(h)
	}
	e.state = StateMapping
	e.log.Info().Int("columns", len(e.headers)).Int("rows", len(e.rows)).Msg("importación iniciada")
	return e.preview(), nil
}

// Preview devuelve el mapeo vigente.
func (e *Engine) Preview() (Preview, error) {
	if e.state != StateMapping {
		return Preview{}, domain.ErrNoImportInProgress
	}
	return e.preview(), nil
}

func (e *Engine) preview() Preview {
	p := Preview{
		Headers: append([]string(nil), e.headers...),
		Mapping: append([]Field(nil), e.mapping...),
		Rows:    len(e.rows),
	}
	if len(e.rows) > 0 {
		p.Sample = append([]string(nil), e.rows[0]...)
	}
	return p
}

// SetMapping reasigna el campo de la columna col.
func (e *Engine) SetMapping(col int, f Field) error {
	if e.state != StateMapping {
		return domain.ErrNoImportInProgress
	}
	if col < 0 || col >= len(e.mapping) {
		return fmt.Errorf("%w: columna %d fuera de rango", domain.ErrInvalidInput, col)
	}
	e.mapping[col] = f
	return nil
}

// SetMappingByHeader reasigna el campo de la primera columna con ese encabezado (sin distinguir mayúsculas).
func (e *Engine) SetMappingByHeader(header string, f Field) error {
	if e.state != StateMapping {
		return domain.ErrNoImportInProgress
	}
	for i, h := range e.headers {
		if strings.EqualFold(h, strings.TrimSpace(header)) {
			e.mapping[i] = f
			return nil
		}
	}
	return fmt.Errorf("%w: encabezado %q", domain.ErrNotFound, header)
}

// Cancel descarta la importación pendiente.
func (e *Engine) Cancel() {
	if e.state == StateMapping {
		e.log.Info().Msg("importación cancelada")
	}
	e.reset()
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.headers = nil
	e.rows = nil
	e.mapping = nil
}

// Confirm materializa las filas según el mapeo y vuelve a Idle.
// Si hay campos de cliente, solo se importan las filas del primer cliente encontrado.
// Sin columna de nombre ni email de cliente devuelve domain.ErrMissingClientIdentifier
// y la importación se descarta.
func (e *Engine) Confirm() (Plan, error) {
	if e.state != StateMapping {
		return Plan{}, domain.ErrNoImportInProgress
	}
	defer e.reset()

	hasClient := false
	nameCol, emailCol := -1, -1
	for i, f := range e.mapping {
		if f.IsClient() {
			hasClient = true
		}
		if f == FieldClientName && nameCol < 0 {
			nameCol = i
		}
		if f == FieldClientEmail && emailCol < 0 {
			emailCol = i
		}
	}

	var plan Plan
	selected := e.rows
	if hasClient {
		idCol := nameCol
		if idCol < 0 {
			idCol = emailCol
		}
		if idCol < 0 {
			e.log.Warn().Msg("importación sin identificador de cliente")
			return Plan{}, domain.ErrMissingClientIdentifier
		}
		plan.Groups = groupKeys(e.rows, idCol)
		selected = nil
		if len(plan.Groups) > 0 {
			for _, r := range e.rows {
				if cell(r, idCol) == plan.Groups[0] {
					selected = append(selected, r)
				}
			}
		}
		if len(selected) > 0 {
			patch := e.clientPatch(selected[0])
			plan.Client = &patch
		}
	}

	for _, r := range selected {
		in, ok := e.lineItem(r)
		if !ok {
			plan.Skipped++
			continue
		}
		plan.Items = append(plan.Items, in)
	}

	e.log.Info().
		Int("items", len(plan.Items)).
		Int("skipped", plan.Skipped).
		Int("clients", len(plan.Groups)).
		Msg("importación confirmada")
	return plan, nil
}

func (e *Engine) lineItem(r []string) (entity.LineItemInput, bool) {
	in := entity.NewLineItemInput()
	for i, f := range e.mapping {
		v := cell(r, i)
		if f == FieldIgnore || f.IsClient() || v == "" {
			continue
		}
		switch f {
		case FieldDescription:
			in.Description = v
		case FieldCategory:
			in.Category = v
		case FieldQuantity:
			in.Quantity = parseNumber(v)
		case FieldUnitPrice:
			in.UnitPrice = parseNumber(v)
		case FieldTaxRate:
			in.TaxRate = parseNumber(v)
		case FieldDiscount:
			in.Discount = parseNumber(v)
		}
	}
	return in, in.Description != ""
}

// clientPatch solo incluye los valores no vacíos de la fila.
func (e *Engine) clientPatch(r []string) entity.ClientInfoPatch {
	var p entity.ClientInfoPatch
	for i, f := range e.mapping {
		v := cell(r, i)
		if v == "" {
			continue
		}
		val := v
		switch f {
		case FieldClientName:
			p.Name = &val
		case FieldClientEmail:
			p.Email = &val
		case FieldClientPhone:
			p.Phone = &val
		case FieldClientAddress:
			p.Address = &val
		case FieldClientCity:
			p.City = &val
		case FieldClientState:
			p.State = &val
		case FieldClientZip:
			p.Zip = &val
		case FieldClientCountry:
			p.Country = &val
		}
	}
	return p
}

func groupKeys(rows [][]string, col int) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, r := range rows {
		k := cell(r, col)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func cell(r []string, i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}
