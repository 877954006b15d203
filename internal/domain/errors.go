package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrUnknownTemplate         = errors.New("plantilla desconocida")
	ErrEmptyData               = errors.New("el CSV no tiene filas de datos")
	ErrMissingClientIdentifier = errors.New("no hay columna de nombre o email del cliente")
	ErrNoImportInProgress      = errors.New("no hay importación en curso")
	ErrExportInProgress        = errors.New("hay una exportación en curso")
	ErrBlankDocument           = errors.New("documento generado vacío")
	ErrNothingArchived         = errors.New("ninguna factura se pudo generar")
	ErrLogoTooLarge            = errors.New("el logo supera el tamaño máximo")
)
