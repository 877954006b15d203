package render

import "github.com/jhoicas/billera-api/internal/domain/invoice"

// Theme colores de una plantilla.
type Theme struct {
	Accent  string // hex #rrggbb
	R, G, B int
}

var themes = map[string]Theme{
	invoice.TemplateProfessional: {Accent: "#1e3a8a", R: 30, G: 58, B: 138},
	invoice.TemplateModern:       {Accent: "#7c3aed", R: 124, G: 58, B: 237},
	invoice.TemplateClassic:      {Accent: "#374151", R: 55, G: 65, B: 81},
	invoice.TemplateMinimal:      {Accent: "#111827", R: 17, G: 24, B: 39},
	invoice.TemplateCreative:     {Accent: "#db2777", R: 219, G: 39, B: 119},
}

// ThemeFor devuelve el tema de la plantilla; sin plantilla usa "professional".
func ThemeFor(templateID string) Theme {
	if t, ok := themes[templateID]; ok {
		return t
	}
	return themes[invoice.TemplateProfessional]
}
