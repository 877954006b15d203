package invoice

import "github.com/jhoicas/billera-api/internal/domain/entity"

// IDs de las plantillas disponibles.
const (
	TemplateProfessional = "professional"
	TemplateModern       = "modern"
	TemplateClassic      = "classic"
	TemplateMinimal      = "minimal"
	TemplateCreative     = "creative"
)

var catalogue = []entity.InvoiceTemplate{
	{ID: TemplateProfessional, Name: "Professional", Image: "/templates/professional.png"},
	{ID: TemplateModern, Name: "Modern", Image: "/templates/modern.png"},
	{ID: TemplateClassic, Name: "Classic", Image: "/templates/classic.png"},
	{ID: TemplateMinimal, Name: "Minimal", Image: "/templates/minimal.png"},
	{ID: TemplateCreative, Name: "Creative", Image: "/templates/creative.png"},
}

// Templates devuelve una copia del catálogo de plantillas.
func Templates() []entity.InvoiceTemplate {
	out := make([]entity.InvoiceTemplate, len(catalogue))
	copy(out, catalogue)
	return out
}

// FindTemplate busca una plantilla por id.
func FindTemplate(id string) (entity.InvoiceTemplate, bool) {
	for _, t := range catalogue {
		if t.ID == id {
			return t, true
		}
	}
	return entity.InvoiceTemplate{}, false
}
