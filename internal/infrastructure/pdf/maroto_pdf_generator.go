// Package pdf rasteriza la factura montada en la superficie de render a un PDF A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo + Emisor        │  N° Factura / Fecha / Vence  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAR A: cliente                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas visibles, agrupada por categoría opcional   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuestos / Total           │
//	│  NOTAS y TÉRMINOS                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/billera-api/internal/application/export"
	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
	"github.com/jhoicas/billera-api/internal/infrastructure/logo"
	"github.com/jhoicas/billera-api/internal/infrastructure/render"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorBand  = &props.Color{Red: 247, Green: 249, Blue: 252}
)

// ── Rasterizer ────────────────────────────────────────────────────────────────

// MoneyFormatter formateo de montos para las celdas.
type MoneyFormatter interface {
	Format(amount decimal.Decimal, code, locale string) string
	Percent(rate decimal.Decimal, locale string) string
	Number(v decimal.Decimal, locale string) string
}

// Margins márgenes de página en mm.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// MarotoRasterizer implementa export.Rasterizer usando Maroto v2.
type MarotoRasterizer struct {
	money   MoneyFormatter
	margins Margins
}

// NewMarotoRasterizer construye el rasterizador. Márgenes en cero usan 10 mm.
func NewMarotoRasterizer(money MoneyFormatter, margins Margins) *MarotoRasterizer {
	if margins == (Margins{}) {
		margins = Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}
	}
	return &MarotoRasterizer{money: money, margins: margins}
}

var _ export.Rasterizer = (*MarotoRasterizer)(nil)

// Rasterize genera el PDF de la factura del frame y devuelve sus bytes.
func (g *MarotoRasterizer) Rasterize(ctx context.Context, f export.Frame) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inv := f.Invoice
	theme := render.ThemeFor(templateID(inv))
	accent := &props.Color{Red: theme.R, Green: theme.G, Blue: theme.B}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(g.margins.Left).WithRightMargin(g.margins.Right).
		WithTopMargin(g.margins.Top).WithBottomMargin(g.margins.Bottom).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.InvoiceNumber, true).
		WithAuthor(nonEmpty(inv.BusinessInfo.Name, "billera"), true).
		Build()

	m := maroto.New(cfg)
	p := painter{money: g.money, inv: inv, accent: accent}

	m.AddRows(p.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.5}))
	m.AddRows(p.billToRow())
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))

	cols := inv.ColumnVisibility.Effective(inv.HasCategories())
	m.AddRows(p.tableHeaderRow(cols))
	grouped := inv.SeparateCategories && inv.HasCategories()
	for _, grp := range invoice.GroupLineItems(inv) {
		if grouped {
			m.AddRows(p.categoryRow(grp))
		}
		m.AddRows(p.detailRows(cols, grp.Items)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))
	m.AddRows(p.totalsRow())
	m.AddRows(p.footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type painter struct {
	money  MoneyFormatter
	inv    entity.InvoiceData
	accent *props.Color
}

func (p painter) amount(v decimal.Decimal) string {
	return p.money.Format(v, p.inv.Currency, p.inv.Locale)
}

// headerRow: logo + emisor (izq) y número / fechas (der).
func (p painter) headerRow() core.Row {
	if img := logoComponent(p.inv.BusinessInfo.Logo); img != nil {
		return row.New(28).Add(
			col.New(2).Add(img),
			col.New(5).Add(p.businessLines(1)...),
			col.New(5).Add(p.metaLines()...),
		)
	}
	return row.New(28).Add(
		col.New(7).Add(p.businessLines(1)...),
		col.New(5).Add(p.metaLines()...),
	)
}

func (p painter) businessLines(top float64) []core.Component {
	biz := p.inv.BusinessInfo
	out := []core.Component{
		text.New(nonEmpty(biz.Name, "—"), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: p.accent, Top: top,
		}),
	}
	info := []string{
		biz.Address,
		joinNonEmpty(", ", biz.City, biz.State, biz.Zip, biz.Country),
		joinNonEmpty("   |   ", biz.Phone, biz.Email, biz.Website),
	}
	if biz.TaxID != "" {
		info = append(info, "Tax ID: "+biz.TaxID)
	}
	y := top + 8
	for _, s := range info {
		if s == "" {
			continue
		}
		out = append(out, text.New(s, props.Text{Size: 8, Top: y, Color: colorGray}))
		y += 4
	}
	return out
}

func (p painter) metaLines() []core.Component {
	return []core.Component{
		text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: p.accent, Top: 1,
		}),
		text.New(nonEmpty(p.inv.InvoiceNumber, "—"), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Date: "+p.inv.InvoiceDate, props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
		text.New("Due: "+p.inv.DueDate, props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}),
	}
}

// billToRow: datos del cliente.
func (p painter) billToRow() core.Row {
	c := p.inv.ClientInfo
	return row.New(18).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: p.accent, Top: 1,
			}),
			text.New(nonEmpty(c.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(joinNonEmpty(", ", c.Address, c.City, c.State, c.Zip, c.Country), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
			text.New(joinNonEmpty("   |   ", c.Email, c.Phone), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
	)
}

// column una columna visible de la tabla con su ancho en la grilla de 12.
type column struct {
	label string
	size  int
	align align.Type
	value func(entity.LineItem) string
}

func (p painter) columns(cols entity.ColumnVisibility) []column {
	loc := p.inv.Locale
	var out []column
	fixed := 0
	add := func(on bool, c column) {
		if on {
			out = append(out, c)
			fixed += c.size
		}
	}
	add(cols.Quantity, column{"Qty", 1, align.Center, func(it entity.LineItem) string {
		return p.money.Number(it.Quantity, loc)
	}})
	add(cols.UnitPrice, column{"Unit price", 2, align.Right, func(it entity.LineItem) string {
		return p.amount(it.UnitPrice)
	}})
	add(cols.Discount, column{"Disc.", 1, align.Center, func(it entity.LineItem) string {
		return p.money.Percent(it.Discount, loc)
	}})
	add(cols.TaxRate, column{"Tax", 1, align.Center, func(it entity.LineItem) string {
		return p.money.Percent(it.TaxRate, loc)
	}})
	add(cols.Category, column{"Category", 2, align.Left, func(it entity.LineItem) string {
		return it.Category
	}})
	add(true, column{"Total", 2, align.Right, func(it entity.LineItem) string {
		return p.amount(it.Total)
	}})

	desc := column{"Description", 12 - fixed, align.Left, func(it entity.LineItem) string {
		return it.Description
	}}
	return append([]column{desc}, out...)
}

// tableHeaderRow: cabecera con el color de la plantilla.
func (p painter) tableHeaderRow(cols entity.ColumnVisibility) core.Row {
	var cs []core.Col
	for _, c := range p.columns(cols) {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: p.accent})
}

func (p painter) categoryRow(g invoice.CategoryGroup) core.Row {
	name := nonEmpty(g.Category, "Other")
	return row.New(7).Add(
		col.New(8).Add(text.New(name, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1.5, Left: 1,
		})),
		col.New(4).Add(text.New(p.amount(g.Total), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1.5, Right: 1,
		})),
	).WithStyle(&props.Cell{BackgroundColor: colorBand})
}

// detailRows: una fila por línea.
func (p painter) detailRows(cols entity.ColumnVisibility, items []entity.LineItem) []core.Row {
	defs := p.columns(cols)
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		cs := make([]core.Col, 0, len(defs))
		for _, c := range defs {
			cs = append(cs, col.New(c.size).Add(text.New(c.value(it), props.Text{
				Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(7).Add(cs...))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (p painter) totalsRow() core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, a align.Type, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a, Color: p.accent, Right: right, Top: 16,
		})
	}

	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Discount:", 6),
			label("Tax:", 11),
			grand("TOTAL:", align.Right, 2),
		),
		col.New(3).Add(
			value(p.amount(p.inv.Subtotal), 1),
			value("-"+p.amount(p.inv.DiscountTotal), 6),
			value(p.amount(p.inv.TaxTotal), 11),
			grand(p.amount(p.inv.GrandTotal), align.Right, 1),
		),
	)
}

// footerRows: notas y términos.
func (p painter) footerRows() []core.Row {
	var rows []core.Row
	for _, sec := range []struct{ title, body string }{
		{"NOTES", p.inv.Notes},
		{"TERMS", p.inv.Terms},
	} {
		if strings.TrimSpace(sec.body) == "" {
			continue
		}
		rows = append(rows,
			row.New(3),
			row.New(14).Add(col.New(12).Add(
				text.New(sec.title, props.Text{
					Style: fontstyle.Bold, Size: 8, Color: p.accent, Top: 1,
				}),
				text.New(sec.body, props.Text{Size: 8, Color: colorGray, Top: 5}),
			)),
		)
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// logoComponent decodifica el data URI del logo; formatos no soportados se omiten.
func logoComponent(uri *string) core.Component {
	if uri == nil || *uri == "" {
		return nil
	}
	data, mime, err := logo.Decode(*uri)
	if err != nil {
		return nil
	}
	var ext extension.Type
	switch mime {
	case "image/png":
		ext = extension.Png
	case "image/jpeg", "image/jpg":
		ext = extension.Jpg
	default:
		return nil
	}
	return image.NewFromBytes(data, ext, props.Rect{Percent: 90, Center: true})
}

func templateID(inv entity.InvoiceData) string {
	if inv.Template == nil {
		return ""
	}
	return inv.Template.ID
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sep)
}
