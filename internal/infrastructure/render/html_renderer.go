// Package render monta la factura activa como HTML en una superficie compartida.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
)

// MoneyFormatter formateo de montos según moneda y locale.
type MoneyFormatter interface {
	Format(amount decimal.Decimal, code, locale string) string
	Percent(rate decimal.Decimal, locale string) string
	Number(v decimal.Decimal, locale string) string
}

const invoiceHTMLTemplate = `<!doctype html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Inv.InvoiceNumber}}</title>
  <style>
    :root { --accent: {{.Accent}}; }
    body { font-family: Helvetica, Arial, sans-serif; color: #1a1f36; margin: 0; padding: 32px; }
    .invoice { max-width: 794px; margin: 0 auto; }
    header { display: flex; justify-content: space-between; border-bottom: 2px solid var(--accent); padding-bottom: 16px; }
    header h1 { color: var(--accent); margin: 0; }
    .logo { max-height: 64px; }
    .parties { display: flex; justify-content: space-between; margin: 24px 0; }
    .label { font-size: 11px; text-transform: uppercase; color: #8792a2; }
    table { width: 100%; border-collapse: collapse; }
    th { background: var(--accent); color: #fff; text-align: left; padding: 6px; font-size: 12px; }
    td { padding: 6px; border-bottom: 1px solid #e3e8ee; font-size: 12px; }
    .num { text-align: right; }
    .category { font-weight: 600; background: #f7f9fc; }
    .totals { margin-left: auto; width: 40%; margin-top: 16px; }
    .grand { font-weight: 700; color: var(--accent); }
  </style>
</head>
<body class="template-{{.TemplateID}}">
<div class="invoice">
  <header>
    <div>
      {{if .Logo}}<img class="logo" src="{{.Logo}}" alt="logo" />{{end}}
      <h1>{{.Biz.Name}}</h1>
      <div>{{.Biz.Address}}</div>
      <div>{{join .Biz.City .Biz.State .Biz.Zip}}</div>
      <div>{{.Biz.Country}}</div>
      <div>{{.Biz.Phone}} {{.Biz.Email}}</div>
      {{if .Biz.Website}}<div>{{.Biz.Website}}</div>{{end}}
      {{if .Biz.TaxID}}<div>Tax ID: {{.Biz.TaxID}}</div>{{end}}
    </div>
    <div class="num">
      <div class="label">Invoice</div>
      <div>{{.Inv.InvoiceNumber}}</div>
      <div class="label">Date</div>
      <div>{{.Inv.InvoiceDate}}</div>
      <div class="label">Due</div>
      <div>{{.Inv.DueDate}}</div>
    </div>
  </header>
  <section class="parties">
    <div>
      <div class="label">Bill to</div>
      <div>{{.Client.Name}}</div>
      <div>{{.Client.Address}}</div>
      <div>{{join .Client.City .Client.State .Client.Zip}}</div>
      <div>{{.Client.Country}}</div>
      <div>{{.Client.Phone}} {{.Client.Email}}</div>
    </div>
  </section>
  <table>
    <thead>
      <tr>
        <th>Description</th>
        {{if .Cols.Category}}<th>Category</th>{{end}}
        {{if .Cols.Quantity}}<th class="num">Qty</th>{{end}}
        {{if .Cols.UnitPrice}}<th class="num">Unit price</th>{{end}}
        {{if .Cols.Discount}}<th class="num">Discount</th>{{end}}
        {{if .Cols.TaxRate}}<th class="num">Tax</th>{{end}}
        <th class="num">Total</th>
      </tr>
    </thead>
    <tbody>
    {{range .Groups}}
      {{if .Title}}<tr class="category"><td colspan="{{$.Span}}">{{.Title}}</td></tr>{{end}}
      {{range .Rows}}
      <tr>
        <td>{{.Description}}</td>
        {{if $.Cols.Category}}<td>{{.Category}}</td>{{end}}
        {{if $.Cols.Quantity}}<td class="num">{{.Quantity}}</td>{{end}}
        {{if $.Cols.UnitPrice}}<td class="num">{{.UnitPrice}}</td>{{end}}
        {{if $.Cols.Discount}}<td class="num">{{.Discount}}</td>{{end}}
        {{if $.Cols.TaxRate}}<td class="num">{{.TaxRate}}</td>{{end}}
        <td class="num">{{.Total}}</td>
      </tr>
      {{end}}
      {{if .Title}}<tr><td colspan="{{$.Span}}" class="num">{{.Title}} subtotal: {{.Subtotal}}</td></tr>{{end}}
    {{end}}
    </tbody>
  </table>
  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
    <tr><td>Discount</td><td class="num">-{{.Discount}}</td></tr>
    <tr><td>Tax</td><td class="num">{{.Tax}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{.Grand}}</td></tr>
  </table>
  {{if .Inv.Notes}}<p><span class="label">Notes</span><br />{{.Inv.Notes}}</p>{{end}}
  {{if .Inv.Terms}}<p><span class="label">Terms</span><br />{{.Inv.Terms}}</p>{{end}}
</div>
</body>
</html>
`

// HTMLRenderer convierte una factura en HTML imprimible.
type HTMLRenderer struct {
	tpl   *template.Template
	money MoneyFormatter
}

// NewHTMLRenderer construye el renderizador.
func NewHTMLRenderer(money MoneyFormatter) *HTMLRenderer {
	funcs := template.FuncMap{"join": joinNonEmpty}
	return &HTMLRenderer{
		tpl:   template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
		money: money,
	}
}

type rowView struct {
	Description string
	Category    string
	Quantity    string
	UnitPrice   string
	Discount    string
	TaxRate     string
	Total       string
}

type groupView struct {
	Title    string
	Rows     []rowView
	Subtotal string
}

type pageView struct {
	Inv        entity.InvoiceData
	Biz        entity.BusinessInfo
	Client     entity.ClientInfo
	Lang       string
	TemplateID string
	Accent     string
	Logo       template.URL
	Cols       entity.ColumnVisibility
	Span       int
	Groups     []groupView
	Subtotal   string
	Discount   string
	Tax        string
	Grand      string
}

// Render genera el HTML de la factura.
func (r *HTMLRenderer) Render(inv entity.InvoiceData) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, r.view(inv)); err != nil {
		return "", fmt.Errorf("render: ejecutar plantilla: %w", err)
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) view(inv entity.InvoiceData) pageView {
	cur, loc := inv.Currency, inv.Locale
	money := func(v decimal.Decimal) string { return r.money.Format(v, cur, loc) }

	tplID := ""
	if inv.Template != nil {
		tplID = inv.Template.ID
	}
	lang := inv.Language
	if lang == "" {
		lang = "en"
	}
	cols := inv.ColumnVisibility.Effective(inv.HasCategories())
	v := pageView{
		Inv:        inv,
		Biz:        inv.BusinessInfo,
		Client:     inv.ClientInfo,
		Lang:       lang,
		TemplateID: tplID,
		Accent:     ThemeFor(tplID).Accent,
		Cols:       cols,
		Span:       visibleCount(cols),
		Subtotal:   money(inv.Subtotal),
		Discount:   money(inv.DiscountTotal),
		Tax:        money(inv.TaxTotal),
		Grand:      money(inv.GrandTotal),
	}
	if l := inv.BusinessInfo.Logo; l != nil && strings.HasPrefix(*l, "data:image/") {
		v.Logo = template.URL(*l)
	}

	grouped := inv.SeparateCategories && inv.HasCategories()
	for _, g := range invoice.GroupLineItems(inv) {
		gv := groupView{Subtotal: money(g.Total)}
		if grouped {
			gv.Title = g.Category
			if gv.Title == "" {
				gv.Title = "Other"
			}
		}
		for _, it := range g.Items {
			gv.Rows = append(gv.Rows, rowView{
				Description: it.Description,
				Category:    it.Category,
				Quantity:    r.money.Number(it.Quantity, loc),
				UnitPrice:   money(it.UnitPrice),
				Discount:    r.money.Percent(it.Discount, loc),
				TaxRate:     r.money.Percent(it.TaxRate, loc),
				Total:       money(it.Total),
			})
		}
		v.Groups = append(v.Groups, gv)
	}
	return v
}

func visibleCount(c entity.ColumnVisibility) int {
	n := 0
	for _, on := range []bool{c.Description, c.Quantity, c.UnitPrice, c.TaxRate, c.Discount, c.Category, c.Total} {
		if on {
			n++
		}
	}
	return n
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
