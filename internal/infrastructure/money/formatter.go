// Package money formatea montos según moneda ISO 4217 y locale.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos como "<código> <número>" con separadores del locale.
type Formatter struct{}

// NewFormatter construye el formateador.
func NewFormatter() *Formatter { return &Formatter{} }

// Format redondea a los decimales estándar de la moneda (2 para USD, 0 para JPY).
// Moneda desconocida: se usan 2 decimales y el código tal cual.
func (f *Formatter) Format(amount decimal.Decimal, code, locale string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	num := exact(message.NewPrinter(parseLocale(locale)), amount, scale, false)
	if code == "" {
		return num
	}
	return code + " " + num
}

// Percent formatea una tasa como "19%".
func (f *Formatter) Percent(rate decimal.Decimal, locale string) string {
	return exact(message.NewPrinter(parseLocale(locale)), rate, 2, true) + "%"
}

// Number formatea una cantidad sin decimales superfluos.
func (f *Formatter) Number(v decimal.Decimal, locale string) string {
	return exact(message.NewPrinter(parseLocale(locale)), v, 4, true)
}

// maxExact límite de la parte entera que x/text formatea sin pasar por float64.
var maxExact = decimal.NewFromInt(1<<63 - 1)

// exact formatea v con scale decimales sin perder precisión: la parte entera se
// agrupa con el locale como int64 y la fracción se toma del decimal.
// Con trim se eliminan los ceros finales de la fracción.
func exact(p *message.Printer, v decimal.Decimal, scale int, trim bool) string {
	v = v.Round(int32(scale))
	abs := v.Abs()
	whole := abs.Truncate(0)
	if whole.GreaterThan(maxExact) {
		opt := number.Scale(scale)
		if trim {
			opt = number.MaxFractionDigits(scale)
		}
		return p.Sprint(number.Decimal(v.InexactFloat64(), opt))
	}

	out := p.Sprint(number.Decimal(whole.IntPart()))
	if scale > 0 {
		fixed := abs.StringFixed(int32(scale))
		frac := fixed[strings.IndexByte(fixed, '.')+1:]
		if trim {
			frac = strings.TrimRight(frac, "0")
		}
		if frac != "" {
			out += decimalSeparator(p) + frac
		}
	}
	if v.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// decimalSeparator separador decimal del locale ("." en en-US, "," en de-DE).
func decimalSeparator(p *message.Printer) string {
	sample := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	sep := strings.TrimFunc(sample, unicode.IsDigit)
	if sep == "" {
		return "."
	}
	return sep
}

func parseLocale(locale string) language.Tag {
	if locale == "" {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}
