package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/billera-api/internal/infrastructure/money"
)

func TestFormat_Locales(t *testing.T) {
	f := money.NewFormatter()
	amount := decimal.RequireFromString("1234567.891")

	assert.Equal(t, "USD 1,234,567.89", f.Format(amount, "usd", "en-US"))
	assert.Equal(t, "EUR 1.234.567,89", f.Format(amount, "EUR", "de-DE"))
	assert.Equal(t, "JPY 1,234,568", f.Format(amount, "JPY", "en"), "el yen no usa decimales")
}

func TestFormat_LocaleInvalidoUsaIngles(t *testing.T) {
	f := money.NewFormatter()

	assert.Equal(t, "USD 10.50", f.Format(decimal.RequireFromString("10.5"), "USD", "???"))
}

func TestPercent(t *testing.T) {
	f := money.NewFormatter()

	assert.Equal(t, "19%", f.Percent(decimal.NewFromInt(19), "en"))
	assert.Equal(t, "7.5%", f.Percent(decimal.RequireFromString("7.5"), "en"))
}

func TestFormat_MontosGrandesSinPerderPrecision(t *testing.T) {
	f := money.NewFormatter()

	assert.Equal(t, "USD 90,071,992,547,409.93", f.Format(decimal.RequireFromString("90071992547409.93"), "USD", "en-US"))
	assert.Equal(t, "USD 1,234,567,890,123,456.78", f.Format(decimal.RequireFromString("1234567890123456.78"), "USD", "en-US"))
	assert.Equal(t, "EUR 1.234.567.890.123.456,78", f.Format(decimal.RequireFromString("1234567890123456.78"), "EUR", "de-DE"))
}

func TestFormat_Negativo(t *testing.T) {
	f := money.NewFormatter()

	assert.Equal(t, "USD -1,000.05", f.Format(decimal.RequireFromString("-1000.049"), "USD", "en-US"))
}

func TestNumber_RecortaCeros(t *testing.T) {
	f := money.NewFormatter()

	assert.Equal(t, "3", f.Number(decimal.RequireFromString("3.0000"), "en"))
	assert.Equal(t, "2.125", f.Number(decimal.RequireFromString("2.12500"), "en"))
	assert.Equal(t, "1,5", f.Number(decimal.RequireFromString("1.5"), "de-DE"))
}
