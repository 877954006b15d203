package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Invoice InvoiceConfig
	Export  ExportConfig
	Upload  UploadConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SwaggerFile  string // vacío = spec embebida
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// InvoiceConfig valores por defecto de una factura nueva.
type InvoiceConfig struct {
	Currency string // ISO 4217
	Language string
	Locale   string // BCP 47, ej. en-US
	Terms    string
	DueDays  int
}

// ExportConfig generación de PDF y ZIP.
type ExportConfig struct {
	SettleDelay      time.Duration // espera tras navegar a la siguiente factura del lote
	RenderDelay      time.Duration // espera antes de rasterizar
	MinDocumentBytes int           // un PDF más chico se considera en blanco
	OutputDir        string        // vacío = no se guarda en disco, solo descarga
	MarginTop        float64       // mm
	MarginRight      float64
	MarginBottom     float64
	MarginLeft       float64
}

// UploadConfig límites de archivos subidos.
type UploadConfig struct {
	LogoMaxBytes   int64
	ImportMaxBytes int64
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, INVOICE_CURRENCY, EXPORT_OUTPUT_DIR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "billera"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			ReadTimeout:  getDuration(v, "HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration(v, "HTTP_WRITE_TIMEOUT", 2*time.Minute),
			IdleTimeout:  getDuration(v, "HTTP_IDLE_TIMEOUT", 60*time.Second),
			SwaggerFile:  getString(v, "HTTP_SWAGGER_FILE", ""),
		},
		Invoice: InvoiceConfig{
			Currency: strings.ToUpper(getString(v, "INVOICE_CURRENCY", "USD")),
			Language: getString(v, "INVOICE_LANGUAGE", "en"),
			Locale:   getString(v, "INVOICE_LOCALE", "en-US"),
			Terms:    getString(v, "INVOICE_TERMS", "Payment is due within 30 days"),
			DueDays:  getInt(v, "INVOICE_DUE_DAYS", 30),
		},
		Export: ExportConfig{
			SettleDelay:      getDuration(v, "EXPORT_SETTLE_DELAY", 500*time.Millisecond),
			RenderDelay:      getDuration(v, "EXPORT_RENDER_DELAY", 200*time.Millisecond),
			MinDocumentBytes: getInt(v, "EXPORT_MIN_DOCUMENT_BYTES", 1000),
			OutputDir:        getString(v, "EXPORT_OUTPUT_DIR", ""),
			MarginTop:        getFloat(v, "EXPORT_MARGIN_TOP", 10),
			MarginRight:      getFloat(v, "EXPORT_MARGIN_RIGHT", 10),
			MarginBottom:     getFloat(v, "EXPORT_MARGIN_BOTTOM", 10),
			MarginLeft:       getFloat(v, "EXPORT_MARGIN_LEFT", 10),
		},
		Upload: UploadConfig{
			LogoMaxBytes:   int64(getInt(v, "UPLOAD_LOGO_MAX_BYTES", 5*1024*1024)),
			ImportMaxBytes: int64(getInt(v, "UPLOAD_IMPORT_MAX_BYTES", 2*1024*1024)),
		},
	}

	if cfg.Invoice.DueDays < 0 {
		return nil, fmt.Errorf("config: INVOICE_DUE_DAYS no puede ser negativo (%d)", cfg.Invoice.DueDays)
	}
	if cfg.Export.MinDocumentBytes < 0 {
		return nil, fmt.Errorf("config: EXPORT_MIN_DOCUMENT_BYTES no puede ser negativo (%d)", cfg.Export.MinDocumentBytes)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

// getDuration acepta "500ms", "2s" o un entero en milisegundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	s := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
