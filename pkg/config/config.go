package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper
// desde env y opcionalmente archivo .env).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Store   StoreConfig
	Billing BillingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig rutas de persistencia en disco.
type StoreConfig struct {
	DataDir    string // archivos XML con las colecciones de entidades
	ReportsDir string // PDFs generados
}

// BillingConfig opciones del motor de facturación.
type BillingConfig struct {
	// LexicographicDates activa el modo de compatibilidad que filtra
	// consumos comparando strings dd/mm/yyyy en lugar de fechas
	// calendario. Ver internal/application/billing.
	LexicographicDates bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde un archivo .env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "cloud-billing")
	v.SetDefault("APP_LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("REPORTS_DIR", "reportes")
	v.SetDefault("BILLING_LEXICOGRAPHIC_DATES", false)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("APP_LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Store: StoreConfig{
			DataDir:    v.GetString("DATA_DIR"),
			ReportsDir: v.GetString("REPORTS_DIR"),
		},
		Billing: BillingConfig{
			LexicographicDates: v.GetBool("BILLING_LEXICOGRAPHIC_DATES"),
		},
	}

	return cfg, nil
}
