// Package config centraliza la configuración de ambos binarios (lectura vía
// Viper desde env y opcionalmente archivo .env).
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación.
type Config struct {
	App         AppConfig
	DB          DBConfig
	HTTP        HTTPConfig
	JWT         JWTConfig
	DataService DataServiceConfig
	Redis       RedisConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL (solo data tier).
// Si DatabaseURL no está vacío se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DatabaseURL si está definido.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con URL encoding para la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
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

// JWTConfig secreto compartido para tokens de servicio entre tiers.
type JWTConfig struct {
	Secret   string
	Issuer   string
	TTLSecs  int
}

// TTL vida del token de servicio.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.TTLSecs) * time.Second
}

// DataServiceConfig cómo alcanza el business tier al data tier.
type DataServiceConfig struct {
	BaseURL     string
	TimeoutSecs int
}

// Timeout por llamada al data tier. En timeout la llamada se trata igual que
// una caída de conexión (respuesta degradada).
func (c DataServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RedisConfig caché de lecturas del business tier. Addr vacío la desactiva.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLSecs  int
}

// TTL vida de las entradas cacheadas.
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSecs) * time.Second
}

// Load lee la configuración desde variables de entorno (y opcionalmente .env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "catalogo-stock"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "catalogo_stock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8081),
		},
		JWT: JWTConfig{
			Secret:  getString(v, "JWT_SECRET", ""),
			Issuer:  getString(v, "JWT_ISSUER", "catalogo-stock"),
			TTLSecs: getInt(v, "JWT_TTL_SECONDS", 60),
		},
		DataService: DataServiceConfig{
			BaseURL:     getString(v, "DATA_SERVICE_URL", "http://localhost:8081"),
			TimeoutSecs: getInt(v, "DATA_SERVICE_TIMEOUT_SECONDS", 5),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTLSecs:  getInt(v, "REDIS_TTL_SECONDS", 30),
		},
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
