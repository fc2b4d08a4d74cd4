package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // vacío = sin Swagger UI
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig secreto compartido con el backend para verificar sus tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// BackendConfig API REST del backend de inventario.
// CSRFToken se pasa explícitamente al cliente; no hay estado global.
type BackendConfig struct {
	BaseURL           string
	CSRFToken         string
	Timeout           time.Duration
	SubmitTimeout     time.Duration
	RequestsPerSecond float64
	Burst             int
}

// SessionConfig almacén de sesiones de transacción.
type SessionConfig struct {
	Store string // memory | redis
	TTL   time.Duration
}

// RedisConfig conexión a Redis (solo si Session.Store = redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, BACKEND_BASE_URL, etc.
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

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-console"),
			LogLevel: getString(v, "APP_LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "HTTP_SWAGGER_FILE", "./docs/swagger.json"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		Backend: BackendConfig{
			BaseURL:           getString(v, "BACKEND_BASE_URL", "http://localhost:8000/api"),
			CSRFToken:         getString(v, "BACKEND_CSRF_TOKEN", ""),
			Timeout:           getDuration(v, "BACKEND_TIMEOUT", 15*time.Second),
			SubmitTimeout:     getDuration(v, "BACKEND_SUBMIT_TIMEOUT", 30*time.Second),
			RequestsPerSecond: getFloat(v, "BACKEND_RPS", 20),
			Burst:             getInt(v, "BACKEND_BURST", 40),
		},
		Session: SessionConfig{
			Store: getString(v, "SESSION_STORE", "memory"),
			TTL:   getDuration(v, "SESSION_TTL", 8*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones inválidas.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" && c.App.Env == "production" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("config: BACKEND_BASE_URL es obligatorio")
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: SESSION_STORE %q no soportado (memory|redis)", c.Session.Store)
	}
	if c.Backend.RequestsPerSecond <= 0 {
		return fmt.Errorf("config: BACKEND_RPS debe ser positivo")
	}
	return nil
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

// getDuration acepta "30s", "5m" o segundos enteros ("30").
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	s := v.GetString(key)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
