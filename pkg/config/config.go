package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Lo comparten la API, el frontend web y hillaryctl.
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Web   WebConfig
	Redis RedisConfig
	Users UsersConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
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

// JWTConfig configuración de los tokens emitidos por la API.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
	Audience   string
}

// HTTPConfig configuración del servidor HTTP de la API.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WebConfig configuración del frontend renderizado en servidor.
type WebConfig struct {
	Host         string
	Port         int
	APIBaseURL   string
	SessionTTL   int // minutos
	CookieSecure bool
	InsecureTLS  bool // acepta certificados autofirmados de la API (solo desarrollo)
	CSRF         bool
}

// Addr devuelve la dirección de escucha del frontend.
func (c WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionDuration devuelve la vida de la sesión web.
func (c WebConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

// RedisConfig almacén de sesiones del frontend. URL vacía = sesiones en memoria.
type RedisConfig struct {
	URL string
	DB  int
}

// UsersConfig reglas de alta de usuarios.
type UsersConfig struct {
	EmailFormat string // full | short
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, WEB_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

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
			Name:     getString(v, "APP_NAME", "hillary"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", "postgres")),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "hillary"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "hillary-api"),
			Audience:   getString(v, "JWT_AUDIENCE", "hillary-web"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Web: WebConfig{
			Host:         getString(v, "WEB_HOST", "0.0.0.0"),
			Port:         getInt(v, "WEB_PORT", 8081),
			APIBaseURL:   strings.TrimRight(getString(v, "WEB_API_BASE_URL", "http://localhost:8080"), "/"),
			SessionTTL:   getInt(v, "WEB_SESSION_TTL_MINUTES", 60),
			CookieSecure: getBool(v, "WEB_COOKIE_SECURE", false),
			InsecureTLS:  getBool(v, "WEB_INSECURE_TLS", false),
			CSRF:         getBool(v, "WEB_CSRF", true),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
			DB:  getInt(v, "REDIS_DB", 0),
		},
		Users: UsersConfig{
			EmailFormat: strings.ToLower(getString(v, "USER_EMAIL_FORMAT", "full")),
		},
	}

	if cfg.JWT.Expiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "memory" {
		return nil, fmt.Errorf("DB_DRIVER inválido: %q (postgres | memory)", cfg.DB.Driver)
	}
	if cfg.Users.EmailFormat != "full" && cfg.Users.EmailFormat != "short" {
		return nil, fmt.Errorf("USER_EMAIL_FORMAT inválido: %q (full | short)", cfg.Users.EmailFormat)
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
