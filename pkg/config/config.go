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
type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Cloudinary CloudinaryConfig
	Upload     UploadConfig
	Security   SecurityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// Drivers de persistencia soportados.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
	Issuer    string
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

// Valores de ejemplo de .env.example; cuentan como "no configurado".
const (
	placeholderCloudName = "your_cloudinary_name"
	placeholderAPIKey    = "your_cloudinary_key"
	placeholderAPISecret = "your_cloudinary_secret"
)

// CloudinaryConfig credenciales del almacenamiento remoto de documentos.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// IsConfigured indica si hay credenciales reales (no vacías ni de ejemplo).
// Decide una sola vez al arrancar qué AttachmentStore se usa.
func (c CloudinaryConfig) IsConfigured() bool {
	return c.CloudName != "" && c.CloudName != placeholderCloudName &&
		c.APIKey != "" && c.APIKey != placeholderAPIKey &&
		c.APISecret != "" && c.APISecret != placeholderAPISecret
}

// UploadConfig configuración del almacenamiento local de respaldo y límites de subida.
type UploadConfig struct {
	Dir        string // directorio en disco
	PublicPath string // prefijo URL bajo el que se sirven los archivos
	MaxBytes   int
}

// SecurityConfig parámetros del hash de contraseñas.
type SecurityConfig struct {
	BcryptCost int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, CLOUDINARY_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	expiresIn, err := ParseExpiry(getString(v, "JWT_EXPIRES_IN", "30d"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "marketplace-identity"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "marketplace"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:    getString(v, "JWT_SECRET", ""),
			ExpiresIn: expiresIn,
			Issuer:    getString(v, "JWT_ISSUER", "marketplace-identity"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getString(v, "CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getString(v, "CLOUDINARY_API_KEY", ""),
			APISecret: getString(v, "CLOUDINARY_API_SECRET", ""),
			Folder:    getString(v, "CLOUDINARY_FOLDER", "business_documents"),
		},
		Upload: UploadConfig{
			Dir:        getString(v, "UPLOAD_DIR", "./uploads"),
			PublicPath: getString(v, "UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxBytes:   getInt(v, "UPLOAD_MAX_BYTES", 10<<20),
		},
		Security: SecurityConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
	}

	if cfg.DB.Driver != StoreDriverPostgres && cfg.DB.Driver != StoreDriverMemory {
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.DB.Driver)
	}
	return cfg, nil
}

// ParseExpiry interpreta duraciones estilo "30d", "12h" o "90m". Un número sin unidad son segundos.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("duración vacía")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("duración inválida %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duración inválida %q", s)
	}
	return d, nil
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
