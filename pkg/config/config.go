package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied to every environment variable the service reads.
const EnvPrefix = "CHOCOKROKO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Media        MediaConfig
	Wizard       WizardConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHOCOKROKO_APP_ENV" required:"true"`
	Port         string `envconfig:"CHOCOKROKO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CHOCOKROKO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHOCOKROKO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CHOCOKROKO_DB_DSN"`
	Driver string `envconfig:"CHOCOKROKO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CHOCOKROKO_DB_HOST"`
	Port     int    `envconfig:"CHOCOKROKO_DB_PORT" default:"5432"`
	User     string `envconfig:"CHOCOKROKO_DB_USER"`
	Password string `envconfig:"CHOCOKROKO_DB_PASSWORD"`
	Name     string `envconfig:"CHOCOKROKO_DB_NAME"`
	SSLMode  string `envconfig:"CHOCOKROKO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CHOCOKROKO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHOCOKROKO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHOCOKROKO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHOCOKROKO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHOCOKROKO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CHOCOKROKO_REDIS_ADDR"`
	Password     string        `envconfig:"CHOCOKROKO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHOCOKROKO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHOCOKROKO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHOCOKROKO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHOCOKROKO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHOCOKROKO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHOCOKROKO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CHOCOKROKO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CHOCOKROKO_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CHOCOKROKO_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CHOCOKROKO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CHOCOKROKO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CHOCOKROKO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CHOCOKROKO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CHOCOKROKO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CHOCOKROKO_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CHOCOKROKO_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"CHOCOKROKO_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"CHOCOKROKO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"CHOCOKROKO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"CHOCOKROKO_GCS_BUCKET_NAME" required:"true"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"CHOCOKROKO_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes converts the configured megabyte limit into bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	return int64(m.MaxUploadMB) << 20
}

type WizardConfig struct {
	SessionTTL time.Duration `envconfig:"CHOCOKROKO_WIZARD_SESSION_TTL" default:"2h"`
	PrintTTL   time.Duration `envconfig:"CHOCOKROKO_WIZARD_PRINT_TTL" default:"30m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CHOCOKROKO_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"CHOCOKROKO_DB_HOST": db.Host,
		"CHOCOKROKO_DB_USER": db.User,
		"CHOCOKROKO_DB_NAME": db.Name,
	}
	for _, env := range []string{"CHOCOKROKO_DB_HOST", "CHOCOKROKO_DB_USER", "CHOCOKROKO_DB_NAME"} {
		if required[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either CHOCOKROKO_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
