package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	OTP           OTPConfig
	SMTP          SMTPConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"STOCKMASTER_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKMASTER_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"STOCKMASTER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKMASTER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKMASTER_DB_DSN"`
	Driver string `envconfig:"STOCKMASTER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKMASTER_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKMASTER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKMASTER_DB_USER"`
	LegacyPassword string `envconfig:"STOCKMASTER_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKMASTER_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKMASTER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKMASTER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKMASTER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKMASTER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKMASTER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKMASTER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOCKMASTER_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKMASTER_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKMASTER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKMASTER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKMASTER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKMASTER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKMASTER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKMASTER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"STOCKMASTER_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"STOCKMASTER_JWT_ISSUER" default:"stockmaster"`
	ExpirationMinutes      int    `envconfig:"STOCKMASTER_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"STOCKMASTER_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOCKMASTER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOCKMASTER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOCKMASTER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOCKMASTER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOCKMASTER_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
	OTPWindow        time.Duration `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_OTP_WINDOW" default:"10m"`
	OTPEmailLimit    int           `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"3"`
	OTPIPLimit       int           `envconfig:"STOCKMASTER_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"10"`
}

type OTPConfig struct {
	TTL time.Duration `envconfig:"STOCKMASTER_OTP_TTL" default:"10m"`
}

type SMTPConfig struct {
	Host        string `envconfig:"STOCKMASTER_SMTP_HOST"`
	Port        int    `envconfig:"STOCKMASTER_SMTP_PORT" default:"587"`
	User        string `envconfig:"STOCKMASTER_SMTP_USER"`
	Password    string `envconfig:"STOCKMASTER_SMTP_PASSWORD"`
	DefaultFrom string `envconfig:"STOCKMASTER_SMTP_FROM_EMAIL"`
}

// Configured reports whether enough SMTP settings exist to send real mail.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.User != "" && s.Password != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKMASTER_AUTO_MIGRATE" default:"false"`
	SeedOnBoot  bool `envconfig:"STOCKMASTER_SEED_ON_BOOT" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
