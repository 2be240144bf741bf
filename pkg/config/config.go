package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	OTP          OTPConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Media        MediaConfig
	Mailer       MailerConfig
	Broadcast    BroadcastConfig
	CORS         CORSConfig
	AuthRate     AuthRateLimitConfig
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
	Env          string `envconfig:"INSTITUTE_APP_ENV" required:"true"`
	Port         string `envconfig:"INSTITUTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INSTITUTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INSTITUTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"INSTITUTE_DB_DSN"`
	Driver string `envconfig:"INSTITUTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"INSTITUTE_DB_HOST"`
	LegacyPort     int    `envconfig:"INSTITUTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INSTITUTE_DB_USER"`
	LegacyPassword string `envconfig:"INSTITUTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"INSTITUTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"INSTITUTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INSTITUTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INSTITUTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INSTITUTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INSTITUTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INSTITUTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"INSTITUTE_REDIS_ADDR"`
	Password     string        `envconfig:"INSTITUTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"INSTITUTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INSTITUTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INSTITUTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INSTITUTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INSTITUTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INSTITUTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"INSTITUTE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"INSTITUTE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"INSTITUTE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"INSTITUTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"INSTITUTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"INSTITUTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"INSTITUTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"INSTITUTE_ARGON_KEY_LEN" default:"32"`
}

type OTPConfig struct {
	TTL            time.Duration `envconfig:"INSTITUTE_OTP_TTL" default:"10m"`
	SendWindow     time.Duration `envconfig:"INSTITUTE_OTP_SEND_WINDOW" default:"1m"`
	SendIPLimit    int           `envconfig:"INSTITUTE_OTP_SEND_IP_LIMIT" default:"20"`
	SendEmailLimit int           `envconfig:"INSTITUTE_OTP_SEND_EMAIL_LIMIT" default:"3"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INSTITUTE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"INSTITUTE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"INSTITUTE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"INSTITUTE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"INSTITUTE_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"INSTITUTE_GCS_UPLOAD_URL_EXPIRY" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"INSTITUTE_GCS_DOWNLOAD_URL_EXPIRY" required:"true"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"INSTITUTE_MAX_UPLOAD_MB" default:"200"`
}

type MailerConfig struct {
	APIKey      string        `envconfig:"INSTITUTE_SENDGRID_API_KEY"`
	DefaultFrom string        `envconfig:"INSTITUTE_SENDGRID_FROM_EMAIL"`
	FromName    string        `envconfig:"INSTITUTE_SENDGRID_FROM_NAME" default:"Tech Institute"`
	SendTimeout time.Duration `envconfig:"INSTITUTE_MAILER_SEND_TIMEOUT" default:"30s"`
}

type BroadcastConfig struct {
	PerSendTimeout time.Duration `envconfig:"INSTITUTE_BROADCAST_PER_SEND_TIMEOUT" default:"30s"`
}

type CORSConfig struct {
	ExtraOrigins []string `envconfig:"INSTITUTE_CORS_EXTRA_ORIGINS"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"INSTITUTE_LOGIN_RATE_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"INSTITUTE_LOGIN_RATE_IP_LIMIT" default:"30"`
	LoginEmailLimit int           `envconfig:"INSTITUTE_LOGIN_RATE_EMAIL_LIMIT" default:"5"`
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
