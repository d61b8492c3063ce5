package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	CORS          CORSConfig
	Log           LogConfig
	Uploads       UploadConfig
	ObjectStorage ObjectStorageConfig
	LoginThrottle LoginThrottleConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// UploadConfig controls locally stored profile photos and multipart limits.
type UploadConfig struct {
	Dir             string
	PublicPath      string
	MaxPhotoSize    int64
	MaxDocumentSize int64
}

// ObjectStorageConfig points at the S3-compatible bucket holding reference PDFs.
type ObjectStorageConfig struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	PublicURL  string
	DisableSSL bool
}

// LoginThrottleConfig bounds failed login attempts per account and client.
type LoginThrottleConfig struct {
	MaxAttempts int
	Window      time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Uploads = UploadConfig{
		Dir:             v.GetString("UPLOAD_DIR"),
		PublicPath:      v.GetString("UPLOAD_PUBLIC_PATH"),
		MaxPhotoSize:    positiveInt64(v.GetInt64("UPLOAD_MAX_PHOTO_SIZE"), 5*1024*1024),
		MaxDocumentSize: positiveInt64(v.GetInt64("UPLOAD_MAX_DOCUMENT_SIZE"), 10*1024*1024),
	}

	cfg.ObjectStorage = ObjectStorageConfig{
		Endpoint:   v.GetString("OBJECT_STORAGE_ENDPOINT"),
		Region:     v.GetString("OBJECT_STORAGE_REGION"),
		Bucket:     v.GetString("OBJECT_STORAGE_BUCKET"),
		AccessKey:  v.GetString("OBJECT_STORAGE_ACCESS_KEY"),
		SecretKey:  v.GetString("OBJECT_STORAGE_SECRET_KEY"),
		PublicURL:  strings.TrimRight(v.GetString("OBJECT_STORAGE_PUBLIC_URL"), "/"),
		DisableSSL: v.GetBool("OBJECT_STORAGE_DISABLE_SSL"),
	}

	cfg.LoginThrottle = LoginThrottleConfig{
		MaxAttempts: v.GetInt("LOGIN_MAX_ATTEMPTS"),
		Window:      parseDuration(v.GetString("LOGIN_ATTEMPT_WINDOW"), 15*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "bimta")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "bimta-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_PUBLIC_PATH", "/uploads")
	v.SetDefault("UPLOAD_MAX_PHOTO_SIZE", 5*1024*1024)
	v.SetDefault("UPLOAD_MAX_DOCUMENT_SIZE", 10*1024*1024)

	v.SetDefault("OBJECT_STORAGE_ENDPOINT", "http://localhost:9000")
	v.SetDefault("OBJECT_STORAGE_REGION", "us-east-1")
	v.SetDefault("OBJECT_STORAGE_BUCKET", "bimta")
	v.SetDefault("OBJECT_STORAGE_ACCESS_KEY", "")
	v.SetDefault("OBJECT_STORAGE_SECRET_KEY", "")
	v.SetDefault("OBJECT_STORAGE_PUBLIC_URL", "http://localhost:9000")
	v.SetDefault("OBJECT_STORAGE_DISABLE_SSL", true)

	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_ATTEMPT_WINDOW", "15m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func positiveInt64(value, fallback int64) int64 {
	if value <= 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
