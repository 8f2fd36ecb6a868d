package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"wardrobe-assistant/internal/model"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Mongo   MongoConfig
	Storage StorageConfig

	// Wardrobe specifics
	Gemini         GeminiConfig
	GoogleCalendar GoogleCalendarConfig
	Taxonomy       TaxonomyConfig

	// Access control
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// StorageConfig describes the S3-compatible bucket holding item photos.
type StorageConfig struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignTTL      time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	Timezone        string
}

// TaxonomyConfig points to an optional YAML file overriding the built-in
// subcategory keywords.
type TaxonomyConfig struct {
	Path string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type RateLimitConfig struct {
	AIRequestsPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// MongoDB
	cfg.Mongo.URI = viper.GetString("mongo.uri")
	cfg.Mongo.Database = viper.GetString("mongo.database")
	cfg.Mongo.ConnectTimeout = viper.GetDuration("mongo.connect_timeout")
	if mongoURI := viper.GetString("mongo_uri"); mongoURI != "" {
		cfg.Mongo.URI = mongoURI
	}

	// Object storage
	cfg.Storage.Region = viper.GetString("storage.region")
	cfg.Storage.Bucket = viper.GetString("storage.bucket")
	cfg.Storage.Endpoint = viper.GetString("storage.endpoint")
	cfg.Storage.AccessKeyID = viper.GetString("storage.access_key_id")
	cfg.Storage.SecretAccessKey = viper.GetString("storage.secret_access_key")
	cfg.Storage.UsePathStyle = viper.GetBool("storage.use_path_style")
	cfg.Storage.PresignTTL = viper.GetDuration("storage.presign_ttl")
	if bucket := viper.GetString("s3_bucket"); bucket != "" {
		cfg.Storage.Bucket = bucket
	}

	// Gemini
	cfg.Gemini.APIKey = viper.GetString("gemini.api_key")
	cfg.Gemini.Model = viper.GetString("gemini.model")
	cfg.Gemini.Timeout = viper.GetDuration("gemini.timeout")
	if geminiKey := viper.GetString("gemini_api_key"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.Timezone = viper.GetString("google_calendar.timezone")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	cfg.Taxonomy.Path = viper.GetString("taxonomy.path")

	// Auth
	cfg.Auth.JWTSecret = viper.GetString("auth.jwt_secret")
	cfg.Auth.Issuer = viper.GetString("auth.issuer")
	cfg.Auth.TokenTTL = viper.GetDuration("auth.token_ttl")
	if secret := viper.GetString("jwt_secret"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	cfg.RateLimit.AIRequestsPerMin = viper.GetInt("rate_limit.ai_requests_per_min")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required (or MONGO_URI)")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	if c.Environment.Name == string(model.EnvironmentProduction) && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required in production (or JWT_SECRET)")
	}
	if c.RateLimit.AIRequestsPerMin < 0 {
		return fmt.Errorf("rate_limit.ai_requests_per_min must not be negative")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("mongo.database", "wardrobe")
	viper.SetDefault("mongo.connect_timeout", "10s")

	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.presign_ttl", "15m")

	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.timeout", "60s")

	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("google_calendar.timezone", "Europe/Paris")

	viper.SetDefault("auth.issuer", "wardrobe-assistant")
	viper.SetDefault("auth.token_ttl", "24h")

	viper.SetDefault("rate_limit.ai_requests_per_min", 20)
}
