package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	Templates   string
	Static      string
	CORS        CORSConfig
	Shop        ShopConfig
	Logging     LoggingConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Minio       MinioConfig
	Payments    PaymentsConfig
}

type CORSConfig struct {
	AllowOrigins []string
}

type ShopConfig struct {
	ItemsPerRow     int
	CatalogCacheTTL time.Duration
	CartCacheTTL    time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string // text, json
	RequestLog bool
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type PaymentsConfig struct {
	URL          string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Timeout      time.Duration
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"

	envPaymentsClientID     = "PAYMENTS_CLIENT_ID"
	envPaymentsClientSecret = "PAYMENTS_CLIENT_SECRET"

	envJWTSecret = "JWT_SECRET"

	defaultRedisPort = 6379
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// JWT: секрет только из env
	cfg.JWT.Token = os.Getenv(envJWTSecret)
	if cfg.JWT.Token == "" {
		return nil, fmt.Errorf("%s must be set", envJWTSecret)
	}
	cfg.JWT.SigningMethod = jwt.SigningMethodHS256

	cfg.Redis, err = redisFromEnv()
	if err != nil {
		return nil, err
	}

	cfg.Minio.AccessKey = os.Getenv(envMinioAccessKey)
	cfg.Minio.SecretKey = os.Getenv(envMinioSecretKey)

	cfg.Payments.ClientID = os.Getenv(envPaymentsClientID)
	cfg.Payments.ClientSecret = os.Getenv(envPaymentsClientSecret)

	log.Info("config parsed")

	return cfg, nil
}

// redisFromEnv читает Redis из env. Без REDIS_HOST Redis не используется
func redisFromEnv() (RedisConfig, error) {
	cfg := RedisConfig{
		Host:        os.Getenv(envRedisHost),
		Password:    os.Getenv(envRedisPass),
		User:        os.Getenv(envRedisUser),
		Port:        defaultRedisPort,
		DialTimeout: 10 * time.Second,
		ReadTimeout: 10 * time.Second,
	}

	if port := os.Getenv(envRedisPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return RedisConfig{}, fmt.Errorf("redis port must be int value: %w", err)
		}
		cfg.Port = p
	}

	return cfg, nil
}

// Enabled - задан ли адрес Redis
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func setDefaults() {
	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("Templates", "templates/*.html")
	viper.SetDefault("Static", "./resources")
	viper.SetDefault("CORS.AllowOrigins", []string{"*"})

	viper.SetDefault("Shop.ItemsPerRow", 5)
	viper.SetDefault("Shop.CatalogCacheTTL", 5*time.Second)
	viper.SetDefault("Shop.CartCacheTTL", time.Minute)

	viper.SetDefault("Logging.Level", "info")
	viper.SetDefault("Logging.Format", "text")
	viper.SetDefault("Logging.RequestLog", true)

	viper.SetDefault("JWT.ExpiresIn", 24*time.Hour)

	viper.SetDefault("Minio.Bucket", "items")

	viper.SetDefault("Payments.Timeout", 5*time.Second)
}

// SetupLogging настраивает logrus по секции Logging
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", c.Logging.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Logging.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
