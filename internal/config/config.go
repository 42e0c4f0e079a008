package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/station-locator/internal/pkg/validator"
)

const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"

	GeocoderGoogle    = "google"
	GeocoderMapbox    = "mapbox"
	GeocoderNominatim = "nominatim"
)

// Config загружается один раз при старте и дальше не меняется
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Limits   LimitsConfig
	Geocoder GeocoderConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int `validate:"gt=0,lte=65535"`
	Env          string
	AllowOrigins string
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	URL string `validate:"required"`
}

type CacheConfig struct {
	Driver     string        `validate:"oneof=redis memory"`
	GeocodeTTL time.Duration `validate:"gt=0"`
}

// LimitsConfig - потолки и значения по умолчанию для limit и maxDistance
type LimitsConfig struct {
	ListLimit        int `validate:"gt=0"`
	ListDefaultCount int `validate:"gt=0,ltefield=ListLimit"`
	DistanceLimit    int `validate:"gt=0"`
	DistanceDefault  int `validate:"gt=0,ltefield=DistanceLimit"`
}

type GeocoderConfig struct {
	Provider  string        `validate:"oneof=google mapbox nominatim"`
	Timeout   time.Duration `validate:"gt=0"`
	Google    GoogleConfig
	Mapbox    MapboxConfig
	Nominatim NominatimConfig
}

type GoogleConfig struct {
	URL    string `validate:"required,url"`
	APIKey string
}

type MapboxConfig struct {
	BaseURL     string `validate:"required,url"`
	AccessToken string
}

type NominatimConfig struct {
	URL            string        `validate:"required,url"`
	MaxInFlight    int           `validate:"gt=0"`
	RequestTimeout time.Duration `validate:"gt=0"`
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 7766)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "stations")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_URL", "redis://localhost:6379/1")
	v.SetDefault("CACHE_DRIVER", CacheDriverRedis)
	v.SetDefault("GEOCODE_CACHE_TTL", 86400)

	v.SetDefault("LIST_LIMIT", 50)
	v.SetDefault("LIST_DEFAULT_COUNT", 10)
	v.SetDefault("DISTANCE_LIMIT", 50000)
	v.SetDefault("DISTANCE_DEFAULT", 10000)

	v.SetDefault("GEOCODER_PROVIDER", GeocoderGoogle)
	v.SetDefault("GEOCODER_TIMEOUT", 100)
	v.SetDefault("GOOGLE_GEOCODER_URL", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	v.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org/")
	v.SetDefault("NOMINATIM_MAX_INFLIGHT", 8)
	v.SetDefault("NOMINATIM_REQUEST_TIMEOUT", 5)

	v.SetDefault("LOG_LEVEL", "info")
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Cache: CacheConfig{
			Driver:     strings.ToLower(v.GetString("CACHE_DRIVER")),
			GeocodeTTL: time.Duration(v.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Limits: LimitsConfig{
			ListLimit:        v.GetInt("LIST_LIMIT"),
			ListDefaultCount: v.GetInt("LIST_DEFAULT_COUNT"),
			DistanceLimit:    v.GetInt("DISTANCE_LIMIT"),
			DistanceDefault:  v.GetInt("DISTANCE_DEFAULT"),
		},
		Geocoder: GeocoderConfig{
			Provider: strings.ToLower(v.GetString("GEOCODER_PROVIDER")),
			Timeout:  time.Duration(v.GetInt("GEOCODER_TIMEOUT")) * time.Millisecond,
			Google: GoogleConfig{
				URL:    v.GetString("GOOGLE_GEOCODER_URL"),
				APIKey: v.GetString("GOOGLE_API_KEY"),
			},
			Mapbox: MapboxConfig{
				BaseURL:     v.GetString("MAPBOX_BASE_URL"),
				AccessToken: v.GetString("MAPBOX_ACCESS_TOKEN"),
			},
			Nominatim: NominatimConfig{
				URL:            v.GetString("NOMINATIM_URL"),
				MaxInFlight:    v.GetInt("NOMINATIM_MAX_INFLIGHT"),
				RequestTimeout: time.Duration(v.GetInt("NOMINATIM_REQUEST_TIMEOUT")) * time.Second,
			},
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseDSN возвращает строку подключения к хранилищу станций
func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN возвращает DATABASE_URL или DSN, собранный из DB_* ключей
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}
