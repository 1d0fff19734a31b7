package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Geocoder  GeocoderConfig
	Area      AreaConfig
	Grievance GrievanceConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
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
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// GeocoderConfig - настройки внешнего провайдера обратного геокодирования (Naver Cloud Platform)
type GeocoderConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type AreaConfig struct {
	UnassignedName string
}

type GrievanceConfig struct {
	NearbyDefaultRadiusKm float64
	NearbyMaxResults      int
	FeedPageSize          int
	FeedMaxPageSize       int
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	BackfillBatch int
	SweepInterval time.Duration
	QueuedTTL     time.Duration
}

const (
	defaultGeocoderBaseURL = "https://naveropenapi.apigw.ntruss.com/map-reversegeocode/v2/gc"
	defaultUnassignedArea  = "미지정"
)

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// .env опционален: в контейнере всё приходит через переменные окружения
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:      viper.GetString("GEOCODER_BASE_URL"),
			ClientID:     viper.GetString("GEOCODER_CLIENT_ID"),
			ClientSecret: viper.GetString("GEOCODER_CLIENT_SECRET"),
			Timeout:      time.Duration(viper.GetInt("GEOCODER_TIMEOUT")) * time.Second,
		},
		Area: AreaConfig{
			UnassignedName: viper.GetString("AREA_UNASSIGNED_NAME"),
		},
		Grievance: GrievanceConfig{
			NearbyDefaultRadiusKm: viper.GetFloat64("NEARBY_DEFAULT_RADIUS_KM"),
			NearbyMaxResults:      viper.GetInt("NEARBY_MAX_RESULTS"),
			FeedPageSize:          viper.GetInt("FEED_PAGE_SIZE"),
			FeedMaxPageSize:       viper.GetInt("FEED_MAX_PAGE_SIZE"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
			BackfillBatch: viper.GetInt("WORKER_BACKFILL_BATCH"),
			SweepInterval: time.Duration(viper.GetInt("WORKER_SWEEP_INTERVAL")) * time.Second,
			QueuedTTL:     time.Duration(viper.GetInt("WORKER_QUEUED_TTL")) * time.Second,
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults заполняет значения, не заданные в окружении
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Cache.GeocodeCacheTTL == 0 {
		c.Cache.GeocodeCacheTTL = 7 * 24 * time.Hour
	}
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = defaultGeocoderBaseURL
	}
	if c.Geocoder.Timeout == 0 {
		c.Geocoder.Timeout = 5 * time.Second
	}
	if c.Area.UnassignedName == "" {
		c.Area.UnassignedName = defaultUnassignedArea
	}
	if c.Grievance.NearbyDefaultRadiusKm == 0 {
		c.Grievance.NearbyDefaultRadiusKm = 5
	}
	if c.Grievance.NearbyMaxResults == 0 {
		c.Grievance.NearbyMaxResults = 100
	}
	if c.Grievance.FeedPageSize == 0 {
		c.Grievance.FeedPageSize = 20
	}
	if c.Grievance.FeedMaxPageSize == 0 {
		c.Grievance.FeedMaxPageSize = 100
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "grievance-area-backfill"
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.BackfillBatch == 0 {
		c.Worker.BackfillBatch = 100
	}
	if c.Worker.SweepInterval == 0 {
		c.Worker.SweepInterval = time.Minute
	}
	if c.Worker.QueuedTTL == 0 {
		c.Worker.QueuedTTL = time.Hour
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN - строка подключения в формате key=value для драйвера pgx
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
