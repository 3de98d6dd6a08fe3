package config

import (
	"time"

	pkgconfig "github.com/weiawesome/catalog-service/pkg/config"
	"github.com/weiawesome/catalog-service/pkg/storage"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	Log           LogConfig           `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ElasticsearchConfig struct {
	Addresses []string      `mapstructure:"addresses"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Indexes   IndexConfig   `mapstructure:"indexes"`
}

// IndexConfig binds each catalog entity to its index name.
type IndexConfig struct {
	Movies  string `mapstructure:"movies"`
	Genres  string `mapstructure:"genres"`
	Persons string `mapstructure:"persons"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"` // "redis" or "memory"
	Codec   string        `mapstructure:"codec"`   // "json" or "msgpack"
	Prefix  string        `mapstructure:"prefix"`
	TTL     time.Duration `mapstructure:"ttl"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds film media storage configuration.
type StorageConfig struct {
	Type      string              `mapstructure:"type"` // "none", "local" or "s3"
	URLExpiry time.Duration       `mapstructure:"url_expiry"`
	Local     storage.LocalConfig `mapstructure:"local"`
	S3        storage.S3Config    `mapstructure:"s3"`
}

// CatalogConfig holds paging limits and sizes of derived listings.
type CatalogConfig struct {
	DefaultPageSize  int `mapstructure:"default_page_size"`
	MaxPageSize      int `mapstructure:"max_page_size"`
	RecommendedFilms int `mapstructure:"recommended_films"`
	PersonFilmsLimit int `mapstructure:"person_films_limit"`
	MaxResultWindow  int `mapstructure:"max_result_window"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("elasticsearch.timeout", "5s")
	v.SetDefault("elasticsearch.indexes.movies", "movies")
	v.SetDefault("elasticsearch.indexes.genres", "genres")
	v.SetDefault("elasticsearch.indexes.persons", "persons")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.backend", "redis")
	v.SetDefault("cache.codec", "json")
	v.SetDefault("cache.prefix", "catalog")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.timeout", "1s")
	v.SetDefault("storage.type", "none")
	v.SetDefault("storage.url_expiry", "1h")
	v.SetDefault("storage.local.base_path", "./media")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.use_path_style", true)
	v.SetDefault("catalog.default_page_size", 50)
	v.SetDefault("catalog.max_page_size", 100)
	v.SetDefault("catalog.recommended_films", 3)
	v.SetDefault("catalog.person_films_limit", 100)
	v.SetDefault("catalog.max_result_window", 10000)
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("elasticsearch.addresses", "ES_ADDRESSES")
	v.BindEnv("elasticsearch.username", "ES_USERNAME")
	v.BindEnv("elasticsearch.password", "ES_PASSWORD")
	v.BindEnv("elasticsearch.indexes.movies", "ES_INDEX_MOVIES")
	v.BindEnv("elasticsearch.indexes.genres", "ES_INDEX_GENRES")
	v.BindEnv("elasticsearch.indexes.persons", "ES_INDEX_PERSONS")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("cache.backend", "CACHE_BACKEND")
	v.BindEnv("cache.ttl", "CACHE_TTL")
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.s3.bucket", "S3_BUCKET")
	v.BindEnv("storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("storage.s3.public_url", "S3_PUBLIC_URL")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
