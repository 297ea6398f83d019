package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"realorai-service/internal/domain"
)

// Stats backends accepted in stats.backend.
const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendRedisBlob = "redis-blob"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

type Config struct {
	Server struct {
		Port            string `yaml:"port"`
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Stats struct {
		Backend string `yaml:"backend"`
	} `yaml:"stats"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		CatalogPath   string `yaml:"catalog_path"`
		RoundsPerQuiz int    `yaml:"rounds_per_quiz"`
	} `yaml:"quiz"`
	Client struct {
		Server string `yaml:"server"`
	} `yaml:"client"`
}

// LoadEnv reads a .env file into the process environment when one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the zero Config.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		return Config{}, nil
	}
	return cfg, err
}

// StatsBackend returns the configured backend, inferring it from the connection
// settings when stats.backend is empty.
func (c Config) StatsBackend() (string, error) {
	switch c.Stats.Backend {
	case BackendMemory, BackendRedis, BackendRedisBlob, BackendPostgres, BackendSQLite:
		return c.Stats.Backend, nil
	case "":
		switch {
		case c.Postgres.URL != "":
			return BackendPostgres, nil
		case c.Redis.Addr != "":
			return BackendRedis, nil
		case c.SQLite.Path != "":
			return BackendSQLite, nil
		}
		return BackendMemory, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownStatsBackend, c.Stats.Backend)
}

// RoundsPerQuiz returns quiz.rounds_per_quiz, or catalogSize when unset.
func (c Config) RoundsPerQuiz(catalogSize int) int {
	if c.Quiz.RoundsPerQuiz > 0 {
		return c.Quiz.RoundsPerQuiz
	}
	return catalogSize
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
