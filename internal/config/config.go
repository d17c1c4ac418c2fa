// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every field can additionally be overridden by its env:"..." variable,
// which is how containerised deployments pass the MongoDB URI.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong
// default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StaticDir is an optional directory holding the built frontend
	// (index.html plus an assets/ subdirectory). Empty or missing
	// disables static serving; any unmatched GET then returns 404.
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`

	Database   `yaml:"database"`
	HTTPServer `yaml:"http_server"`
	CORS       `yaml:"cors"`
}

// Database holds the document-store connection settings.
type Database struct {
	// URI is the MongoDB connection string, e.g.
	// "mongodb://localhost:27017" or a mongodb+srv:// Atlas URI.
	URI string `yaml:"uri" env:"MONGODB_URL" env-required:"true"`

	// Name is the database holding the students collection.
	Name string `yaml:"name" env:"MONGODB_DB" env-default:"student_management"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8000".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8000"`
}

// CORS holds the browser-origin allow-list. Requests from these
// origins are allowed with any method, any header, and credentials.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// MustLoad reads, validates, and returns the application config.
//
// The "Must" prefix follows the Go convention: this function exits the
// process on failure, so if it returns, the config is valid.
func MustLoad() *Config {
	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
