// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// StoreBackend selects the record store: memory, file, redis, or postgres.
	StoreBackend string

	// StoreFile is the path of the JSON file for the file backend.
	StoreFile string

	// DatabaseDSN holds the PostgreSQL connection string for the postgres backend.
	DatabaseDSN string

	// RedisAddr is the host:port of the Redis server for the redis backend.
	RedisAddr string

	// RedisPassword is the optional Redis AUTH password.
	RedisPassword string

	// RedisDB is the Redis logical database number.
	RedisDB int

	// LogLevel sets the minimum zap log level (debug, info, warn, error).
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.StoreBackend, "s", "memory", "store backend: memory, file, redis, postgres")
	flag.StringVar(&options.StoreFile, "f", "timelimit.json", "path to the file store")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn")
	flag.StringVar(&options.RedisAddr, "r", "localhost:6379", "redis address")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		options.StoreBackend = backend
	}
	if storeFile := os.Getenv("STORE_FILE"); storeFile != "" {
		options.StoreFile = storeFile
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		options.RedisAddr = addr
	}
	if pwd := os.Getenv("REDIS_PASSWORD"); pwd != "" {
		options.RedisPassword = pwd
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			options.RedisDB = n
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
