package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr     = "CODESHOT_LISTEN"
	EnvDevMode        = "CODESHOT_DEV"
	EnvMaxConcurrency = "CODESHOT_MAX_RENDERS"
)

const DefaultListenAddr = ":8080"

// ServerConfig contains settings for running the HTTP server.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// MaxConcurrent bounds renders in flight.
	MaxConcurrent int64
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr := os.Getenv(EnvListenAddr)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	maxConcurrent := int64(defaultMaxConcurrentRenders)
	if raw := os.Getenv(EnvMaxConcurrency); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return ServerConfig{}, fmt.Errorf("%s must be a positive integer (got %q)", EnvMaxConcurrency, raw)
		}
		maxConcurrent = parsed
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode, MaxConcurrent: maxConcurrent}, nil
}
