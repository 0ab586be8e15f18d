// Package config exposes the process configuration of the CareerConnect
// server. Values come from the environment, optionally seeded from a .env file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/careerconnect/careerconnect/util/random"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort           = 5000
	defaultRateLimit      = 30
	defaultAuditRetention = 90
	defaultResetURL       = "http://localhost:5173/reset-password"
	defaultCORSOrigin     = "http://localhost:5173"
)

var (
	devSecretOnce sync.Once
	devSecret     string
)

// LoadEnv reads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment. Variables that are already set win.
// A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("CC_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("CC_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("CC_DB_FOLDER")
	if dbFolderPath == "" {
		if IsDebug() {
			return "db"
		}
		dbFolderPath = "/etc/careerconnect"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("CC_LOG_FOLDER")
	if logFolderPath == "" {
		if IsDebug() {
			return "log"
		}
		logFolderPath = "/var/log/careerconnect"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("CC_LISTEN")
}

// GetPort returns the HTTP port. PORT is honoured for compatibility with
// common hosting platforms.
func GetPort() int {
	return getInt("PORT", defaultPort)
}

// GetCORSOrigins returns the origins allowed to call the API from a browser.
func GetCORSOrigins() []string {
	raw := os.Getenv("CC_CORS_ORIGINS")
	if raw == "" {
		return []string{defaultCORSOrigin}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{defaultCORSOrigin}
	}
	return origins
}

// GetRateLimit returns the number of credential requests a single client may
// make per minute. Zero disables the limiter.
func GetRateLimit() int {
	return getInt("CC_RATE_LIMIT", defaultRateLimit)
}

// RedisEmbedded as CC_REDIS_ADDR runs an in-process Redis server.
const RedisEmbedded = "embedded"

// GetRedisAddr returns the Redis address for the rate limiter. Empty means
// the in-process go-cache store is used; RedisEmbedded starts miniredis.
func GetRedisAddr() string {
	return strings.TrimSpace(os.Getenv("CC_REDIS_ADDR"))
}

func GetAuditRetentionDays() int {
	return getInt("CC_AUDIT_RETENTION_DAYS", defaultAuditRetention)
}

// GetResetURL returns the front-end page that consumes password reset tokens.
func GetResetURL() string {
	u := os.Getenv("CC_RESET_URL")
	if u == "" {
		u = defaultResetURL
	}
	return strings.TrimSuffix(u, "/")
}

// GetJWTSecret returns the token signing secret. In debug mode a random
// secret is generated once per process when JWT_SECRET is unset.
func GetJWTSecret() (string, error) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret, nil
	}
	if !IsDebug() {
		return "", errors.New("JWT_SECRET is not set")
	}
	devSecretOnce.Do(func() {
		devSecret = random.Seq(48)
	})
	return devSecret, nil
}

func getInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
