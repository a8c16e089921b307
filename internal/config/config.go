// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. MongoURI may be empty: the server then starts in
// degraded mode and answers 503 on data endpoints instead of exiting, so a
// missing database does not require a restart once the URI is fixed.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	MongoURI       string        // MongoDB connection string (empty -> degraded mode)
	DBName         string        // database name
	ConnectRetries int           // connection attempts before giving up at startup
	ConnectBackoff time.Duration // wait between connection attempts
	CORSOrigins    []string      // allowed CORS origins
}

// Load reads configuration values from environment variables and returns a
// Config. Every variable has a default; none is fatal when missing. The one
// value the service cannot invent, MONGODB_URI, is reported by the caller
// rather than enforced here.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("PORT", "3000"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		DBName:         getenv("DB_NAME", "afterschooldb"),
		ConnectRetries: atoiDefault(getenv("DB_CONNECT_RETRIES", "3"), 3),
		ConnectBackoff: parseDur(getenv("DB_CONNECT_BACKOFF", "2s")),
		CORSOrigins:    splitCSV(getenv("CORS_ORIGINS", "http://localhost:8080")),
	}
}

// atoiDefault converts s to an int, falling back to def on malformed input
// so a typo in an env var does not take the service down.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("config: invalid int %q, using %d", s, def)
		return def
	}
	return n
}

func splitCSV(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
