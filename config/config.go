package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS       = ""        // e.g. "example.com,www.example.com"
	MYSQL_DSN         = ""        // MySQL will be used if this is set
	SQLITE_FILE       = "rsvp.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS      = "0.0.0.0:8080"
	SESSION_KEY       = "change-me-please" // cookie store auth key
	DEBUG_MODE        = true
	LOG_LEVEL         = "info"
	ALLOWED_ORIGINS   = "*"            // comma-separated list for CORS
	WIPE_CONFIRM_TEXT = "DELETAR TUDO" // phrase required by the bulk data wipe
)

func init() {
	// Optional .env file for local development
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
	readEnvString("ALLOWED_ORIGINS", &ALLOWED_ORIGINS)
	readEnvString("WIPE_CONFIRM_TEXT", &WIPE_CONFIRM_TEXT)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
