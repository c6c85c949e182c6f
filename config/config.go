package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	MYSQL_DSN    = ""               // MySQL will be used if this is set
	SQLITE_FILE  = "invitations.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS = "0.0.0.0:8080"
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	WEB_ORIGINS  = "*"
	DEBUG_MODE   = true
)

func init() {
	_ = godotenv.Load()
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("WEB_ORIGINS", &WEB_ORIGINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
}

// Origins returns WEB_ORIGINS as a list
func Origins() []string {
	result := []string{}
	for _, origin := range strings.Split(WEB_ORIGINS, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			result = append(result, origin)
		}
	}
	return result
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
