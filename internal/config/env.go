package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DatabaseURLOverrides carries CLI-level overrides for the resolved
// connection URL. Empty fields mean no override.
type DatabaseURLOverrides struct {
	Host string
	Port string
}

// ResolveDatabaseURL builds the connection URL for the import command.
//
// Resolution order: if envFile is set, it must exist and is loaded first;
// otherwise a .env in the working directory is loaded when present. The
// DATABASE_URL variable is then read from the process environment.
//
// The URL is normalized for use outside a compose network: a "+psycopg2"
// driver suffix in the scheme is dropped, and the docker-compose hostname
// "db" is rewritten to 127.0.0.1 unless an explicit host override is given.
func ResolveDatabaseURL(envFile string, ov DatabaseURLOverrides) (string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return "", fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		// A broken .env next to the binary should not be silently skipped.
		if err := godotenv.Load(".env"); err != nil {
			return "", fmt.Errorf("loading .env: %w", err)
		}
	}

	raw := os.Getenv("DATABASE_URL")
	if raw == "" {
		return "", fmt.Errorf("DATABASE_URL is not set")
	}

	raw = strings.Replace(raw, "+psycopg2", "", 1)

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	host := u.Hostname()
	port := u.Port()

	if ov.Host != "" {
		host = ov.Host
	} else if host == "db" {
		host = "127.0.0.1"
	}
	if ov.Port != "" {
		port = ov.Port
	}

	if port != "" {
		u.Host = host + ":" + port
	} else {
		u.Host = host
	}

	return u.String(), nil
}

// MaskPassword hides the password component of a connection URL so it can
// be logged.
func MaskPassword(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	if _, has := u.User.Password(); !has {
		return rawURL
	}
	masked := *u
	masked.User = url.UserPassword(u.User.Username(), "***")
	return masked.String()
}
