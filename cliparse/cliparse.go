package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	StateFile       string
	DatabaseURL     string
	DatabaseType    string
	SessionTTLHours int
}

// SessionTTL returns the configured session lifetime as a duration
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Pick up a .env file if one exists (dev convenience)
	_ = godotenv.Load()

	fs := flag.NewFlagSet("poll-server", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StateFile, "f", "", "State snapshot file path")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (optional; snapshot stored in DB instead of file)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.SessionTTLHours, "session-ttl", 0, "Session lifetime in hours")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.StateFile == "" {
		cfg.StateFile = os.Getenv("STATE_FILE")
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "polls.json"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.SessionTTLHours == 0 {
		if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
			ttl, err := strconv.Atoi(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL_HOURS env variable")
			}
			cfg.SessionTTLHours = ttl
		} else {
			cfg.SessionTTLHours = 7 * 24 // one week
		}
	}
	if cfg.SessionTTLHours < 0 {
		return Config{}, errors.New("session TTL must be positive")
	}

	return cfg, nil
}
