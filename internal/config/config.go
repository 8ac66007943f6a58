package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
// DSN and the two open-data service keys are required; the rest has
// workable defaults.
type Config struct {
	Addr             string
	DSN              string
	MuseumAPIKey     string
	ExhibitionAPIKey string
	MuseumAPIURL     string
	ExhibitionAPIURL string
	InternalSecret   string
	SyncSchedule     string
	PageSize         int
}

// MissingVarError reports a required environment variable that was not set.
type MissingVarError struct {
	Name string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("missing required environment variable: %s", e.Name)
}

const (
	defaultMuseumAPIURL     = "http://api.data.go.kr/openapi/tn_pubr_public_museum_artgr_info_api"
	defaultExhibitionAPIURL = "http://www.culture.go.kr/openapi/rest/publicperformancedisplays/period"
	defaultPageSize         = 100
)

// Load reads configuration from the environment. Local .env files are
// loaded first but never override variables provided by the runtime.
func Load() (Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Config{
		Addr:             getEnv("APP_ADDR", ":8080"),
		DSN:              os.Getenv("DB_DSN"),
		MuseumAPIKey:     os.Getenv("MUSEUM_API_KEY"),
		ExhibitionAPIKey: os.Getenv("EXHIBITION_API_KEY"),
		MuseumAPIURL:     getEnv("MUSEUM_API_URL", defaultMuseumAPIURL),
		ExhibitionAPIURL: getEnv("EXHIBITION_API_URL", defaultExhibitionAPIURL),
		InternalSecret:   os.Getenv("INTERNAL_JOB_SECRET"),
		SyncSchedule:     os.Getenv("SYNC_SCHEDULE"),
		PageSize:         getEnvInt("PAGE_SIZE", defaultPageSize),
	}

	// The server cannot come up without a database. The service keys are
	// validated by the ingestion runs themselves so a missing key surfaces
	// as a failure response on the trigger endpoint, not a dead process.
	if cfg.DSN == "" {
		return Config{}, &MissingVarError{Name: "DB_DSN"}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
