package game

import (
	"os"
	"strconv"
)

// Config holds game configuration options, normally read from WYRD_*
// environment variables (a .env file works via godotenv in main).
type Config struct {
	// Seed overrides the first floor's generation seed. Empty means the
	// default "floor_1"; later floors always derive from their number.
	Seed string

	// MinRooms and MaxRooms bound the per-floor room count. Zero keeps the
	// generator defaults.
	MinRooms int
	MaxRooms int

	// LogPath is the run log file. The terminal owns stdout, so logs go to
	// a rolling file.
	LogPath string
}

// ConfigFromEnv reads configuration from the environment.
func ConfigFromEnv() Config {
	cfg := Config{
		Seed:    os.Getenv("WYRD_SEED"),
		LogPath: os.Getenv("WYRD_LOG"),
	}
	if cfg.LogPath == "" {
		cfg.LogPath = "wyrd.log"
	}
	cfg.MinRooms = envInt("WYRD_MIN_ROOMS")
	cfg.MaxRooms = envInt("WYRD_MAX_ROOMS")
	return cfg
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
