package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the runtime settings of the game.
type Config struct {
	LogLevel logrus.Level // Minimum level written to the log
	LogFile  string       // Path of the log file; empty discards logs
	Seed     int64        // Mine placement seed; 0 seeds from the clock
	NoColor  bool         // Disable ANSI colours in the board
	SimGames int          // Default number of games for the sim command
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() (Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (Config, error) {
	level, err := logrus.ParseLevel(getEnvWithDefault("MINECWEEPER_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("MINECWEEPER_LOG_LEVEL: %w", err)
	}

	seed, err := getEnvAsInt64("MINECWEEPER_SEED", 0)
	if err != nil {
		return Config{}, err
	}

	noColor, err := getEnvAsBool("MINECWEEPER_NO_COLOR", false)
	if err != nil {
		return Config{}, err
	}

	simGames, err := getEnvAsInt64("MINECWEEPER_SIM_GAMES", 1000)
	if err != nil {
		return Config{}, err
	}
	if simGames < 1 {
		return Config{}, fmt.Errorf("MINECWEEPER_SIM_GAMES must be positive, got %d", simGames)
	}

	return Config{
		LogLevel: level,
		LogFile:  os.Getenv("MINECWEEPER_LOG_FILE"),
		Seed:     seed,
		NoColor:  noColor,
		SimGames: int(simGames),
	}, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
	}
	return b, nil
}
