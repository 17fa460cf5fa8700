/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	DBPath     string
	SeasonsDir string
	LogLevel   zerolog.Level

	// CacheBucket is the S3 bucket used to cache fetched replays. Empty
	// disables caching.
	CacheBucket string
	CacheTTL    time.Duration

	// DiscordWebhook is an optional webhook URL that receives a message for
	// every committed match.
	DiscordWebhook string
}

// LoadConfig reads configuration from the environment, after loading a .env
// file from the working directory if one exists.
func LoadConfig(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("LEAGUE_DB_PATH", DefaultDBPath),
		SeasonsDir:     getEnv("LEAGUE_SEASONS_DIR", DefaultSeasonsDir),
		CacheBucket:    getEnv("LEAGUE_CACHE_BUCKET", ""),
		CacheTTL:       DefaultCacheTTL,
		DiscordWebhook: getEnv("LEAGUE_DISCORD_WEBHOOK", ""),
	}

	level, err := zerolog.ParseLevel(getEnv("LEAGUE_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if ttl := os.Getenv("LEAGUE_CACHE_TTL"); ttl != "" {
		cfg.CacheTTL, err = time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("LEAGUE_CACHE_TTL: %w", err)
		}
		if cfg.CacheTTL <= 0 {
			return nil, fmt.Errorf("LEAGUE_CACHE_TTL must be positive, got %v",
				cfg.CacheTTL)
		}
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Str("seasons_dir", cfg.SeasonsDir).
		Str("cache_bucket", cfg.CacheBucket).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("discord", cfg.DiscordWebhook != "").
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
