/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/mikeb26/showdown-leaguebot/internal"
	"github.com/rs/zerolog"
)

// this program exists just to seed the replay cache ahead of a league night

var CLI struct {
	File  string        `short:"f" help:"File with one replay URL per line." type:"existingfile"`
	Delay time.Duration `default:"2s" help:"Pause between fetches."`
	URLs  []string      `arg:"" optional:"" name:"url" help:"Replay URLs."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("cacheseed"),
		kong.Description("Pre-fetch Showdown replays into the S3 replay cache"),
		kong.UsageOnError())

	ctx := context.Background()
	logger := internal.NewLogger(os.Stderr, zerolog.InfoLevel, true)
	cfg, err := internal.LoadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger = logger.Level(cfg.LogLevel)
	if cfg.CacheBucket == "" {
		fmt.Fprintf(os.Stderr, "Error: LEAGUE_CACHE_BUCKET is not set\n")
		os.Exit(1)
	}

	urls := CLI.URLs
	if CLI.File != "" {
		fromFile, err := readURLs(CLI.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		urls = append(urls, fromFile...)
	}

	httpClient := internal.NewCachedHttpClient(ctx, cfg.CacheBucket,
		cfg.CacheTTL, logger)
	loader := battlelog.NewLoader(httpClient, nil)

	for _, u := range urls {
		raw, err := loader.Load(ctx, u)
		time.Sleep(CLI.Delay) // avoid pegging replay.pokemonshowdown.com
		if err != nil {
			// best effort
			logger.Warn().Err(err).Str("url", u).Msg("fetch failed")
			continue
		}
		res, err := battlelog.Extract(raw)
		if err != nil {
			// cached anyway; report so the log can be fixed before use
			logger.Warn().Err(err).Str("url", u).Msg("replay is not usable")
			continue
		}

		fmt.Printf("seeded %v vs %v\n", res.PlayerOne, res.PlayerTwo)
	}
}

func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	return urls, scanner.Err()
}
