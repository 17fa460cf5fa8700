/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/mikeb26/showdown-leaguebot/internal"
	"github.com/mikeb26/showdown-leaguebot/league"
	"github.com/mikeb26/showdown-leaguebot/notify"
	"github.com/mikeb26/showdown-leaguebot/processor"
	"github.com/mikeb26/showdown-leaguebot/rating"
	"github.com/mikeb26/showdown-leaguebot/store"
	"github.com/rs/zerolog"
)

var CLI struct {
	DB       string `help:"Path to the league database. Overrides LEAGUE_DB_PATH." type:"path"`
	Seasons  string `help:"Directory holding season<N>/index files. Overrides LEAGUE_SEASONS_DIR." type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error). Overrides LEAGUE_LOG_LEVEL."`

	Rate struct {
		Logs []string `arg:"" name:"log" help:"Replay files, URLs or s3:// objects."`
	} `cmd:"" help:"Update player ratings from one or more match logs."`

	Table struct {
		Season int      `required:"" help:"Season number."`
		Logs   []string `arg:"" name:"log" help:"Replay files, URLs or s3:// objects."`
	} `cmd:"" help:"Update league standings from one or more match logs."`

	Record struct {
		Season int      `required:"" help:"Season number."`
		Logs   []string `arg:"" name:"log" help:"Replay files, URLs or s3:// objects."`
	} `cmd:"" help:"Update ratings and standings together from match logs."`

	Extract struct {
		Log string `arg:"" name:"log" help:"Replay file, URL or s3:// object."`
	} `cmd:"" help:"Print the facts extracted from a match log without recording it."`

	Standings struct {
		Season int    `required:"" help:"Season number."`
		League string `help:"Only show this league."`
	} `cmd:"" help:"Print league standings."`

	Ratings struct {
		All bool `help:"Include retired players."`
	} `cmd:"" help:"Print the rating leaderboard."`

	Season struct {
		Init struct {
			Season int `required:"" help:"Season number."`
		} `cmd:"" help:"Create empty standings rows for every player in the season index."`
	} `cmd:"" help:"Season administration."`

	Retire struct {
		Username string `arg:"" help:"Player to retire."`
		Undo     bool   `help:"Reinstate the player instead."`
	} `cmd:"" help:"Hide a player from the rating leaderboard."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("leaguetd"),
		kong.Description("Pokémon Showdown league ratings and standings"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if err := run(context.Background(), kctx.Command()); err != nil {
		writeError(err)
	}
}

func run(ctx context.Context, command string) error {
	logger := internal.NewLogger(os.Stderr, zerolog.InfoLevel, true)

	cfg, err := internal.LoadConfig(logger)
	if err != nil {
		return err
	}
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}
	if CLI.Seasons != "" {
		cfg.SeasonsDir = CLI.Seasons
	}
	if CLI.LogLevel != "" {
		if cfg.LogLevel, err = zerolog.ParseLevel(CLI.LogLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	logger = logger.Level(cfg.LogLevel)

	// extract never touches the database
	if command == "extract <log>" {
		return handleExtract(ctx, newLoader(ctx, cfg, logger), CLI.Extract.Log)
	}

	st, err := store.Open(ctx, cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	var opts []processor.Option
	if cfg.DiscordWebhook != "" {
		d, err := notify.NewDiscord(cfg.DiscordWebhook, internal.UserAgent)
		if err != nil {
			return fmt.Errorf("LEAGUE_DISCORD_WEBHOOK: %w", err)
		}
		opts = append(opts, processor.WithAnnouncer(d))
	}
	proc := processor.New(st, newLoader(ctx, cfg, logger), cfg.SeasonsDir,
		logger, opts...)

	switch command {
	case "rate <log>":
		return handleBatch(ctx, proc, CLI.Rate.Logs, 0, processor.UpdateRatings)
	case "table <log>":
		return handleBatch(ctx, proc, CLI.Table.Logs, CLI.Table.Season,
			processor.UpdateStandings)
	case "record <log>":
		return handleBatch(ctx, proc, CLI.Record.Logs, CLI.Record.Season,
			processor.UpdateAll)
	case "standings":
		return handleStandings(ctx, proc, CLI.Standings.Season,
			CLI.Standings.League)
	case "ratings":
		return handleRatings(ctx, proc, CLI.Ratings.All)
	case "season init":
		return handleSeasonInit(ctx, proc, CLI.Season.Init.Season)
	case "retire <username>":
		return proc.SetActive(ctx, CLI.Retire.Username, CLI.Retire.Undo)
	}

	return fmt.Errorf("unknown command %q", command)
}

func newLoader(ctx context.Context, cfg *internal.Config,
	logger zerolog.Logger) *battlelog.Loader {

	httpClient := internal.NewCachedHttpClient(ctx, cfg.CacheBucket,
		cfg.CacheTTL, logger)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load AWS config; s3:// logs unavailable")
		return battlelog.NewLoader(httpClient, nil)
	}

	return battlelog.NewLoader(httpClient, s3.NewFromConfig(awsCfg))
}

func handleBatch(ctx context.Context, proc *processor.Processor,
	logs []string, season int, mode processor.Mode) error {

	outs, err := proc.ProcessBatch(ctx, logs, season, mode)
	for _, out := range outs {
		fmt.Println(processor.FormatAnnouncement(out))
		fmt.Println()
	}
	if err != nil {
		return fmt.Errorf("stopped after %d of %d matches: %w", len(outs),
			len(logs), err)
	}

	return nil
}

func handleExtract(ctx context.Context, loader *battlelog.Loader,
	src string) error {

	raw, err := loader.Load(ctx, src)
	if err != nil {
		return err
	}
	res, err := battlelog.Extract(raw)
	if err != nil {
		return err
	}

	fmt.Printf("Player 1: %v (fainted %d)\n", res.PlayerOne, res.FaintsOne)
	fmt.Printf("Player 2: %v (fainted %d)\n", res.PlayerTwo, res.FaintsTwo)
	fmt.Printf("Outcome:  %v\n", res.Outcome)
	if res.Format != "" {
		fmt.Printf("Format:   %v\n", res.Format)
	}
	if !res.PlayedAt.IsZero() {
		fmt.Printf("Played:   %v\n", res.PlayedAt.Format(time.RFC1123))
	}

	return nil
}

func handleStandings(ctx context.Context, proc *processor.Processor,
	season int, leagueName string) error {

	tables, err := proc.Standings(ctx, season, leagueName)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		fmt.Printf("No standings recorded for season %d\n", season)
		return nil
	}
	for _, lt := range tables {
		fmt.Print(league.BuildStandingsOutput(lt.League, lt.Table))
	}

	return nil
}

func handleRatings(ctx context.Context, proc *processor.Processor,
	includeRetired bool) error {

	recs, err := proc.Ratings(ctx)
	if err != nil {
		return err
	}
	fmt.Print(rating.BuildRatingsOutput(recs, includeRetired))

	return nil
}

func handleSeasonInit(ctx context.Context, proc *processor.Processor,
	season int) error {

	n, err := proc.InitSeason(ctx, season)
	if err != nil {
		return err
	}
	fmt.Printf("Season %d: created %d standings rows\n", season, n)

	return nil
}
