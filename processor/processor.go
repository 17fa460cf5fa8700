/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package processor runs matches through extraction, league resolution,
// rating and standings updates, one match per store transaction.
package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/mikeb26/showdown-leaguebot/league"
	"github.com/mikeb26/showdown-leaguebot/rating"
	"github.com/mikeb26/showdown-leaguebot/store"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
)

const ratingsScope = "ratings"

// Loader fetches the raw log for a source string (path, URL, ...).
type Loader interface {
	Load(ctx context.Context, src string) ([]byte, error)
}

// Announcer publishes a committed match somewhere people will see it.
type Announcer interface {
	Announce(ctx context.Context, msg string) error
}

// Mode selects which derived state a match updates.
type Mode int

const (
	UpdateRatings Mode = 1 << iota
	UpdateStandings

	UpdateAll = UpdateRatings | UpdateStandings
)

func (m Mode) has(flag Mode) bool {
	return m&flag != 0
}

type Processor struct {
	store      *store.Store
	loader     Loader
	seasonsDir string
	logger     zerolog.Logger
	announcer  Announcer

	mu      deadlock.Mutex
	indexes map[int]*league.Index
}

type Option func(*Processor)

func WithAnnouncer(a Announcer) Option {
	return func(p *Processor) {
		p.announcer = a
	}
}

func New(st *store.Store, loader Loader, seasonsDir string,
	logger zerolog.Logger, opts ...Option) *Processor {

	p := &Processor{
		store:      st,
		loader:     loader,
		seasonsDir: seasonsDir,
		logger:     logger.With().Str("component", "processor").Logger(),
		indexes:    make(map[int]*league.Index),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Outcome is what processing one match did.
type Outcome struct {
	Source      string
	Fingerprint string
	RunID       string
	Result      *battlelog.MatchResult

	// Rating is nil unless ratings were updated.
	Rating *rating.Change

	// League and Standings are empty unless standings were updated.
	Season    int
	League    string
	Standings league.Table
}

// match is a loaded and extracted log waiting to be applied.
type match struct {
	src         string
	fingerprint string
	result      *battlelog.MatchResult
}

// ProcessMatch updates the global ratings from the log at src.
func (p *Processor) ProcessMatch(ctx context.Context, src string) (*Outcome, error) {
	return p.process(ctx, src, 0, UpdateRatings)
}

// ProcessLeagueMatch updates the standings of the season league both
// players belong to.
func (p *Processor) ProcessLeagueMatch(ctx context.Context, src string,
	season int) (*Outcome, error) {

	return p.process(ctx, src, season, UpdateStandings)
}

// Record updates ratings and standings together; either both change or
// neither does.
func (p *Processor) Record(ctx context.Context, src string,
	season int) (*Outcome, error) {

	return p.process(ctx, src, season, UpdateAll)
}

func (p *Processor) process(ctx context.Context, src string, season int,
	mode Mode) (*Outcome, error) {

	m, err := p.prepare(ctx, src)
	if err != nil {
		return nil, err
	}

	return p.apply(ctx, m, season, mode)
}

func (p *Processor) prepare(ctx context.Context, src string) (*match, error) {
	raw, err := p.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load %v: %w", src, err)
	}
	res, err := battlelog.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", src, err)
	}
	sum := sha256.Sum256(raw)

	return &match{
		src:         src,
		fingerprint: hex.EncodeToString(sum[:]),
		result:      res,
	}, nil
}

func (p *Processor) apply(ctx context.Context, m *match, season int,
	mode Mode) (*Outcome, error) {

	res := m.result
	out := &Outcome{
		Source:      m.src,
		Fingerprint: m.fingerprint,
		RunID:       uuid.NewString(),
		Result:      res,
	}
	logger := p.logger.With().
		Str("run_id", out.RunID).
		Str("src", m.src).
		Str("player_one", res.PlayerOne).
		Str("player_two", res.PlayerTwo).
		Logger()

	// resolve before touching the store so a pair in no league changes
	// nothing
	if mode.has(UpdateStandings) {
		ix, err := p.Index(season)
		if err != nil {
			return nil, err
		}
		out.League, err = ix.Resolve(res.PlayerOne, res.PlayerTwo)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", m.src, err)
		}
		out.Season = season
	}

	err := p.store.Update(ctx, func(tx *store.Tx) error {
		if mode.has(UpdateRatings) {
			if err := p.markProcessed(ctx, tx, m, ratingsScope, out.RunID); err != nil {
				return err
			}
			change, err := rating.Apply(ctx, tx, res)
			if err != nil {
				return fmt.Errorf("%v: %w", m.src, err)
			}
			out.Rating = change
		}

		if mode.has(UpdateStandings) {
			scope := standingsScope(season, out.League)
			if err := p.markProcessed(ctx, tx, m, scope, out.RunID); err != nil {
				return err
			}
			table, err := p.applyStandings(ctx, tx, season, out.League, res)
			if err != nil {
				return fmt.Errorf("%v: %w", m.src, err)
			}
			out.Standings = table
		}

		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Msg("match not recorded")
		return nil, err
	}

	ev := logger.Info().Str("outcome", res.Outcome.String())
	if out.Rating != nil {
		ev = ev.Int("delta_one", out.Rating.One.Delta()).
			Int("delta_two", out.Rating.Two.Delta())
	}
	if out.League != "" {
		ev = ev.Int("season", season).Str("league", out.League)
	}
	ev.Msg("match recorded")

	p.announce(ctx, logger, out)

	return out, nil
}

func (p *Processor) markProcessed(ctx context.Context, tx *store.Tx,
	m *match, scope string, runID string) error {

	return tx.MarkProcessed(ctx, store.ProcessedMatch{
		Fingerprint: m.fingerprint,
		Scope:       scope,
		RunID:       runID,
		PlayerOne:   m.result.PlayerOne,
		PlayerTwo:   m.result.PlayerTwo,
	})
}

// applyStandings records res in the league's table. Eligible players who
// have no row yet get a zero row first.
func (p *Processor) applyStandings(ctx context.Context, tx *store.Tx,
	season int, leagueName string,
	res *battlelog.MatchResult) (league.Table, error) {

	table, err := tx.Standings(ctx, season, leagueName)
	if err != nil {
		return nil, err
	}
	for _, username := range []string{res.PlayerOne, res.PlayerTwo} {
		if table.Find(username) < 0 {
			table = append(table, league.Row{Username: username})
		}
	}

	table, err = league.Apply(table, res)
	if err != nil {
		return nil, err
	}
	if err := tx.ReplaceStandings(ctx, season, leagueName, table); err != nil {
		return nil, err
	}

	return table, nil
}

// announce is best effort: the match is already committed.
func (p *Processor) announce(ctx context.Context, logger zerolog.Logger,
	out *Outcome) {

	if p.announcer == nil {
		return
	}
	if err := p.announcer.Announce(ctx, FormatAnnouncement(out)); err != nil {
		logger.Error().Err(err).Msg("failed to announce match")
	}
}

func standingsScope(season int, leagueName string) string {
	return fmt.Sprintf("season%d/%v", season, leagueName)
}

// Index returns the league index for season, loading it on first use.
func (p *Processor) Index(season int) (*league.Index, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ix, ok := p.indexes[season]; ok {
		return ix, nil
	}

	path := filepath.Join(p.seasonsDir, fmt.Sprintf("season%d", season), "index")
	ix, err := league.LoadIndex(path)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().Int("season", season).Strs("leagues", ix.Leagues()).
		Msg("loaded league index")
	p.indexes[season] = ix

	return ix, nil
}
