/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package battlelog extracts match facts from Pokémon Showdown replay pages
// and raw battle logs.
package battlelog

import (
	"errors"
	"fmt"
	"time"
)

// Outcome represents the result of a match from seat 1's point of view.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWin1
	OutcomeWin2
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin1:
		return "win1"
	case OutcomeWin2:
		return "win2"
	case OutcomeDraw:
		return "draw"
	default:
		return "?"
	}
}

// Seat identifies which side of the battle an event belongs to.
type Seat int

const (
	SeatNone Seat = iota
	Seat1
	Seat2
)

func (s Seat) String() string {
	switch s {
	case Seat1:
		return "p1"
	case Seat2:
		return "p2"
	default:
		return "?"
	}
}

// MatchResult holds the facts of one completed match. FaintsOne and
// FaintsTwo count the units lost by seat 1 and seat 2 respectively.
type MatchResult struct {
	PlayerOne string
	PlayerTwo string
	FaintsOne int
	FaintsTwo int
	Outcome   Outcome

	// Format is the battle format (e.g. "[Gen 9] OU") when the log declares
	// one.
	Format string
	// PlayedAt is the first timestamp in the log, or zero.
	PlayedAt time.Time
}

// Winner returns the winning player's name, or "" for a draw.
func (r *MatchResult) Winner() string {
	switch r.Outcome {
	case OutcomeWin1:
		return r.PlayerOne
	case OutcomeWin2:
		return r.PlayerTwo
	}
	return ""
}

// Loser returns the losing player's name, or "" for a draw.
func (r *MatchResult) Loser() string {
	switch r.Outcome {
	case OutcomeWin1:
		return r.PlayerTwo
	case OutcomeWin2:
		return r.PlayerOne
	}
	return ""
}

var (
	ErrNoEventStream    = errors.New("battle log data not found")
	ErrPlayers          = errors.New("could not identify exactly two players")
	ErrAmbiguousOutcome = errors.New("log has neither a win nor a tie marker")
	ErrConflictingWin   = errors.New("log declares more than one winner")
	ErrUnknownWinner    = errors.New("declared winner is not a participant")
)

// ParseError reports a log that lacks the markers needed to produce a
// MatchResult. Err is one of the Err* values above, or the underlying
// decoding error.
type ParseError struct {
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("battlelog: %v", e.Err)
	}
	return fmt.Sprintf("battlelog: %v: %v", e.Err, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErr(err error, format string, args ...any) *ParseError {
	return &ParseError{Detail: fmt.Sprintf(format, args...), Err: err}
}
