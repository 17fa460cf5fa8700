/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package rating maintains Elo ratings for league players.
//
// The update is the standard logistic Elo model with a K-factor that grows
// with the margin of victory:
//
//	K = 32 * (1 + |faints1 - faints2| / 6)
//
// so a 6-0 sweep is worth twice as much as a last-mon win. Both players use
// the same K. Ratings are stored as int16; the new rating is computed in
// float64 and rounded once, half to even, so repeated updates do not drift
// in one direction.
package rating

import (
	"errors"
	"fmt"
	"math"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
)

const (
	DefaultElo = 1000

	baseK = 32.0
	// a full team; the faint differential of a clean sweep
	sweepMargin = 6.0
)

var (
	ErrOutOfRange     = errors.New("rating out of int16 range")
	ErrInvalidOutcome = errors.New("match has no valid outcome")
	ErrUnknownPlayer  = errors.New("no rating recorded for player")
)

func ExpectedScore(myRating float64, oppRating float64) float64 {
	// 1/(10^((opp-my)/400)+1)
	exp := math.Pow(10, (oppRating-myRating)/400.0)
	return 1.0 / (exp + 1.0)
}

// KFactor computes K from the two faint counts.
func KFactor(faintsOne int, faintsTwo int) float64 {
	d := faintsOne - faintsTwo
	if d < 0 {
		d = -d
	}
	return baseK * (1 + float64(d)/sweepMargin)
}

// ActualScores returns the scores credited to seat 1 and seat 2.
func ActualScores(outcome battlelog.Outcome) (float64, float64, error) {
	switch outcome {
	case battlelog.OutcomeWin1:
		return 1.0, 0.0, nil
	case battlelog.OutcomeWin2:
		return 0.0, 1.0, nil
	case battlelog.OutcomeDraw:
		return 0.5, 0.5, nil
	}
	return 0, 0, fmt.Errorf("%w: %v", ErrInvalidOutcome, outcome)
}

// Estimate holds the unrounded result of one rating update.
type Estimate struct {
	K           float64
	ExpectedOne float64
	ExpectedTwo float64
	// New ratings before rounding to the stored type
	One float64
	Two float64
}

// estimate computes the new ratings without rounding.
func estimate(eloOne float64, eloTwo float64, outcome battlelog.Outcome,
	faintsOne int, faintsTwo int) (Estimate, error) {

	actualOne, actualTwo, err := ActualScores(outcome)
	if err != nil {
		return Estimate{}, err
	}

	est := Estimate{
		K:           KFactor(faintsOne, faintsTwo),
		ExpectedOne: ExpectedScore(eloOne, eloTwo),
		ExpectedTwo: ExpectedScore(eloTwo, eloOne),
	}
	est.One = eloOne + est.K*(actualOne-est.ExpectedOne)
	est.Two = eloTwo + est.K*(actualTwo-est.ExpectedTwo)

	return est, nil
}

// Update returns the new stored ratings for both players.
func Update(eloOne int16, eloTwo int16, outcome battlelog.Outcome,
	faintsOne int, faintsTwo int) (int16, int16, error) {

	est, err := estimate(float64(eloOne), float64(eloTwo), outcome, faintsOne,
		faintsTwo)
	if err != nil {
		return 0, 0, err
	}
	one, err := roundElo(est.One)
	if err != nil {
		return 0, 0, err
	}
	two, err := roundElo(est.Two)
	if err != nil {
		return 0, 0, err
	}

	return one, two, nil
}

func roundElo(v float64) (int16, error) {
	r := math.RoundToEven(v)
	if math.IsNaN(r) || r < math.MinInt16 || r > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, v)
	}
	return int16(r), nil
}
