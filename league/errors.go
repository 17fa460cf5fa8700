/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRowNotFound = errors.New("no standings row for player")
	ErrOverflow    = errors.New("standings value out of int8 range")
)

// LeagueNotFoundError is returned by Resolve when a pair of players does not
// map to exactly one league. Candidates is empty when they share no league
// and lists every shared league otherwise.
type LeagueNotFoundError struct {
	PlayerOne  string
	PlayerTwo  string
	Candidates []string
}

func (e *LeagueNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%v and %v are not in the same league", e.PlayerOne,
			e.PlayerTwo)
	}
	return fmt.Sprintf("%v and %v share %d leagues (%v); cannot pick one",
		e.PlayerOne, e.PlayerTwo, len(e.Candidates),
		strings.Join(e.Candidates, ", "))
}

// Ambiguous reports whether the players share more than one league.
func (e *LeagueNotFoundError) Ambiguous() bool {
	return len(e.Candidates) > 1
}
