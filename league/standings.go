/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
	"math"
	"sort"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
)

// Row is one player's line in a league table. Points is always
// 3*Wins + Draws and KD is always Kills - Faints.
type Row struct {
	Username string
	Wins     int8
	Losses   int8
	Draws    int8
	Points   int8
	Kills    int8
	Faints   int8
	KD       int8
}

// Table is a league's standings in ranked order.
type Table []Row

// Find returns the index of username's row, or -1.
func (t Table) Find(username string) int {
	for i := range t {
		if t[i].Username == username {
			return i
		}
	}
	return -1
}

// Less orders rows by points (high first), then KD (high first), then
// kills (low first), then faints (low first). Rows tied on all four are
// ordered by username so the order is total.
func Less(a, b Row) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.KD != b.KD {
		return a.KD > b.KD
	}
	if a.Kills != b.Kills {
		return a.Kills < b.Kills
	}
	if a.Faints != b.Faints {
		return a.Faints < b.Faints
	}
	return a.Username < b.Username
}

// Tied reports whether a and b share a place, i.e. are equal on every
// ranking key.
func Tied(a, b Row) bool {
	return a.Points == b.Points && a.KD == b.KD && a.Kills == b.Kills &&
		a.Faints == b.Faints
}

func (t Table) Sort() {
	sort.Slice(t, func(i, j int) bool { return Less(t[i], t[j]) })
}

// Apply returns a new table with res recorded and rows re-ranked. t is
// never modified; on error the caller keeps its table as it was.
func Apply(t Table, res *battlelog.MatchResult) (Table, error) {
	i1, i2 := t.Find(res.PlayerOne), t.Find(res.PlayerTwo)
	if i1 < 0 {
		return nil, fmt.Errorf("%w: %v", ErrRowNotFound, res.PlayerOne)
	}
	if i2 < 0 {
		return nil, fmt.Errorf("%w: %v", ErrRowNotFound, res.PlayerTwo)
	}
	if i1 == i2 {
		return nil, fmt.Errorf("%v cannot play themselves", res.PlayerOne)
	}

	one := rowUpdate{row: t[i1]}
	two := rowUpdate{row: t[i2]}

	switch res.Outcome {
	case battlelog.OutcomeDraw:
		one.add("draws", &one.row.Draws, 1)
		one.add("points", &one.row.Points, 1)
		two.add("draws", &two.row.Draws, 1)
		two.add("points", &two.row.Points, 1)
	case battlelog.OutcomeWin1:
		one.add("wins", &one.row.Wins, 1)
		one.add("points", &one.row.Points, 3)
		two.add("losses", &two.row.Losses, 1)
	case battlelog.OutcomeWin2:
		two.add("wins", &two.row.Wins, 1)
		two.add("points", &two.row.Points, 3)
		one.add("losses", &one.row.Losses, 1)
	default:
		return nil, fmt.Errorf("cannot record outcome %v", res.Outcome)
	}

	// kills are what the opponent lost
	one.add("kills", &one.row.Kills, res.FaintsTwo)
	one.add("faints", &one.row.Faints, res.FaintsOne)
	two.add("kills", &two.row.Kills, res.FaintsOne)
	two.add("faints", &two.row.Faints, res.FaintsTwo)
	one.recomputeKD()
	two.recomputeKD()

	if one.err != nil {
		return nil, fmt.Errorf("%v: %w", res.PlayerOne, one.err)
	}
	if two.err != nil {
		return nil, fmt.Errorf("%v: %w", res.PlayerTwo, two.err)
	}

	out := make(Table, len(t))
	copy(out, t)
	out[i1] = one.row
	out[i2] = two.row
	out.Sort()

	return out, nil
}

// rowUpdate accumulates changes to a row, keeping the first overflow.
type rowUpdate struct {
	row Row
	err error
}

func (u *rowUpdate) add(field string, dst *int8, delta int) {
	if u.err != nil {
		return
	}
	v, err := checked(field, int(*dst)+delta)
	if err != nil {
		u.err = err
		return
	}
	*dst = v
}

func (u *rowUpdate) recomputeKD() {
	if u.err != nil {
		return
	}
	u.row.KD, u.err = checked("kd", int(u.row.Kills)-int(u.row.Faints))
}

func checked(field string, v int) (int8, error) {
	if v < math.MinInt8 || v > math.MaxInt8 {
		return 0, fmt.Errorf("%w: %v would be %d", ErrOverflow, field, v)
	}
	return int8(v), nil
}
