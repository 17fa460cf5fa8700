/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package battlelog

import (
	"bufio"
	"strings"
	"time"

	"github.com/mikeb26/showdown-leaguebot/internal"
)

// Event is one recognised line of a battle log. Lines that do not affect
// the match facts are dropped by Scan.
type Event interface {
	isEvent()
}

// DrawDeclared is the |tie line.
type DrawDeclared struct{}

// WinDeclared is a |win|NAME line.
type WinDeclared struct {
	Winner string
}

// DefeatEvent is a |faint|p1a: NAME line; Seat is the side that lost the
// unit.
type DefeatEvent struct {
	Seat Seat
	Unit string
}

// PlayerDeclared is a |player|p1|NAME|... line.
type PlayerDeclared struct {
	Seat Seat
	Name string
}

// FormatDeclared is a |tier|FORMAT line.
type FormatDeclared struct {
	Format string
}

// Timestamp is a |t:|UNIX line.
type Timestamp struct {
	At time.Time
}

func (DrawDeclared) isEvent()   {}
func (WinDeclared) isEvent()    {}
func (DefeatEvent) isEvent()    {}
func (PlayerDeclared) isEvent() {}
func (FormatDeclared) isEvent() {}
func (Timestamp) isEvent()      {}

const maxLineLen = 1 << 20

// Scan splits a battle log into lines and converts the ones it recognises
// into typed events, in log order.
func Scan(stream string) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(strings.NewReader(stream))
	// |request| lines carry whole team JSON and can be long
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for scanner.Scan() {
		if ev := parseLine(scanner.Text()); ev != nil {
			events = append(events, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func parseLine(line string) Event {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "|") {
		return nil
	}
	fields := strings.Split(line[1:], "|")
	arg := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	switch fields[0] {
	case "tie":
		return DrawDeclared{}
	case "win":
		if w := arg(1); w != "" {
			return WinDeclared{Winner: w}
		}
	case "faint":
		if seat, unit, ok := parsePosition(arg(1)); ok {
			return DefeatEvent{Seat: seat, Unit: unit}
		}
	case "player":
		seat := parseSeat(arg(1))
		if name := arg(2); seat != SeatNone && name != "" {
			return PlayerDeclared{Seat: seat, Name: name}
		}
	case "tier":
		if f := arg(1); f != "" {
			return FormatDeclared{Format: f}
		}
	case "t:":
		if at, err := internal.ParseDateOrZero(arg(1)); err == nil && !at.IsZero() {
			return Timestamp{At: at}
		}
	}

	return nil
}

// parsePosition splits "p1a: Garchomp" into seat and unit name. Any
// position letter counts so doubles and triples logs are handled.
func parsePosition(s string) (Seat, string, bool) {
	ident, unit, _ := strings.Cut(s, ":")
	ident = strings.TrimSpace(ident)
	if len(ident) == 3 {
		if c := ident[2]; c < 'a' || c > 'z' {
			return SeatNone, "", false
		}
		ident = ident[:2]
	}
	seat := parseSeat(ident)
	if seat == SeatNone {
		return SeatNone, "", false
	}

	return seat, strings.TrimSpace(unit), true
}

func parseSeat(s string) Seat {
	switch s {
	case "p1":
		return Seat1
	case "p2":
		return Seat2
	}
	return SeatNone
}
