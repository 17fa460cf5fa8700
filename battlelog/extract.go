/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package battlelog

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/showdown-leaguebot/internal"
)

// Extract parses a replay page (or a bare battle log) into a MatchResult.
// Any missing marker is reported as a *ParseError; an outcome is never
// assumed.
func Extract(raw []byte) (*MatchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Detail: "unreadable html", Err: err}
	}

	stream, err := eventStream(doc, raw)
	if err != nil {
		return nil, err
	}
	events, err := Scan(stream)
	if err != nil {
		return nil, &ParseError{Detail: "scanning battle log", Err: err}
	}

	seat1, seat2, err := participants(doc, events)
	if err != nil {
		return nil, err
	}

	res := &MatchResult{
		PlayerOne: seat1,
		PlayerTwo: seat2,
	}

	var draw bool
	var winner string
	for _, ev := range events {
		switch ev := ev.(type) {
		case DrawDeclared:
			draw = true
		case WinDeclared:
			if winner != "" && internal.ToID(winner) != internal.ToID(ev.Winner) {
				return nil, parseErr(ErrConflictingWin, "%q and %q", winner,
					ev.Winner)
			}
			winner = ev.Winner
		case DefeatEvent:
			if ev.Seat == Seat1 {
				res.FaintsOne++
			} else {
				res.FaintsTwo++
			}
		case FormatDeclared:
			if res.Format == "" {
				res.Format = ev.Format
			}
		case Timestamp:
			if res.PlayedAt.IsZero() {
				res.PlayedAt = ev.At
			}
		}
	}

	switch {
	case draw:
		res.Outcome = OutcomeDraw
	case winner == "":
		return nil, parseErr(ErrAmbiguousOutcome, "%v vs %v", seat1, seat2)
	case samePlayer(winner, seat1):
		res.Outcome = OutcomeWin1
	case samePlayer(winner, seat2):
		res.Outcome = OutcomeWin2
	default:
		return nil, parseErr(ErrUnknownWinner, "%q in %v vs %v", winner, seat1,
			seat2)
	}

	return res, nil
}

// eventStream locates the embedded battle log. Replay pages carry it in a
// <script class="battle-log-data"> element; a document that is itself a
// log (first non-blank character is '|') is used as is.
func eventStream(doc *goquery.Document, raw []byte) (string, error) {
	sel := doc.Find("script.battle-log-data").First()
	if sel.Length() > 0 {
		if text := sel.Text(); strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '|' {
		return string(raw), nil
	}

	return "", &ParseError{Err: ErrNoEventStream}
}

// participants returns the seat 1 and seat 2 names. The page's participant
// markup (the two .subtle name elements) takes precedence; the log's
// |player| declarations are the fallback.
func participants(doc *goquery.Document, events []Event) (string, string, error) {
	var names []string
	doc.Find(".subtle").Each(func(_ int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			names = append(names, name)
		}
	})

	if len(names) != 2 {
		var seats [3]string
		for _, ev := range events {
			if p, ok := ev.(PlayerDeclared); ok && seats[p.Seat] == "" {
				seats[p.Seat] = p.Name
			}
		}
		if seats[Seat1] == "" || seats[Seat2] == "" {
			return "", "", parseErr(ErrPlayers, "found %d in page markup",
				len(names))
		}
		names = []string{seats[Seat1], seats[Seat2]}
	}

	if samePlayer(names[0], names[1]) {
		return "", "", parseErr(ErrPlayers, "%q appears in both seats", names[0])
	}

	return names[0], names[1], nil
}

func samePlayer(a, b string) bool {
	if a == b {
		return true
	}
	id := internal.ToID(a)
	return id != "" && id == internal.ToID(b)
}
