/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package processor

import (
	"fmt"
	"strings"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/mikeb26/showdown-leaguebot/rating"
)

// FormatAnnouncement renders a committed match as a short chat message.
func FormatAnnouncement(out *Outcome) string {
	res := out.Result
	var sb strings.Builder

	switch res.Outcome {
	case battlelog.OutcomeDraw:
		sb.WriteString(fmt.Sprintf("**%v** and **%v** drew", res.PlayerOne,
			res.PlayerTwo))
	default:
		// the winner's kills are the loser's faints
		winnerKills, loserKills := res.FaintsTwo, res.FaintsOne
		if res.Outcome == battlelog.OutcomeWin2 {
			winnerKills, loserKills = loserKills, winnerKills
		}
		sb.WriteString(fmt.Sprintf("**%v** defeated **%v** %d-%d", res.Winner(),
			res.Loser(), winnerKills, loserKills))
	}
	if res.Format != "" {
		sb.WriteString(fmt.Sprintf(" in %v", res.Format))
	}
	if out.League != "" {
		sb.WriteString(fmt.Sprintf(" (%v, season %d)", out.League, out.Season))
	}
	sb.WriteString("\n")

	if out.Rating != nil {
		writeRatingLine(&sb, out.Rating.One)
		writeRatingLine(&sb, out.Rating.Two)
	}
	if out.League != "" {
		for i, row := range out.Standings {
			if row.Username == res.PlayerOne || row.Username == res.PlayerTwo {
				sb.WriteString(fmt.Sprintf("%v is now #%d with %d points\n",
					row.Username, i+1, row.Points))
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeRatingLine(sb *strings.Builder, pc rating.PlayerChange) {
	sb.WriteString(fmt.Sprintf("%v: %d -> %d (%+d)\n", pc.After.Username,
		pc.Before.Elo, pc.After.Elo, pc.Delta()))
}
