/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"fmt"
	"sort"
	"strings"
)

// BuildRatingsOutput formats records as an aligned leaderboard, highest
// rating first. Retired players are skipped unless includeRetired is set.
func BuildRatingsOutput(records []Record, includeRetired bool) string {
	var recs []Record
	for _, r := range records {
		if r.Active || includeRetired {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return "No rated players\n"
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Elo != recs[j].Elo {
			return recs[i].Elo > recs[j].Elo
		}
		return recs[i].Username < recs[j].Username
	})

	type row struct{ rank, player, elo string }
	var rows []row
	for idx, r := range recs {
		rank := fmt.Sprintf("%v.", idx+1)
		if idx > 0 && r.Elo == recs[idx-1].Elo {
			rank = ""
		}
		player := r.Username
		if !r.Active {
			player += " (retired)"
		}
		rows = append(rows, row{rank: rank, player: player,
			elo: fmt.Sprintf("%d", r.Elo)})
	}

	maxP, maxN, maxE := len("Rank"), len("Player"), len("Elo")
	for _, r := range rows {
		maxP = max(maxP, len(r.rank))
		maxN = max(maxN, len(r.player))
		maxE = max(maxE, len(r.elo))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %*s\n", maxP, "Rank", maxN, "Player",
		maxE, "Elo"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %*s\n", maxP, r.rank, maxN,
			r.player, maxE, r.elo))
	}

	return sb.String()
}
