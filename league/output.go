/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
	"strings"
)

// BuildStandingsOutput formats one league table into aligned string output.
// Rows tied on every ranking key share a place; the place is printed only on
// the first of them.
func BuildStandingsOutput(leagueName string, t Table) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", leagueName))
	if len(t) == 0 {
		sb.WriteString("No players\n\n")
		return sb.String()
	}

	headers := []string{"Place", "Name", "W", "L", "D", "Pts", "K", "F", "K/D"}
	var rows [][]string
	place := 0
	for idx, r := range t {
		rank := ""
		if idx == 0 || !Tied(r, t[idx-1]) {
			place = idx + 1
			rank = fmt.Sprintf("%v.", place)
		}
		rows = append(rows, []string{
			rank,
			r.Username,
			fmt.Sprint(r.Wins),
			fmt.Sprint(r.Losses),
			fmt.Sprint(r.Draws),
			fmt.Sprint(r.Points),
			fmt.Sprint(r.Kills),
			fmt.Sprint(r.Faints),
			fmt.Sprintf("%+d", r.KD),
		})
	}

	// Compute column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], len(cell))
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			// place and name are left aligned, numbers right aligned
			if i < 2 {
				sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
			} else {
				sb.WriteString(fmt.Sprintf("%*s", widths[i], cell))
			}
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	for _, r := range rows {
		writeRow(r)
	}
	sb.WriteString("\n")

	return sb.String()
}
