/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package processor

import (
	"testing"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/mikeb26/showdown-leaguebot/league"
	"github.com/mikeb26/showdown-leaguebot/rating"
	"github.com/stretchr/testify/assert"
)

func TestFormatAnnouncement(t *testing.T) {
	out := &Outcome{
		Result: &battlelog.MatchResult{PlayerOne: "alice", PlayerTwo: "bob",
			FaintsOne: 4, FaintsTwo: 1, Outcome: battlelog.OutcomeWin2,
			Format: "[Gen 9] OU"},
		Rating: &rating.Change{
			One: rating.PlayerChange{
				Before: rating.Record{Username: "alice", Elo: 1032},
				After:  rating.Record{Username: "alice", Elo: 1000},
			},
			Two: rating.PlayerChange{
				Before: rating.Record{Username: "bob", Elo: 968},
				After:  rating.Record{Username: "bob", Elo: 1000},
			},
		},
		Season: 3,
		League: "Kanto",
		Standings: league.Table{
			{Username: "bob", Wins: 1, Points: 3},
			{Username: "carol"},
			{Username: "alice", Losses: 1},
		},
	}

	want := "**bob** defeated **alice** 4-1 in [Gen 9] OU (Kanto, season 3)\n" +
		"alice: 1032 -> 1000 (-32)\n" +
		"bob: 968 -> 1000 (+32)\n" +
		"bob is now #1 with 3 points\n" +
		"alice is now #3 with 0 points"
	assert.Equal(t, want, FormatAnnouncement(out))
}

func TestFormatAnnouncementRatingsOnly(t *testing.T) {
	out := &Outcome{
		Result: &battlelog.MatchResult{PlayerOne: "alice", PlayerTwo: "bob",
			FaintsOne: 2, FaintsTwo: 2, Outcome: battlelog.OutcomeDraw},
	}

	assert.Equal(t, "**alice** and **bob** drew", FormatAnnouncement(out))
}
