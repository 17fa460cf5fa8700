/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent = "showdown-leaguebot/0.3.0 (+https://github.com/mikeb26/showdown-leaguebot)"

	// ReplayCachePrefix is the object key prefix under which fetched replay
	// pages are cached in S3.
	ReplayCachePrefix = "replaycache"

	DefaultDBPath     = "league.db"
	DefaultSeasonsDir = "seasons"
	// replays never change once a battle ends
	DefaultCacheTTL = 30 * 24 * time.Hour
)
