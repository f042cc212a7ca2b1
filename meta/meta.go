// meta/meta.go
package meta

import "time"

// MAX_TURNS caps a game; a game reaching it is a draw.
const MAX_TURNS = 300

// SEARCH_DEPTH is the default search depth in plies.
const SEARCH_DEPTH = 6

// SEARCH_BUDGET bounds the time spent on one move.
const SEARCH_BUDGET = 2 * time.Second

// TABLE_SIZE is the default transposition table capacity.
const TABLE_SIZE = 1 << 20

const SERVER_ADDR = ":8080"

// REDIS_TTL expires saved games that are no longer played.
const REDIS_TTL = 24 * time.Hour

const LOG_LEVEL = "info"
