package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats is the per-user gamification accumulator: coins spendable in the
// shop, XP driving level and leaderboard rank, and the daily streak.
type Stats struct {
	UserID string `json:"userId"`
	Coins  int    `json:"coins"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
	Streak int    `json:"streak"`
}

// LeaderboardEntry is one ranked row of the social leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}
