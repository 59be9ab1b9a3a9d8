// Package rewards is the gamification bookkeeping consumed as a side-effect
// sink: completing a task or answering an alarm pushes coins and XP into a
// per-user accumulator, which in turn drives level and the leaderboard.
package rewards

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/storage"
)

// XPPerLevel is how much XP advances one level. Point values throughout
// this package are tuning knobs, not contracts.
const XPPerLevel = 1000

const (
	TaskCompletedCoins = 10
	TaskCompletedXP    = 25
	AlarmAnsweredCoins = 5
	AlarmAnsweredXP    = 10
	FocusSessionCoins  = 50
	FocusSessionXP     = 50
	UltraFocusCoins    = 100
	UltraFocusXP       = 100
)

// ErrInsufficientCoins is returned by Spend when the balance cannot cover
// the purchase.
var ErrInsufficientCoins = errors.New("insufficient coins")

type Service struct {
	store storage.Provider
}

func New(store storage.Provider) *Service {
	return &Service{store: store}
}

// Award adds coins and XP to the user's accumulator and recomputes level.
func (s *Service) Award(userID string, coins, xp int) (models.Stats, error) {
	stats, err := s.store.GetStats(userID)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	stats.Coins += coins
	stats.XP += xp
	stats.Level = 1 + stats.XP/XPPerLevel

	if err := s.store.SaveStats(stats); err != nil {
		return models.Stats{}, fmt.Errorf("failed to save stats: %w", err)
	}
	return stats, nil
}

// FocusComplete pays out a finished focus session and extends the user's
// streak. Ultra-focus sessions pay double.
func (s *Service) FocusComplete(userID string, ultra bool) (models.Stats, error) {
	coins, xp := FocusSessionCoins, FocusSessionXP
	if ultra {
		coins, xp = UltraFocusCoins, UltraFocusXP
	}

	stats, err := s.store.GetStats(userID)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	stats.Coins += coins
	stats.XP += xp
	stats.Level = 1 + stats.XP/XPPerLevel
	stats.Streak++

	if err := s.store.SaveStats(stats); err != nil {
		return models.Stats{}, fmt.Errorf("failed to save stats: %w", err)
	}
	return stats, nil
}

// Spend deducts coins, for shop purchases. Fails without mutating anything
// if the balance is insufficient.
func (s *Service) Spend(userID string, coins int) (models.Stats, error) {
	stats, err := s.store.GetStats(userID)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	if stats.Coins < coins {
		return models.Stats{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCoins, stats.Coins, coins)
	}
	stats.Coins -= coins

	if err := s.store.SaveStats(stats); err != nil {
		return models.Stats{}, fmt.Errorf("failed to save stats: %w", err)
	}
	return stats, nil
}

// Leaderboard ranks all users by XP, descending. Ties break by username so
// the ordering is stable.
func (s *Service) Leaderboard() ([]models.LeaderboardEntry, error) {
	users, err := s.store.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		stats, err := s.store.GetStats(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load stats for %s: %w", user.ID, err)
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID:   user.ID,
			Username: user.Username,
			XP:       stats.XP,
			Level:    stats.Level,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].Username < entries[j].Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
