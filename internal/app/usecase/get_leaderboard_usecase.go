package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Streak         int    `json:"streak"`
	GoalStreak     int    `json:"goal_streak"`
	LastConnection string `json:"last_connection"`
}

type Leaderboard struct {
	Date time.Time `json:"date"`
	// Active users logged today or yesterday and can still keep their streak.
	Active []LeaderboardEntry `json:"active"`
	Lost   []LeaderboardEntry `json:"lost"`
}

type GetLeaderboardUsecase struct {
	streaks  domain.StreakRepository
	profiles domain.ProfileRepository
}

func NewGetLeaderboardUsecase(streaks domain.StreakRepository, profiles domain.ProfileRepository) *GetLeaderboardUsecase {
	return &GetLeaderboardUsecase{streaks: streaks, profiles: profiles}
}

func (uc *GetLeaderboardUsecase) Execute(ctx context.Context) (*Leaderboard, error) {
	streaks, err := uc.streaks.GetAllStreaks(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := uc.profiles.GetAllProfiles(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.Name
	}

	now := time.Now()
	today := domain.DateKey(now)
	yesterday := domain.DateKey(now.AddDate(0, 0, -1))

	board := &Leaderboard{Date: now}
	for _, s := range streaks {
		name := names[s.UserID]
		if name == "" {
			name = s.UserID
		}
		entry := LeaderboardEntry{
			UserID:         s.UserID,
			Name:           name,
			Streak:         s.Count,
			GoalStreak:     s.GoalCount,
			LastConnection: s.LastConnection,
		}

		if s.LastConnection == today || s.LastConnection == yesterday {
			board.Active = append(board.Active, entry)
		} else {
			board.Lost = append(board.Lost, entry)
		}
	}

	// Sort by Streak Descending
	sort.SliceStable(board.Active, func(i, j int) bool {
		return board.Active[i].Streak > board.Active[j].Streak
	})
	sort.SliceStable(board.Lost, func(i, j int) bool {
		return board.Lost[i].LastConnection > board.Lost[j].LastConnection
	})

	return board, nil
}
