package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

// Store keeps everything in process memory. It backs STORAGE_DRIVER=memory
// and the usecase and API tests.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
	records  map[string]domain.Records
	streaks  map[string]domain.StreakState
	settings map[string]domain.Settings
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]domain.UserProfile),
		records:  make(map[string]domain.Records),
		streaks:  make(map[string]domain.StreakState),
		settings: make(map[string]domain.Settings),
	}
}

func (s *Store) GetProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) UpsertProfile(_ context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *profile
	if existing, ok := s.profiles[p.UserID]; ok && p.CreatedAt.IsZero() {
		p.CreatedAt = existing.CreatedAt
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	s.profiles[p.UserID] = p
	return nil
}

func (s *Store) GetAllProfiles(_ context.Context) ([]*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *Store) GetRecords(_ context.Context, userID string) (domain.Records, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cloned := make(domain.Records, len(s.records[userID]))
	for k, v := range s.records[userID] {
		cloned[k] = v
	}
	return cloned, nil
}

func (s *Store) UpsertRecord(_ context.Context, record *domain.DailyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.records[record.UserID]
	if !ok {
		byDate = make(domain.Records)
		s.records[record.UserID] = byDate
	}
	byDate[record.Date] = *record
	return nil
}

func (s *Store) GetStreak(_ context.Context, userID string) (*domain.StreakState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.streaks[userID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *Store) SaveStreak(_ context.Context, state *domain.StreakState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := *state
	st.UpdatedAt = time.Now()
	s.streaks[st.UserID] = st
	return nil
}

func (s *Store) GetAllStreaks(_ context.Context) ([]*domain.StreakState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.StreakState, 0, len(s.streaks))
	for _, st := range s.streaks {
		st := st
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (s *Store) GetSettings(_ context.Context, userID string) (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.settings[userID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *Store) SaveSettings(_ context.Context, settings *domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[settings.UserID] = *settings
	return nil
}
