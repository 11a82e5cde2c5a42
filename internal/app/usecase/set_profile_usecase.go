package usecase

import (
	"context"
	"strings"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

type ProfileInput struct {
	Name             string           `json:"name"`
	DailyBaseline    int              `json:"daily_baseline"`
	Objective        domain.Objective `json:"objective"`
	ReductionPerWeek int              `json:"reduction_per_week"`
	TargetDate       string           `json:"target_date"` // YYYY-MM-DD, quit only
}

type SetProfileUsecase struct {
	repo         domain.ProfileRepository
	defaultPrice float64
}

func NewSetProfileUsecase(repo domain.ProfileRepository, defaultPrice float64) *SetProfileUsecase {
	return &SetProfileUsecase{repo: repo, defaultPrice: defaultPrice}
}

// Execute creates the profile or replaces its plan. Price and creation time
// of an existing profile are kept.
func (uc *SetProfileUsecase) Execute(ctx context.Context, userID string, in ProfileInput) (*domain.UserProfile, error) {
	if in.DailyBaseline < 0 {
		return nil, domain.ErrInvalidCount
	}
	in.Objective = domain.Objective(strings.ToLower(strings.TrimSpace(string(in.Objective))))
	if !in.Objective.Valid() {
		return nil, domain.ErrInvalidObjective
	}

	existing, err := uc.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.UserProfile{
		UserID:         userID,
		Name:           strings.TrimSpace(in.Name),
		CigarettePrice: uc.defaultPrice,
	}
	if existing != nil {
		p.CreatedAt = existing.CreatedAt
		p.CigarettePrice = existing.CigarettePrice
		if p.Name == "" {
			p.Name = existing.Name
		}
	}

	p.DailyBaseline = in.DailyBaseline
	p.Objective = in.Objective

	switch in.Objective {
	case domain.ObjectiveReduce:
		p.ReductionPerWeek = in.ReductionPerWeek
		if p.ReductionPerWeek <= 0 {
			p.ReductionPerWeek = progress.DefaultReductionPerWeek
		}
	case domain.ObjectiveQuit:
		if in.TargetDate != "" {
			target, err := domain.ParseDate(strings.TrimSpace(in.TargetDate), nil)
			if err != nil {
				return nil, domain.ErrInvalidDate
			}
			p.TargetDate = &target
		}
	}

	if err := uc.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
