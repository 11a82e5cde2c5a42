package usecase

import (
	"context"
	"math"

	"github.com/fardannozami/quitzone/internal/domain"
)

type SetPriceUsecase struct {
	repo domain.ProfileRepository
}

func NewSetPriceUsecase(repo domain.ProfileRepository) *SetPriceUsecase {
	return &SetPriceUsecase{repo: repo}
}

// Execute sets the price of a single cigarette.
func (uc *SetPriceUsecase) Execute(ctx context.Context, userID string, price float64) (*domain.UserProfile, error) {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, domain.ErrInvalidPrice
	}

	p, err := uc.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}

	p.CigarettePrice = price
	if err := uc.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
