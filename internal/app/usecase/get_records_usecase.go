package usecase

import (
	"context"

	"github.com/fardannozami/quitzone/internal/domain"
)

type GetRecordsUsecase struct {
	records domain.RecordRepository
}

func NewGetRecordsUsecase(records domain.RecordRepository) *GetRecordsUsecase {
	return &GetRecordsUsecase{records: records}
}

// Execute lists a user's records oldest first.
func (uc *GetRecordsUsecase) Execute(ctx context.Context, userID string) ([]domain.DailyRecord, error) {
	records, err := uc.records.GetRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DailyRecord, 0, len(records))
	for _, d := range records.SortedDates() {
		out = append(out, records[d])
	}
	return out, nil
}
