package out

import (
	"context"

	"healthlog/internal/modules/analysis/domain"
	analysisout "healthlog/internal/modules/analysis/port/out"
	recorddto "healthlog/internal/modules/record/dto"
	recordin "healthlog/internal/modules/record/port/in"
)

type RecordSourceAdapter struct {
	records recordin.Usecase
}

func NewRecordSourceAdapter(records recordin.Usecase) analysisout.RecordSource {
	return &RecordSourceAdapter{records: records}
}

func (a *RecordSourceAdapter) Entries(ctx context.Context) ([]domain.Entry, error) {
	records, err := a.records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		out = append(out, toEntry(r))
	}
	return out, nil
}

func (a *RecordSourceAdapter) Entry(ctx context.Context, date string) (domain.Entry, error) {
	record, err := a.records.GetRecord(ctx, date)
	if err != nil {
		return domain.Entry{}, err
	}
	return toEntry(record), nil
}

func toEntry(r recorddto.RecordOutput) domain.Entry {
	f := domain.Factors{
		SleepHours:    r.SleepHours,
		Stress:        r.Stress,
		Exercise:      r.Exercise,
		Bowel:         r.Bowel,
		Commute:       r.Commute,
		WorkCount:     r.WorkCount,
		RelaxTime:     r.RelaxTime,
		FreelanceTime: r.FreelanceTime,
		AHJ:           r.AHJ,
	}
	for _, meal := range r.Meals {
		switch domain.FactorKey(meal) {
		case domain.FactorBreakfast:
			f.Breakfast = true
		case domain.FactorLunch:
			f.Lunch = true
		case domain.FactorDinner:
			f.Dinner = true
		case domain.FactorSnack:
			f.Snack = true
		}
	}
	symptoms := make(map[domain.SymptomKey]bool, len(r.Symptoms))
	for _, s := range r.Symptoms {
		symptoms[domain.SymptomKey(s)] = true
	}
	return domain.Entry{Date: r.Date, Factors: f, Symptoms: symptoms}
}
