package out

import (
	"context"

	"healthlog/internal/modules/export/domain"
	exportout "healthlog/internal/modules/export/port/out"
	recordin "healthlog/internal/modules/record/port/in"
)

type RecordSourceAdapter struct {
	records recordin.Usecase
}

func NewRecordSourceAdapter(records recordin.Usecase) exportout.RecordSource {
	return &RecordSourceAdapter{records: records}
}

func (a *RecordSourceAdapter) Document(ctx context.Context) ([]byte, error) {
	return a.records.ExportDocument(ctx)
}

func (a *RecordSourceAdapter) Entries(ctx context.Context) ([]domain.Entry, error) {
	records, err := a.records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		out = append(out, domain.Entry{
			Date:          r.Date,
			Meals:         r.Meals,
			SleepHours:    r.SleepHours,
			Stress:        r.Stress,
			Exercise:      r.Exercise,
			Bowel:         r.Bowel,
			Commute:       r.Commute,
			WorkCount:     r.WorkCount,
			RelaxTime:     r.RelaxTime,
			FreelanceTime: r.FreelanceTime,
			AHJ:           r.AHJ,
			Symptoms:      r.Symptoms,
		})
	}
	return out, nil
}
