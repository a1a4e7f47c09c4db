package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"healthlog/internal/modules/record/domain"
	"healthlog/internal/modules/record/dto"
	recordin "healthlog/internal/modules/record/port/in"
	recordout "healthlog/internal/modules/record/port/out"
	"healthlog/internal/modules/record/service"
	"healthlog/internal/platform/clock"
	"healthlog/internal/platform/logging"
	"healthlog/internal/platform/tx"
)

// Interactor serializes every store access through tx and mirrors mutations
// into the optional record index. Index failures are logged, never returned
// from a mutation.
type Interactor struct {
	store     *service.RecordStore
	tx        tx.Manager
	clock     clock.Clock
	projector recordout.RecordIndexProjector
	logger    *slog.Logger
}

func NewInteractor(store *service.RecordStore, txm tx.Manager, clk clock.Clock, projector recordout.RecordIndexProjector, logger *slog.Logger) recordin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{store: store, tx: txm, clock: clk, projector: projector, logger: logging.OrDiscard(logger)}
}

// AddOrUpdateRecord uses today's date when input.Date is blank.
func (i *Interactor) AddOrUpdateRecord(ctx context.Context, input dto.RecordInput) (dto.UpsertOutput, error) {
	if strings.TrimSpace(input.Date) == "" {
		input.Date = clock.Today(i.clock)
	}
	var (
		record   domain.Record
		replaced bool
	)
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		record, replaced, err = i.store.Upsert(ctx, domain.Observation{
			Date:          input.Date,
			Meals:         input.Meals,
			SleepHours:    input.SleepHours,
			Stress:        input.Stress,
			Exercise:      input.Exercise,
			Bowel:         input.Bowel,
			Commute:       input.Commute,
			WorkCount:     input.WorkCount,
			RelaxTime:     input.RelaxTime,
			FreelanceTime: input.FreelanceTime,
			AHJ:           input.AHJ,
			Symptoms:      input.Symptoms,
		})
		return err
	})
	if err != nil {
		return dto.UpsertOutput{}, err
	}
	if i.projector != nil {
		if err := i.projector.UpsertRecord(ctx, record); err != nil {
			i.logger.Warn("record index update failed", "date", record.Date, "error", err)
		}
	}
	return dto.UpsertOutput{Record: toOutput(record), Replaced: replaced}, nil
}

func (i *Interactor) DeleteRecord(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error) {
	date := input.Date
	if input.Today {
		date = clock.Today(i.clock)
	}
	var removed bool
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		removed, err = i.store.RemoveByDate(ctx, date)
		return err
	})
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	if removed && i.projector != nil {
		if err := i.projector.DeleteRecord(ctx, date); err != nil {
			i.logger.Warn("record index delete failed", "date", date, "error", err)
		}
	}
	return dto.DeleteOutput{Date: date, Removed: removed}, nil
}

func (i *Interactor) ListRecords(ctx context.Context) ([]dto.RecordOutput, error) {
	var records []domain.Record
	err := i.tx.Within(ctx, func(context.Context) error {
		records = i.store.List()
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) GetRecord(ctx context.Context, date string) (dto.RecordOutput, error) {
	var record domain.Record
	err := i.tx.Within(ctx, func(context.Context) error {
		var err error
		record, err = i.store.Get(date)
		return err
	})
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toOutput(record), nil
}

func (i *Interactor) ClearRecords(ctx context.Context) (dto.ClearOutput, error) {
	var removed int
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		removed, err = i.store.Clear(ctx)
		return err
	})
	if err != nil {
		return dto.ClearOutput{}, err
	}
	if i.projector != nil {
		if err := i.projector.Reset(ctx); err != nil {
			i.logger.Warn("record index reset failed", "error", err)
		}
	}
	return dto.ClearOutput{Removed: removed}, nil
}

func (i *Interactor) ExportDocument(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := i.tx.Within(ctx, func(context.Context) error {
		var err error
		payload, err = i.store.Document()
		return err
	})
	return payload, err
}

// Reindex rebuilds the record index from the in-memory collection.
func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	if i.projector == nil {
		return dto.ReindexOutput{}, fmt.Errorf("record index is disabled")
	}
	var records []domain.Record
	if err := i.tx.Within(ctx, func(context.Context) error {
		records = i.store.List()
		return nil
	}); err != nil {
		return dto.ReindexOutput{}, err
	}
	if err := i.projector.Reset(ctx); err != nil {
		return dto.ReindexOutput{}, err
	}
	for _, r := range records {
		if err := i.projector.UpsertRecord(ctx, r); err != nil {
			return dto.ReindexOutput{}, err
		}
	}
	return dto.ReindexOutput{Indexed: len(records)}, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	if i.projector == nil {
		return dto.StatsOutput{}, fmt.Errorf("record index is disabled")
	}
	stats, err := i.projector.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	out := dto.StatsOutput{
		Records:   stats.Records,
		FirstDate: stats.FirstDate,
		LastDate:  stats.LastDate,
		Symptoms:  make([]dto.SymptomCount, 0, len(domain.SymptomKeys)),
	}
	for _, key := range domain.SymptomKeys {
		out.Symptoms = append(out.Symptoms, dto.SymptomCount{Symptom: key, Days: stats.SymptomDays[key]})
	}
	return out, nil
}

func toOutput(r domain.Record) dto.RecordOutput {
	f := r.Factors
	return dto.RecordOutput{
		ID:            string(r.ID),
		Date:          r.Date,
		Meals:         f.Meals.Selected(),
		SleepHours:    f.SleepHours,
		Stress:        string(f.Stress),
		Exercise:      string(f.Exercise),
		Bowel:         string(f.Bowel),
		Commute:       string(f.Commute),
		WorkCount:     string(f.WorkCount),
		RelaxTime:     string(f.RelaxTime),
		FreelanceTime: string(f.FreelanceTime),
		AHJ:           string(f.AHJ),
		Symptoms:      r.Symptoms.Present(),
		Timestamp:     r.Timestamp,
	}
}
