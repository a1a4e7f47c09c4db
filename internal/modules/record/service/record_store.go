package service

import (
	"context"
	"fmt"
	"log/slog"

	"healthlog/internal/modules/record/domain"
	recordout "healthlog/internal/modules/record/port/out"
	"healthlog/internal/platform/clock"
	apperrors "healthlog/internal/platform/errors"
	"healthlog/internal/platform/id"
	"healthlog/internal/platform/logging"
)

// LoadReport describes what Load recovered from storage.
type LoadReport struct {
	Records   int
	Dropped   int
	Recovered bool
}

// RecordStore owns the in-memory collection and writes it through to
// storage after every mutation. It is not safe for concurrent use; callers
// serialize access (see usecase.Interactor).
type RecordStore struct {
	clock   clock.Clock
	idGen   id.Generator
	storage recordout.BlobStorage
	logger  *slog.Logger
	records domain.Collection
}

func NewRecordStore(clock clock.Clock, idGen id.Generator, storage recordout.BlobStorage, logger *slog.Logger) *RecordStore {
	return &RecordStore{clock: clock, idGen: idGen, storage: storage, logger: logging.OrDiscard(logger)}
}

// Load replaces the collection with the stored one. It never fails: a
// missing, unreadable or corrupt document leaves an empty collection.
// Records with invalid dates and repeated dates are dropped.
func (s *RecordStore) Load(ctx context.Context) LoadReport {
	s.records = domain.Collection{}
	payload, ok, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("record storage unreadable, starting empty", "error", err)
		return LoadReport{Recovered: true}
	}
	if !ok {
		return LoadReport{}
	}
	decoded, err := domain.Decode(payload)
	if err != nil {
		s.logger.Warn("record storage corrupt, starting empty", "error", err)
		return LoadReport{Recovered: true}
	}

	valid := make([]domain.Record, 0, len(decoded))
	dropped := 0
	for _, r := range decoded {
		if err := r.Validate(); err != nil {
			s.logger.Warn("dropping stored record", "date", r.Date, "error", err)
			dropped++
			continue
		}
		valid = append(valid, r)
	}
	collection, dupes := domain.NewCollection(valid)
	for _, r := range dupes {
		s.logger.Warn("dropping duplicate stored record", "date", r.Date, "id", r.ID)
	}
	s.records = collection
	return LoadReport{Records: collection.Len(), Dropped: dropped + len(dupes)}
}

// Upsert stores obs as the record for its date, replacing any existing one.
func (s *RecordStore) Upsert(ctx context.Context, obs domain.Observation) (domain.Record, bool, error) {
	record, err := domain.NewRecord(obs, s.idGen.New(), s.clock.Now())
	if err != nil {
		return domain.Record{}, false, err
	}
	snapshot := s.records.Clone()
	replaced := s.records.Upsert(record)
	if err := s.persist(ctx); err != nil {
		s.records = snapshot
		return domain.Record{}, false, err
	}
	s.logger.Debug("record upserted", "date", record.Date, "replaced", replaced)
	return record, replaced, nil
}

// RemoveByDate deletes the record for date. Storage is written only when a
// record was removed.
func (s *RecordStore) RemoveByDate(ctx context.Context, date string) (bool, error) {
	if _, ok := clock.ParseDate(date); !ok {
		return false, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, date)
	}
	snapshot := s.records.Clone()
	if !s.records.RemoveByDate(date) {
		return false, nil
	}
	if err := s.persist(ctx); err != nil {
		s.records = snapshot
		return false, err
	}
	s.logger.Debug("record removed", "date", date)
	return true, nil
}

// Clear empties the collection and returns how many records it held.
func (s *RecordStore) Clear(ctx context.Context) (int, error) {
	snapshot := s.records
	count := snapshot.Len()
	s.records = domain.Collection{}
	if err := s.persist(ctx); err != nil {
		s.records = snapshot
		return 0, err
	}
	s.logger.Debug("records cleared", "count", count)
	return count, nil
}

func (s *RecordStore) List() []domain.Record {
	return s.records.Records()
}

func (s *RecordStore) Get(date string) (domain.Record, error) {
	record, ok := s.records.Find(date)
	if !ok {
		return domain.Record{}, fmt.Errorf("record for %s: %w", date, apperrors.ErrNotFound)
	}
	return record, nil
}

// Document encodes the current collection in its stored form.
func (s *RecordStore) Document() ([]byte, error) {
	return domain.Encode(s.records.Records())
}

func (s *RecordStore) persist(ctx context.Context) error {
	payload, err := domain.Encode(s.records.Records())
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, payload); err != nil {
		return fmt.Errorf("persist records: %w", err)
	}
	return nil
}
