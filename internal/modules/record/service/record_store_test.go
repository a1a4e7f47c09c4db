package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordout "healthlog/internal/modules/record/adapter/out"
	"healthlog/internal/modules/record/domain"
	"healthlog/internal/modules/record/service"
	"healthlog/internal/platform/clock"
	apperrors "healthlog/internal/platform/errors"
	"healthlog/internal/platform/id"
)

var now = time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

func newStore(t *testing.T, storage *recordout.MemoryBlobStorage) (*service.RecordStore, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := service.NewRecordStore(clock.Fixed{At: now}, &id.Sequence{IDs: []string{"id-1", "id-2", "id-3", "id-4"}}, storage, logger)
	return store, &logs
}

func listDates(store *service.RecordStore) []string {
	var out []string
	for _, r := range store.List() {
		out = append(out, r.Date)
	}
	return out
}

func TestUpsertSameDateKeepsOnlyLatestPayload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := recordout.NewMemoryBlobStorage()
	store, _ := newStore(t, storage)

	first, replaced, err := store.Upsert(ctx, domain.Observation{Date: "2025-02-01", SleepHours: 8, Stress: "yes"})
	require.NoError(t, err)
	assert.False(t, replaced)
	second, replaced, err := store.Upsert(ctx, domain.Observation{Date: "2025-02-01", SleepHours: 5})
	require.NoError(t, err)
	assert.True(t, replaced)

	records := store.List()
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Factors.SleepHours)
	assert.Equal(t, domain.Unset, records[0].Factors.Stress, "upsert replaces, it does not merge")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, 2, storage.Saves())
}

func TestUpsertKeepsDateDescendingOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _ := newStore(t, recordout.NewMemoryBlobStorage())
	for _, date := range []string{"2025-01-02", "2025-01-05", "2025-01-01", "2025-01-03"} {
		_, _, err := store.Upsert(ctx, domain.Observation{Date: date})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"2025-01-05", "2025-01-03", "2025-01-02", "2025-01-01"}, listDates(store))

	removed, err := store.RemoveByDate(ctx, "2025-01-03")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"2025-01-05", "2025-01-02", "2025-01-01"}, listDates(store))
}

func TestRemoveMissingDateLeavesStoreUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := recordout.NewMemoryBlobStorage()
	store, _ := newStore(t, storage)
	_, _, err := store.Upsert(ctx, domain.Observation{Date: "2025-01-01"})
	require.NoError(t, err)

	removed, err := store.RemoveByDate(ctx, "2025-06-30")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []string{"2025-01-01"}, listDates(store))
	assert.Equal(t, 1, storage.Saves(), "no persist without a removal")

	_, err = store.RemoveByDate(ctx, "June 30")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
}

func TestInvalidUpsertLeavesStoreUnmodified(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := recordout.NewMemoryBlobStorage()
	store, _ := newStore(t, storage)
	_, _, err := store.Upsert(ctx, domain.Observation{Date: "2025-01-01"})
	require.NoError(t, err)

	_, _, err = store.Upsert(ctx, domain.Observation{Date: "not-a-date"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	_, _, err = store.Upsert(ctx, domain.Observation{Date: "2025-01-02", Commute: "rocket"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	assert.Equal(t, []string{"2025-01-01"}, listDates(store))
	assert.Equal(t, 1, storage.Saves())
}

func TestFailedPersistRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := recordout.NewMemoryBlobStorage()
	store, _ := newStore(t, storage)
	_, _, err := store.Upsert(ctx, domain.Observation{Date: "2025-01-01", SleepHours: 7})
	require.NoError(t, err)

	storage.FailSave = errors.New("disk full")
	_, _, err = store.Upsert(ctx, domain.Observation{Date: "2025-01-01", SleepHours: 4})
	require.Error(t, err)
	_, _, err = store.Upsert(ctx, domain.Observation{Date: "2025-01-02"})
	require.Error(t, err)
	_, err = store.RemoveByDate(ctx, "2025-01-01")
	require.Error(t, err)
	_, err = store.Clear(ctx)
	require.Error(t, err)

	records := store.List()
	require.Len(t, records, 1)
	assert.Equal(t, 7, records[0].Factors.SleepHours)
}

func TestLoadRoundTripsThroughStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := recordout.NewMemoryBlobStorage()
	store, _ := newStore(t, storage)
	_, _, err := store.Upsert(ctx, domain.Observation{Date: "2025-01-01", Meals: []string{"dinner"}, Symptoms: []string{"phlegm"}})
	require.NoError(t, err)
	_, _, err = store.Upsert(ctx, domain.Observation{Date: "2025-01-02"})
	require.NoError(t, err)

	reloaded, _ := newStore(t, storage)
	report := reloaded.Load(ctx)
	assert.Equal(t, service.LoadReport{Records: 2}, report)
	got, err := reloaded.Get("2025-01-01")
	require.NoError(t, err)
	assert.True(t, got.Factors.Meals.Dinner)
	assert.True(t, got.Symptoms.Phlegm)

	_, err = reloaded.Get("2024-12-31")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLoadRecoversFromCorruptStorage(t *testing.T) {
	t.Parallel()
	store, logs := newStore(t, recordout.NewSeededMemoryBlobStorage([]byte(`[{"date": "2025-01-01",`)))
	report := store.Load(context.Background())

	assert.True(t, report.Recovered)
	assert.Empty(t, store.List())
	assert.Contains(t, logs.String(), "record storage corrupt")
}

func TestLoadWithNothingStored(t *testing.T) {
	t.Parallel()
	store, logs := newStore(t, recordout.NewMemoryBlobStorage())
	assert.Equal(t, service.LoadReport{}, store.Load(context.Background()))
	assert.Empty(t, store.List())
	assert.Empty(t, logs.String())
}

func TestLoadDropsInvalidAndDuplicateRecords(t *testing.T) {
	t.Parallel()
	seed := `[
  {"id": "a", "date": "2025-01-01", "factors": {"sleepHours": 5}},
  {"id": "b", "date": "2025-01-03"},
  {"id": "c", "date": "2025-01-01", "factors": {"sleepHours": 9}},
  {"id": "d", "date": "someday"},
  {"id": "e", "date": "2025-01-02", "factors": {"ahj": "rage"}}
]`
	store, logs := newStore(t, recordout.NewSeededMemoryBlobStorage([]byte(seed)))
	report := store.Load(context.Background())

	assert.Equal(t, service.LoadReport{Records: 2, Dropped: 3}, report)
	assert.Equal(t, []string{"2025-01-03", "2025-01-01"}, listDates(store))
	kept, err := store.Get("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, domain.RecordID("a"), kept.ID)
	assert.Equal(t, 3, strings.Count(logs.String(), "dropping"))
}

func TestClearEmptiesAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := recordout.NewMemoryBlobStorage()
	store, _ := newStore(t, storage)
	for _, date := range []string{"2025-01-01", "2025-01-02"} {
		_, _, err := store.Upsert(ctx, domain.Observation{Date: date})
		require.NoError(t, err)
	}
	count, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, store.List())

	payload, ok, err := storage.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]\n", string(payload))
}

func TestListReturnsACopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _ := newStore(t, recordout.NewMemoryBlobStorage())
	_, _, err := store.Upsert(ctx, domain.Observation{Date: "2025-01-01"})
	require.NoError(t, err)

	list := store.List()
	list[0].Factors.SleepHours = 99
	got, err := store.Get("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Factors.SleepHours)
}
