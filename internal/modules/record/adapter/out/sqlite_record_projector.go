package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"healthlog/internal/modules/record/domain"
	recordout "healthlog/internal/modules/record/port/out"

	_ "modernc.org/sqlite"
)

var symptomColumns = map[string]string{
	domain.SymptomHeadache:        "headache",
	domain.SymptomFatigue:         "fatigue",
	domain.SymptomSoreThroat:      "sore_throat",
	domain.SymptomNasalCongestion: "nasal_congestion",
	domain.SymptomPhlegm:          "phlegm",
	domain.SymptomStomachPain:     "stomach_pain",
	domain.SymptomEyeFatigue:      "eye_fatigue",
	domain.SymptomOther:           "other",
}

type SQLiteRecordProjector struct {
	db *sql.DB
}

var _ recordout.RecordIndexProjector = (*SQLiteRecordProjector)(nil)

func NewSQLiteRecordProjector(dbPath string) (*SQLiteRecordProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRecordProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteRecordProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS records (
  date TEXT PRIMARY KEY,
  id TEXT NOT NULL,
  breakfast INTEGER NOT NULL,
  lunch INTEGER NOT NULL,
  dinner INTEGER NOT NULL,
  snack INTEGER NOT NULL,
  sleep_hours INTEGER NOT NULL,
  stress TEXT NOT NULL,
  exercise TEXT NOT NULL,
  bowel TEXT NOT NULL,
  commute TEXT NOT NULL,
  work_count TEXT NOT NULL,
  relax_time TEXT NOT NULL,
  freelance_time TEXT NOT NULL,
  ahj TEXT NOT NULL,
  headache INTEGER NOT NULL,
  fatigue INTEGER NOT NULL,
  sore_throat INTEGER NOT NULL,
  nasal_congestion INTEGER NOT NULL,
  phlegm INTEGER NOT NULL,
  stomach_pain INTEGER NOT NULL,
  eye_fatigue INTEGER NOT NULL,
  other INTEGER NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("reset records: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) UpsertRecord(ctx context.Context, r domain.Record) error {
	const stmt = `
INSERT INTO records (date, id, breakfast, lunch, dinner, snack, sleep_hours, stress, exercise, bowel, commute, work_count, relax_time, freelance_time, ahj,
  headache, fatigue, sore_throat, nasal_congestion, phlegm, stomach_pain, eye_fatigue, other, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  id=excluded.id,
  breakfast=excluded.breakfast,
  lunch=excluded.lunch,
  dinner=excluded.dinner,
  snack=excluded.snack,
  sleep_hours=excluded.sleep_hours,
  stress=excluded.stress,
  exercise=excluded.exercise,
  bowel=excluded.bowel,
  commute=excluded.commute,
  work_count=excluded.work_count,
  relax_time=excluded.relax_time,
  freelance_time=excluded.freelance_time,
  ahj=excluded.ahj,
  headache=excluded.headache,
  fatigue=excluded.fatigue,
  sore_throat=excluded.sore_throat,
  nasal_congestion=excluded.nasal_congestion,
  phlegm=excluded.phlegm,
  stomach_pain=excluded.stomach_pain,
  eye_fatigue=excluded.eye_fatigue,
  other=excluded.other,
  updated_at=excluded.updated_at;
`
	f, sy := r.Factors, r.Symptoms
	_, err := s.db.ExecContext(ctx, stmt,
		r.Date, string(r.ID),
		boolToInt(f.Meals.Breakfast), boolToInt(f.Meals.Lunch), boolToInt(f.Meals.Dinner), boolToInt(f.Meals.Snack),
		f.SleepHours, string(f.Stress), string(f.Exercise), string(f.Bowel), string(f.Commute),
		string(f.WorkCount), string(f.RelaxTime), string(f.FreelanceTime), string(f.AHJ),
		boolToInt(sy.Headache), boolToInt(sy.Fatigue), boolToInt(sy.SoreThroat), boolToInt(sy.NasalCongestion),
		boolToInt(sy.Phlegm), boolToInt(sy.StomachPain), boolToInt(sy.EyeFatigue), boolToInt(sy.Other),
		r.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", r.Date, err)
	}
	return nil
}

func (s *SQLiteRecordProjector) DeleteRecord(ctx context.Context, date string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete record %s: %w", date, err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Stats(ctx context.Context) (domain.IndexStats, error) {
	sums := make([]string, 0, len(domain.SymptomKeys))
	for _, key := range domain.SymptomKeys {
		sums = append(sums, "COALESCE(SUM("+symptomColumns[key]+"), 0)")
	}
	query := `SELECT COUNT(*), COALESCE(MIN(date), ''), COALESCE(MAX(date), ''), ` + strings.Join(sums, ", ") + ` FROM records`

	var stats domain.IndexStats
	counts := make([]int, len(domain.SymptomKeys))
	dest := []any{&stats.Records, &stats.FirstDate, &stats.LastDate}
	for i := range counts {
		dest = append(dest, &counts[i])
	}
	if err := s.db.QueryRowContext(ctx, query).Scan(dest...); err != nil {
		return domain.IndexStats{}, fmt.Errorf("query record stats: %w", err)
	}
	stats.SymptomDays = make(map[string]int, len(counts))
	for i, key := range domain.SymptomKeys {
		stats.SymptomDays[key] = counts[i]
	}
	return stats, nil
}

func (s *SQLiteRecordProjector) Close() error {
	return s.db.Close()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
