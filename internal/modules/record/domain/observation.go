package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"healthlog/internal/platform/clock"
	apperrors "healthlog/internal/platform/errors"
)

// Observation is the raw, unvalidated input for one day. Meals and Symptoms
// hold the selected keys; enumerated factors hold their string values.
type Observation struct {
	Date          string
	Meals         []string
	SleepHours    int
	Stress        string
	Exercise      string
	Bowel         string
	Commute       string
	WorkCount     string
	RelaxTime     string
	FreelanceTime string
	AHJ           string
	Symptoms      []string
}

// NewRecord validates obs and builds the stored form. Absent inputs become
// the unset/false defaults.
func NewRecord(obs Observation, recordID string, now time.Time) (Record, error) {
	date := token(obs.Date)
	if _, ok := clock.ParseDate(date); !ok {
		return Record{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, obs.Date)
	}
	factors, err := obs.factors()
	if err != nil {
		return Record{}, err
	}
	var symptoms Symptoms
	for _, raw := range obs.Symptoms {
		key, ok := matchKey(raw, SymptomKeys)
		if !ok {
			return Record{}, fmt.Errorf("%w: unknown symptom %q", apperrors.ErrInvalidInput, raw)
		}
		*symptoms.flag(key) = true
	}
	return Record{
		ID:        RecordID(recordID),
		Date:      date,
		Factors:   factors,
		Symptoms:  symptoms,
		Timestamp: now,
	}, nil
}

func (obs Observation) factors() (Factors, error) {
	var f Factors
	for _, raw := range obs.Meals {
		key, ok := matchKey(raw, MealKeys)
		if !ok {
			return Factors{}, fmt.Errorf("%w: unknown meal %q", apperrors.ErrInvalidInput, raw)
		}
		*f.Meals.flag(key) = true
	}
	if obs.SleepHours < 0 {
		return Factors{}, fmt.Errorf("%w: sleep hours must not be negative, got %d", apperrors.ErrInvalidInput, obs.SleepHours)
	}
	f.SleepHours = obs.SleepHours

	var err error
	if f.Stress, err = parseEnum("stress", obs.Stress, TriStateValues); err != nil {
		return Factors{}, err
	}
	if f.Exercise, err = parseEnum("exercise", obs.Exercise, ExerciseValues); err != nil {
		return Factors{}, err
	}
	if f.Bowel, err = parseEnum("bowel", obs.Bowel, TriStateValues); err != nil {
		return Factors{}, err
	}
	if f.Commute, err = parseEnum("commute", obs.Commute, CommuteValues); err != nil {
		return Factors{}, err
	}
	if f.WorkCount, err = parseEnum("workCount", obs.WorkCount, WorkCountValues); err != nil {
		return Factors{}, err
	}
	if f.RelaxTime, err = parseEnum("relaxTime", obs.RelaxTime, TriStateValues); err != nil {
		return Factors{}, err
	}
	if f.FreelanceTime, err = parseEnum("freelanceTime", obs.FreelanceTime, TriStateValues); err != nil {
		return Factors{}, err
	}
	if f.AHJ, err = parseEnum("ahj", obs.AHJ, AHJValues); err != nil {
		return Factors{}, err
	}
	return f, nil
}

// Validate reports whether every enumerated factor holds a known value. It
// is used on records decoded from storage.
func (r Record) Validate() error {
	if _, ok := clock.ParseDate(r.Date); !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, r.Date)
	}
	f := r.Factors
	if f.SleepHours < 0 {
		return fmt.Errorf("%w: negative sleep hours", apperrors.ErrInvalidInput)
	}
	checks := []struct {
		field string
		ok    bool
	}{
		{"stress", known(f.Stress, TriStateValues)},
		{"exercise", known(f.Exercise, ExerciseValues)},
		{"bowel", known(f.Bowel, TriStateValues)},
		{"commute", known(f.Commute, CommuteValues)},
		{"workCount", known(f.WorkCount, WorkCountValues)},
		{"relaxTime", known(f.RelaxTime, TriStateValues)},
		{"freelanceTime", known(f.FreelanceTime, TriStateValues)},
		{"ahj", known(f.AHJ, AHJValues)},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: unknown %s value", apperrors.ErrInvalidInput, c.field)
		}
	}
	return nil
}

func known[T ~string](value T, allowed []T) bool {
	if value == "" {
		return true
	}
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](field, raw string, allowed []T) (T, error) {
	value := token(raw)
	if value == "" {
		return "", nil
	}
	for _, candidate := range allowed {
		if strings.EqualFold(value, string(candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: unknown %s value %q", apperrors.ErrInvalidInput, field, raw)
}

func matchKey(raw string, keys []string) (string, bool) {
	value := token(raw)
	for _, key := range keys {
		if strings.EqualFold(value, key) {
			return key, true
		}
	}
	return "", false
}

// token folds full-width forms (e.g. "２０２５－０１－０２", "ｙｅｓ") to their
// ASCII equivalents and trims surrounding space.
func token(raw string) string {
	return strings.TrimSpace(norm.NFKC.String(raw))
}
