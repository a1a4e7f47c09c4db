package domain

import (
	"fmt"
	"math"
	"sort"

	apperrors "healthlog/internal/platform/errors"
)

type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

const (
	MinEntries        = 2
	ReportThreshold   = 50.0
	ModerateThreshold = 65.0
	StrongThreshold   = 80.0
)

// Correlation is the share of a symptom's days on which a factor was active.
type Correlation struct {
	Symptom    SymptomKey
	Factor     FactorKey
	WithFactor int
	Total      int
	Percentage float64
	Strength   Strength
}

// Rounded is Percentage at one decimal, halves away from zero.
func (c Correlation) Rounded() float64 {
	return Round1(c.Percentage)
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ClassifyStrength applies the thresholds to an unrounded percentage.
func ClassifyStrength(percentage float64) Strength {
	switch {
	case percentage >= StrongThreshold:
		return StrengthStrong
	case percentage >= ModerateThreshold:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Analyze counts, for every symptom, how many of its days had each factor
// active, and returns the pairs at or above ReportThreshold ordered by
// percentage descending. Ties keep symptom order, then factor order.
// Fewer than MinEntries entries is ErrInsufficientData.
func Analyze(entries []Entry) ([]Correlation, error) {
	if len(entries) < MinEntries {
		return nil, fmt.Errorf("%w: need at least %d records, have %d", apperrors.ErrInsufficientData, MinEntries, len(entries))
	}

	totals := make(map[SymptomKey]int, len(Symptoms))
	withFactor := make(map[SymptomKey]map[FactorKey]int, len(Symptoms))
	for _, symptom := range Symptoms {
		withFactor[symptom] = make(map[FactorKey]int, len(Rules))
	}
	for _, entry := range entries {
		active := ActiveFactors(entry.Factors)
		for _, symptom := range Symptoms {
			if !entry.Symptoms[symptom] {
				continue
			}
			totals[symptom]++
			for _, factor := range active {
				withFactor[symptom][factor]++
			}
		}
	}

	var results []Correlation
	for _, symptom := range Symptoms {
		total := totals[symptom]
		if total == 0 {
			continue
		}
		for _, rule := range Rules {
			count := withFactor[symptom][rule.Key]
			percentage := 100 * float64(count) / float64(total)
			if percentage < ReportThreshold {
				continue
			}
			results = append(results, Correlation{
				Symptom:    symptom,
				Factor:     rule.Key,
				WithFactor: count,
				Total:      total,
				Percentage: percentage,
				Strength:   ClassifyStrength(percentage),
			})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Percentage > results[j].Percentage
	})
	return results, nil
}
