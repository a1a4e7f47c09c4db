package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TriState is a yes/no answer that may be left unset.
type TriState string

const (
	Unset TriState = ""
	Yes   TriState = "yes"
	No    TriState = "no"
)

type Exercise string

const (
	ExerciseNothing Exercise = "nothing"
	ExerciseLight   Exercise = "light"
	ExerciseUsually Exercise = "usually"
	ExerciseHard    Exercise = "hard"
)

type Commute string

const (
	CommuteTrainWalk Commute = "train-walk"
	CommuteTrainBus  Commute = "train-bus"
	CommuteCar       Commute = "car"
	CommuteHoliday   Commute = "holiday"
)

type WorkCount string

const (
	WorkCount0To1    WorkCount = "0-1"
	WorkCount2To3    WorkCount = "2-3"
	WorkCount4To5    WorkCount = "4-5"
	WorkCount5Plus   WorkCount = "5+"
	WorkCountHoliday WorkCount = "holiday"
)

// AHJ is the day's dominant emotional state.
type AHJ string

const (
	AHJPeace    AHJ = "peace"
	AHJConflict AHJ = "conflict"
	AHJFear     AHJ = "fear"
	AHJForgive  AHJ = "forgive"
	AHJLove     AHJ = "love"
)

var (
	TriStateValues  = []TriState{Yes, No}
	ExerciseValues  = []Exercise{ExerciseNothing, ExerciseLight, ExerciseUsually, ExerciseHard}
	CommuteValues   = []Commute{CommuteTrainWalk, CommuteTrainBus, CommuteCar, CommuteHoliday}
	WorkCountValues = []WorkCount{WorkCount0To1, WorkCount2To3, WorkCount4To5, WorkCount5Plus, WorkCountHoliday}
	AHJValues       = []AHJ{AHJPeace, AHJConflict, AHJFear, AHJForgive, AHJLove}
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealKeys lists the meal flags in storage order.
var MealKeys = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

const (
	SymptomHeadache        = "headache"
	SymptomFatigue         = "fatigue"
	SymptomSoreThroat      = "soreThroat"
	SymptomNasalCongestion = "nasalCongestion"
	SymptomPhlegm          = "phlegm"
	SymptomStomachPain     = "stomachPain"
	SymptomEyeFatigue      = "eyeFatigue"
	SymptomOther           = "other"
)

// SymptomKeys lists the symptom flags in storage order.
var SymptomKeys = []string{
	SymptomHeadache,
	SymptomFatigue,
	SymptomSoreThroat,
	SymptomNasalCongestion,
	SymptomPhlegm,
	SymptomStomachPain,
	SymptomEyeFatigue,
	SymptomOther,
}

type Meals struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
	Snack     bool `json:"snack"`
}

func (m *Meals) flag(key string) *bool {
	switch key {
	case MealBreakfast:
		return &m.Breakfast
	case MealLunch:
		return &m.Lunch
	case MealDinner:
		return &m.Dinner
	case MealSnack:
		return &m.Snack
	default:
		return nil
	}
}

// Selected returns the keys of the meals taken, in MealKeys order.
func (m Meals) Selected() []string {
	out := make([]string, 0, len(MealKeys))
	for _, key := range MealKeys {
		if *m.flag(key) {
			out = append(out, key)
		}
	}
	return out
}

type Factors struct {
	Meals         Meals     `json:"meals"`
	SleepHours    int       `json:"sleepHours"`
	Stress        TriState  `json:"stress"`
	Exercise      Exercise  `json:"exercise"`
	Bowel         TriState  `json:"bowel"`
	Commute       Commute   `json:"commute"`
	WorkCount     WorkCount `json:"workCount"`
	RelaxTime     TriState  `json:"relaxTime"`
	FreelanceTime TriState  `json:"freelanceTime"`
	AHJ           AHJ       `json:"ahj"`
}

type Symptoms struct {
	Headache        bool `json:"headache"`
	Fatigue         bool `json:"fatigue"`
	SoreThroat      bool `json:"soreThroat"`
	NasalCongestion bool `json:"nasalCongestion"`
	Phlegm          bool `json:"phlegm"`
	StomachPain     bool `json:"stomachPain"`
	EyeFatigue      bool `json:"eyeFatigue"`
	Other           bool `json:"other"`
}

func (s *Symptoms) flag(key string) *bool {
	switch key {
	case SymptomHeadache:
		return &s.Headache
	case SymptomFatigue:
		return &s.Fatigue
	case SymptomSoreThroat:
		return &s.SoreThroat
	case SymptomNasalCongestion:
		return &s.NasalCongestion
	case SymptomPhlegm:
		return &s.Phlegm
	case SymptomStomachPain:
		return &s.StomachPain
	case SymptomEyeFatigue:
		return &s.EyeFatigue
	case SymptomOther:
		return &s.Other
	default:
		return nil
	}
}

// Present returns the keys of the symptoms that occurred, in SymptomKeys order.
func (s Symptoms) Present() []string {
	out := make([]string, 0, len(SymptomKeys))
	for _, key := range SymptomKeys {
		if *s.flag(key) {
			out = append(out, key)
		}
	}
	return out
}

// Record is one day's observation. Date is the natural key.
type Record struct {
	ID        RecordID  `json:"id"`
	Date      string    `json:"date"`
	Factors   Factors   `json:"factors"`
	Symptoms  Symptoms  `json:"symptoms"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordID is opaque. Documents written by the browser tracker used numeric
// millisecond ids, so decoding accepts a JSON number as well as a string.
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("record id: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}
