package dto

import "time"

type RecordInput struct {
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

type RecordOutput struct {
	ID            string
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
	Timestamp     time.Time
}

type UpsertOutput struct {
	Record   RecordOutput
	Replaced bool
}

// DeleteInput selects a record by Date, or by today's date when Today is set.
type DeleteInput struct {
	Date  string
	Today bool
}

type DeleteOutput struct {
	Date    string
	Removed bool
}

type ClearOutput struct {
	Removed int
}

type ReindexOutput struct {
	Indexed int
}

type SymptomCount struct {
	Symptom string
	Days    int
}

type StatsOutput struct {
	Records   int
	FirstDate string
	LastDate  string
	Symptoms  []SymptomCount
}
