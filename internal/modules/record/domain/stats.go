package domain

// IndexStats summarizes the record index.
type IndexStats struct {
	Records     int
	FirstDate   string
	LastDate    string
	SymptomDays map[string]int
}
