package dto

type CorrelationOutput struct {
	Symptom       string  `json:"symptom"`
	SymptomLabel  string  `json:"symptomLabel"`
	Factor        string  `json:"factor"`
	FactorLabel   string  `json:"factorLabel"`
	Percentage    float64 `json:"percentage"`
	RawPercentage float64 `json:"rawPercentage"`
	Strength      string  `json:"strength"`
	WithFactor    int     `json:"withFactor"`
	Total         int     `json:"total"`
}

// AnalysisOutput is Sufficient=false, with no correlations, when there are
// fewer than MinRecords records.
type AnalysisOutput struct {
	Sufficient   bool                `json:"sufficient"`
	RecordCount  int                 `json:"recordCount"`
	MinRecords   int                 `json:"minRecords"`
	Correlations []CorrelationOutput `json:"correlations"`
}

type FactorOutput struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type ActiveFactorsOutput struct {
	Date    string         `json:"date"`
	Factors []FactorOutput `json:"factors"`
}
