package domain

type SymptomKey string

const (
	SymptomHeadache        SymptomKey = "headache"
	SymptomFatigue         SymptomKey = "fatigue"
	SymptomSoreThroat      SymptomKey = "soreThroat"
	SymptomNasalCongestion SymptomKey = "nasalCongestion"
	SymptomPhlegm          SymptomKey = "phlegm"
	SymptomStomachPain     SymptomKey = "stomachPain"
	SymptomEyeFatigue      SymptomKey = "eyeFatigue"
	SymptomOther           SymptomKey = "other"
)

// Symptoms is the fixed enumeration order of symptom keys.
var Symptoms = []SymptomKey{
	SymptomHeadache,
	SymptomFatigue,
	SymptomSoreThroat,
	SymptomNasalCongestion,
	SymptomPhlegm,
	SymptomStomachPain,
	SymptomEyeFatigue,
	SymptomOther,
}

var symptomLabels = map[SymptomKey]string{
	SymptomHeadache:        "Headache",
	SymptomFatigue:         "Fatigue",
	SymptomSoreThroat:      "Sore throat",
	SymptomNasalCongestion: "Nasal congestion",
	SymptomPhlegm:          "Phlegm",
	SymptomStomachPain:     "Stomach pain",
	SymptomEyeFatigue:      "Eye fatigue",
	SymptomOther:           "Other",
}

func DescribeSymptom(key SymptomKey) string {
	if label, ok := symptomLabels[key]; ok {
		return label
	}
	return string(key)
}

// Entry is one day as the correlation engine sees it.
type Entry struct {
	Date     string
	Factors  Factors
	Symptoms map[SymptomKey]bool
}
