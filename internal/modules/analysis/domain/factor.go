package domain

type FactorKey string

const (
	FactorBreakfast     FactorKey = "breakfast"
	FactorLunch         FactorKey = "lunch"
	FactorDinner        FactorKey = "dinner"
	FactorSnack         FactorKey = "snack"
	FactorSleepHours    FactorKey = "sleepHours"
	FactorStress        FactorKey = "stress"
	FactorExercise      FactorKey = "exercise"
	FactorBowel         FactorKey = "bowel"
	FactorCommute       FactorKey = "commute"
	FactorWorkCount     FactorKey = "workCount"
	FactorRelaxTime     FactorKey = "relaxTime"
	FactorFreelanceTime FactorKey = "freelanceTime"
	FactorAHJ           FactorKey = "ahj"
)

// Factors is the analysis view of one day's lifestyle inputs. Enumerated
// values keep their stored string form; "" means unset.
type Factors struct {
	Breakfast     bool
	Lunch         bool
	Dinner        bool
	Snack         bool
	SleepHours    int
	Stress        string
	Exercise      string
	Bowel         string
	Commute       string
	WorkCount     string
	RelaxTime     string
	FreelanceTime string
	AHJ           string
}

// Rule decides whether one factor is present for a day.
type Rule struct {
	Key         FactorKey
	Description string
	Active      func(Factors) bool
}

// Rules is ordered; result enumeration follows this order.
var Rules = []Rule{
	{FactorBreakfast, "Ate breakfast", func(f Factors) bool { return f.Breakfast }},
	{FactorLunch, "Ate lunch", func(f Factors) bool { return f.Lunch }},
	{FactorDinner, "Ate dinner", func(f Factors) bool { return f.Dinner }},
	{FactorSnack, "Had a snack", func(f Factors) bool { return f.Snack }},
	{FactorSleepHours, "Short sleep (6 hours or less)", func(f Factors) bool { return f.SleepHours > 0 && f.SleepHours <= 6 }},
	{FactorStress, "Felt stressed", func(f Factors) bool { return f.Stress == "yes" }},
	{FactorExercise, "Exercised", func(f Factors) bool { return f.Exercise != "" }},
	{FactorBowel, "Had a bowel movement", func(f Factors) bool { return f.Bowel == "yes" }},
	{FactorCommute, "Commuted", func(f Factors) bool { return f.Commute != "" }},
	{FactorWorkCount, "Heavy workload (4+ tasks) or holiday", func(f Factors) bool { return oneOf(f.WorkCount, "4-5", "5+", "holiday") }},
	{FactorRelaxTime, "Took time to relax", func(f Factors) bool { return f.RelaxTime == "yes" }},
	{FactorFreelanceTime, "Did freelance work", func(f Factors) bool { return f.FreelanceTime == "yes" }},
	{FactorAHJ, "Peace, forgiveness or love", func(f Factors) bool { return oneOf(f.AHJ, "peace", "forgive", "love") }},
}

// ActiveFactors returns the keys of the factors present in f, in Rules order.
func ActiveFactors(f Factors) []FactorKey {
	out := make([]FactorKey, 0, len(Rules))
	for _, rule := range Rules {
		if rule.Active(f) {
			out = append(out, rule.Key)
		}
	}
	return out
}

// DescribeFactor returns the human-readable label for key, or the key itself
// when unknown.
func DescribeFactor(key FactorKey) string {
	for _, rule := range Rules {
		if rule.Key == key {
			return rule.Description
		}
	}
	return string(key)
}

func oneOf(value string, options ...string) bool {
	for _, option := range options {
		if value == option {
			return true
		}
	}
	return false
}
