package domain

import (
	"fmt"
	"strings"
)

// JournalMeta is the frontmatter of a markdown journal.
type JournalMeta struct {
	Title     string `yaml:"title"`
	Exported  string `yaml:"exported"`
	Records   int    `yaml:"records"`
	FirstDate string `yaml:"first_date,omitempty"`
	LastDate  string `yaml:"last_date,omitempty"`
}

const JournalTitle = "Health journal"

// NewJournalMeta expects entries in date-descending order.
func NewJournalMeta(exported string, entries []Entry) JournalMeta {
	meta := JournalMeta{Title: JournalTitle, Exported: exported, Records: len(entries)}
	if len(entries) > 0 {
		meta.LastDate = entries[0].Date
		meta.FirstDate = entries[len(entries)-1].Date
	}
	return meta
}

// JournalBody renders one section per entry. Unset factors are skipped.
func JournalBody(entries []Entry) string {
	var b strings.Builder
	b.WriteString("# " + JournalTitle + "\n")
	if len(entries) == 0 {
		b.WriteString("\nNo records.\n")
		return b.String()
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s\n\n", e.Date)
		line(&b, "Meals", strings.Join(e.Meals, ", "))
		if e.SleepHours > 0 {
			line(&b, "Sleep", fmt.Sprintf("%dh", e.SleepHours))
		}
		line(&b, "Stress", e.Stress)
		line(&b, "Exercise", e.Exercise)
		line(&b, "Bowel movement", e.Bowel)
		line(&b, "Commute", e.Commute)
		line(&b, "Work count", e.WorkCount)
		line(&b, "Relax time", e.RelaxTime)
		line(&b, "Freelance time", e.FreelanceTime)
		line(&b, "AHJ", e.AHJ)
		symptoms := strings.Join(e.Symptoms, ", ")
		if symptoms == "" {
			symptoms = "none"
		}
		line(&b, "Symptoms", symptoms)
	}
	return b.String()
}

func line(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}
