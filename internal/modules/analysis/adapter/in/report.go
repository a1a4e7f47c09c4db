package in

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"healthlog/internal/modules/analysis/dto"
)

const strengthLegend = "Strength: strong >= 80%, moderate 65-79%, weak 50-64%"

// RenderText writes the analysis as a ranked, human-readable report.
func RenderText(w io.Writer, out dto.AnalysisOutput) error {
	var b strings.Builder
	if !out.Sufficient {
		fmt.Fprintf(&b, "Not enough data: analysis needs at least %d records, found %d.\n", out.MinRecords, out.RecordCount)
		_, err := io.WriteString(w, b.String())
		return err
	}
	fmt.Fprintf(&b, "Factor/symptom correlations across %d records\n\n", out.RecordCount)
	if len(out.Correlations) == 0 {
		b.WriteString("No clear correlations: no factor was present on at least half of any symptom's days.\n")
	} else {
		symptomWidth, factorWidth := 0, 0
		for _, c := range out.Correlations {
			symptomWidth = max(symptomWidth, len(c.SymptomLabel))
			factorWidth = max(factorWidth, len(c.FactorLabel))
		}
		for idx, c := range out.Correlations {
			fmt.Fprintf(&b, "%3d. %-*s  %-*s  %5.1f%%  %-8s  (%d of %d days)\n",
				idx+1, symptomWidth, c.SymptomLabel, factorWidth, c.FactorLabel, c.Percentage, c.Strength, c.WithFactor, c.Total)
		}
	}
	b.WriteString("\n" + strengthLegend + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes the analysis output as indented JSON.
func RenderJSON(w io.Writer, out dto.AnalysisOutput) error {
	if out.Correlations == nil {
		out.Correlations = []dto.CorrelationOutput{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
