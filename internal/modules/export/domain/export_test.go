package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthlog/internal/modules/export/domain"
	apperrors "healthlog/internal/platform/errors"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Format{
		"":         domain.FormatJSON,
		"JSON":     domain.FormatJSON,
		"markdown": domain.FormatMarkdown,
		"md":       domain.FormatMarkdown,
		" plugin ": domain.FormatPlugin,
	}
	for raw, want := range cases {
		got, err := domain.ParseFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := domain.ParseFormat("xml")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, domain.Request{Format: domain.FormatJSON}.Validate())
	assert.NoError(t, domain.Request{Format: domain.FormatPlugin, Plugin: "csvexport"}.Validate())

	err := domain.Request{Format: domain.FormatPlugin}.Validate()
	assert.ErrorIs(t, err, domain.ErrPluginRequired)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	assert.ErrorIs(t, domain.Request{Format: "pdf"}.Validate(), apperrors.ErrInvalidInput)
}

func TestFileName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "health-records-2025-03-01.json", domain.FileName("2025-03-01", "json"))
	assert.Equal(t, "health-records-2025-03-01.csv", domain.FileName("2025-03-01", ".csv"))
}

func TestJournalMetaSpan(t *testing.T) {
	t.Parallel()
	meta := domain.NewJournalMeta("2025-03-05", []domain.Entry{{Date: "2025-03-04"}, {Date: "2025-03-02"}, {Date: "2025-03-01"}})
	assert.Equal(t, 3, meta.Records)
	assert.Equal(t, "2025-03-01", meta.FirstDate)
	assert.Equal(t, "2025-03-04", meta.LastDate)

	empty := domain.NewJournalMeta("2025-03-05", nil)
	assert.Zero(t, empty.Records)
	assert.Empty(t, empty.FirstDate)
}

func TestJournalBodySkipsUnsetFactors(t *testing.T) {
	t.Parallel()
	body := domain.JournalBody([]domain.Entry{{Date: "2025-03-01", Stress: "no"}})
	assert.Equal(t, "# Health journal\n\n## 2025-03-01\n\n- Stress: no\n- Symptoms: none\n", body)
	assert.Equal(t, "# Health journal\n\nNo records.\n", domain.JournalBody(nil))
}
