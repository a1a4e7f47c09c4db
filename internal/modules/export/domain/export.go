package domain

import (
	"errors"
	"fmt"
	"strings"

	apperrors "healthlog/internal/platform/errors"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatPlugin   Format = "plugin"
)

var ErrPluginRequired = errors.New("plugin name is required for plugin export")

// ParseFormat accepts the format names case-insensitively. "md" is an alias
// for markdown.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatPlugin):
		return FormatPlugin, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidInput, raw)
	}
}

// Request selects what to produce. Plugin is only read for FormatPlugin.
type Request struct {
	Format  Format
	Plugin  string
	Options map[string]string
}

func (r Request) Validate() error {
	switch r.Format {
	case FormatJSON, FormatMarkdown:
		return nil
	case FormatPlugin:
		if strings.TrimSpace(r.Plugin) == "" {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, ErrPluginRequired)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidInput, r.Format)
	}
}

// FileName is health-records-<date>.<ext>, date being the export day.
func FileName(date string, ext string) string {
	return fmt.Sprintf("health-records-%s.%s", date, strings.TrimPrefix(ext, "."))
}

// Artifact is a finished export ready to be written.
type Artifact struct {
	FileName    string
	ContentType string
	Payload     []byte
	Records     int
}

// PluginArtifact is what an exporter plugin handed back.
type PluginArtifact struct {
	FileExtension string
	ContentType   string
	Payload       []byte
}

// Entry is the export view of one record. Unset values are empty strings
// or zero.
type Entry struct {
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
