package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Capability string

const (
	CapabilityExport Capability = "export"
)

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrPluginTimeout     = errors.New("plugin timeout")
	ErrInvalidArtifact   = errors.New("plugin returned an invalid artifact")
)

var (
	sha256Pattern    = regexp.MustCompile(`^[a-f0-9]{64}$`)
	extensionPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)
)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityExport:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// ExportRequest hands the stored record document to a plugin.
type ExportRequest struct {
	DocumentJSON []byte
	Options      map[string]string
}

func (r ExportRequest) Validate() error {
	if len(r.DocumentJSON) == 0 {
		return fmt.Errorf("export document is required")
	}
	if !json.Valid(r.DocumentJSON) {
		return fmt.Errorf("export document must be valid JSON")
	}
	return nil
}

// Artifact is what a plugin produced: the bytes to write and the file
// extension (without dot) to write them under.
type Artifact struct {
	FileExtension string
	ContentType   string
	Payload       []byte
}

func (a Artifact) Validate() error {
	ext := strings.TrimPrefix(a.FileExtension, ".")
	if !extensionPattern.MatchString(ext) {
		return fmt.Errorf("%w: file extension %q", ErrInvalidArtifact, a.FileExtension)
	}
	if len(a.Payload) == 0 {
		return fmt.Errorf("%w: empty payload", ErrInvalidArtifact)
	}
	return nil
}
