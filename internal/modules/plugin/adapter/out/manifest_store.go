package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"healthlog/internal/modules/plugin/domain"
	pluginout "healthlog/internal/modules/plugin/port/out"
)

const ManifestFile = "plugins.json"

// FileManifestStore reads exporter manifests from <base>/plugins/plugins.json.
// Relative binary paths resolve against base.
type FileManifestStore struct {
	basePath string
	path     string
}

var _ pluginout.ManifestStore = (*FileManifestStore)(nil)

func NewFileManifestStore(basePath string) *FileManifestStore {
	return &FileManifestStore{basePath: basePath, path: filepath.Join(basePath, "plugins", ManifestFile)}
}

func (s *FileManifestStore) Path() string {
	return s.path
}

func (s *FileManifestStore) Load(ctx context.Context) ([]domain.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests %s: %w", s.path, err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.basePath, manifests[i].Binary))
		}
	}
	sort.SliceStable(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}
