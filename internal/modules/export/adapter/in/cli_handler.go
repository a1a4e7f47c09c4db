package in

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"healthlog/internal/modules/export/dto"
	exportin "healthlog/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, input)
}

// ExportToDir writes the artifact under dir using its file name and returns
// the written path.
func (h CLIHandler) ExportToDir(ctx context.Context, input dto.ExportInput, dir string) (string, dto.ExportOutput, error) {
	out, err := h.usecase.Export(ctx, input)
	if err != nil {
		return "", dto.ExportOutput{}, err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", dto.ExportOutput{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, out.FileName)
	if err := os.WriteFile(path, out.Payload, 0o644); err != nil {
		return "", dto.ExportOutput{}, fmt.Errorf("write export: %w", err)
	}
	return path, out, nil
}
