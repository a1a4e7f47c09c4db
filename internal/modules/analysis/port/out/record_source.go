package out

import (
	"context"

	"healthlog/internal/modules/analysis/domain"
)

// RecordSource supplies the stored days in analysis form.
type RecordSource interface {
	Entries(ctx context.Context) ([]domain.Entry, error)
	Entry(ctx context.Context, date string) (domain.Entry, error)
}
