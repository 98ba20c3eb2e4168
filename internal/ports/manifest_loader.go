package ports

import (
	"context"

	"github.com/bnema/workshop-sync/internal/domain"
)

type ManifestLoader interface {
	Load(ctx context.Context, path string) ([]domain.Item, error)
}
