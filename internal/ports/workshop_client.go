package ports

import (
	"context"

	"github.com/bnema/workshop-sync/internal/domain"
)

type WorkshopClient interface {
	Login(ctx context.Context) error
	Download(ctx context.Context, item domain.Item) error
}
