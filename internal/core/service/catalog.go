package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/port"
)

var _ port.ProductsSaver = (*CatalogService)(nil)

// A CatalogService accepts catalog records from the platform stream
// and keeps the local read model current.
type CatalogService struct {
	storage port.ProductsStorage
}

func NewCatalogService(storage port.ProductsStorage) CatalogService {
	return CatalogService{storage}
}

func (s CatalogService) SaveProducts(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "CatalogService.SaveProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	vs := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		p = p.Normalize()
		if !p.Valid() {
			continue
		}
		vs = append(vs, p)
	}
	if len(vs) == 0 {
		return nil
	}

	err := s.storage.StoreProducts(ctx, vs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
