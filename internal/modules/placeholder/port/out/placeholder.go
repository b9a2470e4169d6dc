package out

import (
	"context"

	"questbook/internal/modules/placeholder/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Expand(ctx context.Context, manifest domain.Manifest, input domain.ExpandRequest) (domain.ExpandResult, error)
}
