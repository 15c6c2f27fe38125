package ports

import (
	"context"
	"io"

	"github.com/claimsight/claimsight/internal/core/domain"
)

// ClaimIngestor is the inbound contract for claim upload orchestration.
type ClaimIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Claim, error)
}

// ClaimReader is the inbound read model for claim state.
type ClaimReader interface {
	GetByID(ctx context.Context, id string) (*domain.Claim, error)
}
