package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claimsight/claimsight/internal/core/domain"
	"github.com/claimsight/claimsight/internal/core/ports"
)

type IngestClaimUseCase struct {
	repo    ports.ClaimRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestClaimUseCase(
	repo ports.ClaimRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestClaimUseCase {
	return &IngestClaimUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *IngestClaimUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Claim, error) {
	id := uuid.NewString()
	storageKey := id + "/" + sanitizeFilename(filename)
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	claim := &domain.Claim{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.ClaimReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("create claim metadata: %w", err)
	}

	if err := uc.queue.PublishClaimReceived(ctx, claim.ID); err != nil {
		return nil, fmt.Errorf("publish claim received event: %w", err)
	}

	return claim, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
