package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/claimsight/claimsight/internal/core/domain"
)

type ingestRepoFake struct {
	created *domain.Claim
	err     error
}

func (f *ingestRepoFake) Create(_ context.Context, claim *domain.Claim) error {
	if f.err != nil {
		return f.err
	}
	copyClaim := *claim
	f.created = &copyClaim
	return nil
}

func (f *ingestRepoFake) GetByID(context.Context, string) (*domain.Claim, error) {
	return nil, errors.New("not implemented")
}
func (f *ingestRepoFake) UpdateStatus(context.Context, string, domain.ClaimStatus, string) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) SaveOCRResult(context.Context, string, *domain.OCRResult) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) SaveRecord(context.Context, string, *domain.ClaimRecord) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) SaveEvaluation(context.Context, string, *domain.PolicyEvaluation) error {
	return errors.New("not implemented")
}

type ingestStorageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *ingestStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *ingestStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type ingestQueueFake struct {
	claimID string
	err     error
}

func (f *ingestQueueFake) PublishClaimReceived(_ context.Context, claimID string) error {
	if f.err != nil {
		return f.err
	}
	f.claimID = claimID
	return nil
}

func (f *ingestQueueFake) SubscribeClaimReceived(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestClaimUseCase(repo, storage, queue)

	claim, err := uc.Upload(context.Background(), "front page.png", "image/png", bytes.NewBufferString("imgdata"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if claim.ID == "" {
		t.Fatalf("expected claim id")
	}
	if claim.Status != domain.ClaimReceived {
		t.Fatalf("expected status received, got %s", claim.Status)
	}
	if repo.created == nil {
		t.Fatalf("expected repo.Create call")
	}
	if queue.claimID != claim.ID {
		t.Fatalf("expected queued claim id %s, got %s", claim.ID, queue.claimID)
	}
	if !strings.HasSuffix(storage.savedKey, "/front_page.png") {
		t.Fatalf("expected sanitized key suffix, got %s", storage.savedKey)
	}
	if !strings.HasPrefix(storage.savedKey, claim.ID+"/") {
		t.Fatalf("expected key under claim dir, got %s", storage.savedKey)
	}
	if storage.savedBody != "imgdata" {
		t.Fatalf("expected saved body imgdata, got %s", storage.savedBody)
	}
}

func TestIngestUploadQueueError(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{}
	queue := &ingestQueueFake{err: errors.New("queue down")}
	uc := NewIngestClaimUseCase(repo, storage, queue)

	_, err := uc.Upload(context.Background(), "front.png", "image/png", bytes.NewBufferString("x"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish claim received event") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestIngestUploadStorageError(t *testing.T) {
	uc := NewIngestClaimUseCase(&ingestRepoFake{}, &ingestStorageFake{err: errors.New("disk full")}, &ingestQueueFake{})

	_, err := uc.Upload(context.Background(), "front.png", "image/png", bytes.NewBufferString("x"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "save to object storage") {
		t.Fatalf("expected storage error, got %v", err)
	}
}
