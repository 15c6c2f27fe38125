package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/claimsight/claimsight/internal/core/domain"
	"github.com/claimsight/claimsight/internal/core/ports"
)

// StageObserver receives the outcome of each pipeline stage. Wired to worker
// metrics by the binary; nil means no observation.
type StageObserver func(stage string, err error)

// ProcessClaimUseCase runs the full pipeline for one stored claim: OCR,
// structuring, policy evaluation. Each stage's output is persisted both in
// the claim row and as a result file.
type ProcessClaimUseCase struct {
	repo       ports.ClaimRepository
	storage    ports.ObjectStorage
	extraction ports.TextExtractionStage
	structure  ports.StructuringStage
	evaluation ports.EvaluationStage
	writer     ports.ResultWriter
	observer   StageObserver
}

func NewProcessClaimUseCase(
	repo ports.ClaimRepository,
	storage ports.ObjectStorage,
	extraction ports.TextExtractionStage,
	structure ports.StructuringStage,
	evaluation ports.EvaluationStage,
	writer ports.ResultWriter,
) *ProcessClaimUseCase {
	return &ProcessClaimUseCase{
		repo:       repo,
		storage:    storage,
		extraction: extraction,
		structure:  structure,
		evaluation: evaluation,
		writer:     writer,
	}
}

func (uc *ProcessClaimUseCase) SetStageObserver(observer StageObserver) {
	uc.observer = observer
}

func (uc *ProcessClaimUseCase) ProcessByID(ctx context.Context, claimID string) error {
	if err := uc.markStatus(ctx, claimID, domain.ClaimProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.processPipeline(ctx, claimID); err != nil {
		if failErr := uc.markFailed(ctx, claimID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, claimID, domain.ClaimReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessClaimUseCase) processPipeline(ctx context.Context, claimID string) error {
	claim, err := uc.loadClaim(ctx, claimID)
	if err != nil {
		return err
	}

	data, err := uc.readDocument(ctx, claim)
	if err != nil {
		return err
	}

	ocr, err := uc.runExtraction(ctx, claim, data)
	if err != nil {
		return err
	}

	structured, err := uc.runStructuring(ctx, claim, ocr)
	if err != nil {
		return err
	}

	if err := uc.runEvaluation(ctx, claim, structured); err != nil {
		return err
	}

	if _, err := uc.writer.WriteStructuredResult(claim.Filename, structured); err != nil {
		return fmt.Errorf("write structured result: %w", err)
	}
	return nil
}

func (uc *ProcessClaimUseCase) loadClaim(ctx context.Context, claimID string) (*domain.Claim, error) {
	claim, err := uc.repo.GetByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("fetch claim by id: %w", err)
	}
	return claim, nil
}

func (uc *ProcessClaimUseCase) readDocument(ctx context.Context, claim *domain.Claim) ([]byte, error) {
	reader, err := uc.storage.Open(ctx, claim.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open stored document: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read stored document: %w", err)
	}
	return data, nil
}

func (uc *ProcessClaimUseCase) runExtraction(ctx context.Context, claim *domain.Claim, data []byte) (*domain.OCRResult, error) {
	ocr := uc.extraction.FromBytes(ctx, claim.Filename, claim.MimeType, data)
	uc.observe("ocr", stageErr(ocr.Status, ocr.Error))

	if err := uc.repo.SaveOCRResult(ctx, claim.ID, ocr); err != nil {
		return nil, fmt.Errorf("save ocr result: %w", err)
	}
	if _, err := uc.writer.WriteOCRResult(ocr); err != nil {
		return nil, fmt.Errorf("write ocr result: %w", err)
	}
	if ocr.Status != domain.ResultSuccess {
		return nil, fmt.Errorf("text extraction failed: %s", ocr.Error)
	}
	return ocr, nil
}

func (uc *ProcessClaimUseCase) runStructuring(ctx context.Context, claim *domain.Claim, ocr *domain.OCRResult) (*domain.StructuredResult, error) {
	structured := uc.structure.FromOCR(ctx, ocr)
	uc.observe("structure", stageErr(structured.Status, structured.Error))

	if structured.Status != domain.ResultSuccess {
		if _, err := uc.writer.WriteStructuredResult(claim.Filename, structured); err != nil {
			return nil, fmt.Errorf("write structured result: %w", err)
		}
		return nil, fmt.Errorf("structuring failed: %s", structured.Error)
	}

	if err := uc.repo.SaveRecord(ctx, claim.ID, structured.Record); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}
	return structured, nil
}

func (uc *ProcessClaimUseCase) runEvaluation(ctx context.Context, claim *domain.Claim, structured *domain.StructuredResult) error {
	eval, err := uc.evaluation.Evaluate(ctx, structured.Record)
	uc.observe("evaluate", err)
	if err != nil {
		return fmt.Errorf("policy evaluation: %w", err)
	}

	structured.Evaluation = eval
	if err := uc.repo.SaveEvaluation(ctx, claim.ID, eval); err != nil {
		return fmt.Errorf("save policy evaluation: %w", err)
	}
	return nil
}

func (uc *ProcessClaimUseCase) markStatus(ctx context.Context, claimID string, status domain.ClaimStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, claimID, status, errMessage)
}

func (uc *ProcessClaimUseCase) markFailed(ctx context.Context, claimID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, claimID, domain.ClaimFailed, processErr.Error())
}

func (uc *ProcessClaimUseCase) observe(stage string, err error) {
	if uc.observer != nil {
		uc.observer(stage, err)
	}
}

func stageErr(status domain.ResultStatus, message string) error {
	if status == domain.ResultSuccess {
		return nil
	}
	return errors.New(message)
}
