package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/claimsight/claimsight/internal/core/domain"
)

type ClaimRepository struct {
	db *sql.DB
}

func NewClaimRepository(db *sql.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ClaimRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS claims (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	document_type TEXT,
	confidence TEXT,
	ocr_result JSONB,
	record JSONB,
	policy_evaluation JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(status);
CREATE INDEX IF NOT EXISTS idx_claims_created_at ON claims(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO claims (
	id, filename, mime_type, storage_path, status, error_message, document_type, confidence, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		claim.ID, claim.Filename, claim.MimeType, claim.StoragePath, string(claim.Status),
		claim.Error, string(claim.DocumentType), claim.Confidence, claim.CreatedAt, claim.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, status, error_message, document_type, confidence, ocr_result, record, policy_evaluation, created_at, updated_at
FROM claims
WHERE id = $1
`, id)

	var claim domain.Claim
	var status, docType string
	var errMessage sql.NullString
	var ocrRaw, recordRaw, evalRaw []byte

	err := row.Scan(
		&claim.ID, &claim.Filename, &claim.MimeType, &claim.StoragePath, &status, &errMessage,
		&docType, &claim.Confidence, &ocrRaw, &recordRaw, &evalRaw, &claim.CreatedAt, &claim.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrClaimNotFound, "get claim", err)
		}
		return nil, fmt.Errorf("scan claim: %w", err)
	}

	claim.Status = domain.ClaimStatus(status)
	claim.DocumentType = domain.DocumentType(docType)
	claim.Error = errMessage.String

	if len(ocrRaw) > 0 {
		if err := json.Unmarshal(ocrRaw, &claim.OCR); err != nil {
			return nil, fmt.Errorf("unmarshal ocr result: %w", err)
		}
	}
	if len(recordRaw) > 0 {
		if err := json.Unmarshal(recordRaw, &claim.Record); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
	}
	if len(evalRaw) > 0 {
		if err := json.Unmarshal(evalRaw, &claim.Evaluation); err != nil {
			return nil, fmt.Errorf("unmarshal policy evaluation: %w", err)
		}
	}
	return &claim, nil
}

func (r *ClaimRepository) UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE claims
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update claim status: %w", err)
	}
	return requireRowAffected(res, "update claim status", id)
}

func (r *ClaimRepository) SaveOCRResult(ctx context.Context, id string, ocr *domain.OCRResult) error {
	raw, err := json.Marshal(ocr)
	if err != nil {
		return fmt.Errorf("marshal ocr result: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE claims
SET ocr_result = $2, updated_at = $3
WHERE id = $1
`, id, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save ocr result: %w", err)
	}
	return requireRowAffected(res, "save ocr result", id)
}

func (r *ClaimRepository) SaveRecord(ctx context.Context, id string, record *domain.ClaimRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE claims
SET record = $2, document_type = $3, confidence = $4, updated_at = $5
WHERE id = $1
`, id, raw, string(record.DocumentType), record.Confidence, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return requireRowAffected(res, "save record", id)
}

func (r *ClaimRepository) SaveEvaluation(ctx context.Context, id string, eval *domain.PolicyEvaluation) error {
	raw, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("marshal policy evaluation: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE claims
SET policy_evaluation = $2, updated_at = $3
WHERE id = $1
`, id, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save policy evaluation: %w", err)
	}
	return requireRowAffected(res, "save policy evaluation", id)
}

// ListRecent returns the newest claims first, decoded the same way as
// GetByID. Used by reporting tools, not by the serving path.
func (r *ClaimRepository) ListRecent(ctx context.Context, limit int) ([]domain.Claim, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, filename, mime_type, storage_path, status, error_message, document_type, confidence, ocr_result, record, policy_evaluation, created_at, updated_at
FROM claims
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var claim domain.Claim
		var status, docType string
		var errMessage sql.NullString
		var ocrRaw, recordRaw, evalRaw []byte

		if err := rows.Scan(
			&claim.ID, &claim.Filename, &claim.MimeType, &claim.StoragePath, &status, &errMessage,
			&docType, &claim.Confidence, &ocrRaw, &recordRaw, &evalRaw, &claim.CreatedAt, &claim.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claim.Status = domain.ClaimStatus(status)
		claim.DocumentType = domain.DocumentType(docType)
		claim.Error = errMessage.String

		if len(ocrRaw) > 0 {
			if err := json.Unmarshal(ocrRaw, &claim.OCR); err != nil {
				return nil, fmt.Errorf("unmarshal ocr result: %w", err)
			}
		}
		if len(recordRaw) > 0 {
			if err := json.Unmarshal(recordRaw, &claim.Record); err != nil {
				return nil, fmt.Errorf("unmarshal record: %w", err)
			}
		}
		if len(evalRaw) > 0 {
			if err := json.Unmarshal(evalRaw, &claim.Evaluation); err != nil {
				return nil, fmt.Errorf("unmarshal policy evaluation: %w", err)
			}
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return claims, nil
}

func requireRowAffected(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrClaimNotFound, operation, fmt.Errorf("claim %s", id))
	}
	return nil
}
