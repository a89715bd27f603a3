// Package repository persists parse results keyed by an import job, and
// resolves project codes to internal project ids where one exists.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// ImportJob tracks one report import run.
type ImportJob struct {
	ID          uuid.UUID
	SourceFile  string
	RecordCount int
	DiagCount   int
	CreatedAt   time.Time
}

// StoredRecord is the persisted shape of an invoice record.
type StoredRecord struct {
	JobID         uuid.UUID
	ProjectID     *uuid.UUID // resolved from project_code, nil when unknown
	ProjectCode   string
	ProjectName   string
	InvoiceNumber string
	InvoiceDate   string
	InvoiceAmount string
	PaymentDate   string
	PaymentAmount string
	Phase         string
	Discipline    string
	Notes         string
	Status        string
}

// StoredDiagnostic is the persisted shape of a diagnostic.
type StoredDiagnostic struct {
	JobID  uuid.UUID
	Line   int
	Text   string
	Reason string
}

// Repository handles database operations for report imports.
type Repository struct {
	db DB
}

// NewRepository creates a repository over a pgx pool.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// CreateJob inserts a new import job row.
func (r *Repository) CreateJob(ctx context.Context, job ImportJob) error {
	query := `
		INSERT INTO import_jobs (id, source_file, record_count, diagnostic_count)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, job.ID, job.SourceFile, job.RecordCount, job.DiagCount); err != nil {
		return fmt.Errorf("failed to create import job: %w", err)
	}
	return nil
}

// ResolveProjectID looks up the internal project id for a report project
// code. Returns nil without error when the code is unknown; unknown codes
// are expected for projects not yet registered.
func (r *Repository) ResolveProjectID(ctx context.Context, projectCode string) (*uuid.UUID, error) {
	query := `SELECT id FROM projects WHERE code = $1`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, projectCode).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project code %q: %w", projectCode, err)
	}
	return &id, nil
}

// SaveRecords batch-inserts the invoice records for a job.
func (r *Repository) SaveRecords(ctx context.Context, records []StoredRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO invoice_records (
			job_id, project_id, project_code, project_name, invoice_number,
			invoice_date, invoice_amount, payment_date, payment_amount,
			phase, discipline, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query,
			rec.JobID,
			rec.ProjectID,
			rec.ProjectCode,
			rec.ProjectName,
			rec.InvoiceNumber,
			nullable(rec.InvoiceDate),
			rec.InvoiceAmount,
			nullable(rec.PaymentDate),
			rec.PaymentAmount,
			rec.Phase,
			rec.Discipline,
			rec.Notes,
			rec.Status,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert invoice record: %w", err)
		}
	}
	return nil
}

// SaveDiagnostics batch-inserts the diagnostics for a job.
func (r *Repository) SaveDiagnostics(ctx context.Context, diags []StoredDiagnostic) error {
	if len(diags) == 0 {
		return nil
	}

	query := `
		INSERT INTO import_diagnostics (job_id, line, text, reason)
		VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for _, d := range diags {
		batch.Queue(query, d.JobID, d.Line, d.Text, d.Reason)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range diags {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}
	return nil
}

// nullable maps empty strings to NULL so optional dates stay optional in SQL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
