// Package service orchestrates the report pipeline: extract text lines,
// parse them into invoice records, then export and/or persist the results.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studioatlas/fee-tracker/internal/domain/report/export"
	"github.com/studioatlas/fee-tracker/internal/domain/report/extractor"
	"github.com/studioatlas/fee-tracker/internal/domain/report/parser"
	"github.com/studioatlas/fee-tracker/internal/domain/report/phase"
	"github.com/studioatlas/fee-tracker/internal/domain/report/repository"
)

// RecordStore is the persistence boundary the service needs. Implemented by
// repository.Repository; nil when running export-only.
type RecordStore interface {
	CreateJob(ctx context.Context, job repository.ImportJob) error
	ResolveProjectID(ctx context.Context, projectCode string) (*uuid.UUID, error)
	SaveRecords(ctx context.Context, records []repository.StoredRecord) error
	SaveDiagnostics(ctx context.Context, diags []repository.StoredDiagnostic) error
}

// ImportResult summarizes one processed report.
type ImportResult struct {
	JobID       uuid.UUID
	LinesTotal  int
	Records     int
	Diagnostics int
}

// Service wires the extractor, engine, exporters and store together.
type Service struct {
	engine *parser.Engine
	store  RecordStore // optional
	logger *slog.Logger
}

// NewService creates a report service.
func NewService(engine *parser.Engine, logger *slog.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// WithStore adds persistence support.
func (s *Service) WithStore(store RecordStore) *Service {
	s.store = store
	return s
}

// ParseFile extracts and parses one source document.
func (s *Service) ParseFile(path string) (*parser.ParseResult, error) {
	lines, err := extractor.Lines(path)
	if err != nil {
		extractionFailures.Inc()
		return nil, fmt.Errorf("failed to extract %s: %w", path, err)
	}

	result := s.engine.Parse(lines)
	recordsParsed.Add(float64(len(result.Records)))
	diagnosticsEmitted.Add(float64(len(result.Diagnostics)))

	s.logger.Info("report parsed",
		"file", path,
		"lines", result.TotalLines,
		"records", len(result.Records),
		"diagnostics", len(result.Diagnostics))

	s.logPhaseFallbacks(result.Records)
	return result, nil
}

// logPhaseFallbacks surfaces records whose phase did not classify, with the
// nearest canonical label as a triage hint.
func (s *Service) logPhaseFallbacks(records []parser.InvoiceRecord) {
	for _, rec := range records {
		if phase.IsCanonical(rec.Phase) {
			continue
		}
		attrs := []any{"invoice", rec.InvoiceNumber, "phase", rec.Phase}
		if suggestion := phase.Suggest(rec.Phase); suggestion != "" {
			attrs = append(attrs, "closest_known_phase", suggestion)
		}
		s.logger.Debug("unclassified phase", attrs...)
	}
}

// ExportCSV writes records and, when diagsOut is non-nil, diagnostics.
func (s *Service) ExportCSV(result *parser.ParseResult, recordsOut, diagsOut io.Writer) error {
	if recordsOut != nil {
		if err := export.WriteRecordsCSV(recordsOut, result.Records); err != nil {
			return err
		}
	}
	if diagsOut != nil {
		return export.WriteDiagnosticsCSV(diagsOut, result.Diagnostics)
	}
	return nil
}

// ExportWorkbook writes the XLSX audit workbook.
func (s *Service) ExportWorkbook(result *parser.ParseResult, out io.Writer) error {
	return export.WriteWorkbook(out, result)
}

// Import persists a parse result as a new import job.
func (s *Service) Import(ctx context.Context, sourceFile string, result *parser.ParseResult) (*ImportResult, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no record store configured")
	}

	job := repository.ImportJob{
		ID:          uuid.New(),
		SourceFile:  sourceFile,
		RecordCount: len(result.Records),
		DiagCount:   len(result.Diagnostics),
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	records, err := s.resolveRecords(ctx, job.ID, result.Records)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveRecords(ctx, records); err != nil {
		return nil, err
	}

	diags := make([]repository.StoredDiagnostic, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		diags[i] = repository.StoredDiagnostic{JobID: job.ID, Line: d.Line, Text: d.Text, Reason: d.Reason}
	}
	if err := s.store.SaveDiagnostics(ctx, diags); err != nil {
		return nil, err
	}

	s.logger.Info("report imported",
		"job_id", job.ID,
		"file", sourceFile,
		"records", len(records),
		"diagnostics", len(diags))

	return &ImportResult{
		JobID:       job.ID,
		LinesTotal:  result.TotalLines,
		Records:     len(result.Records),
		Diagnostics: len(result.Diagnostics),
	}, nil
}

// resolveRecords maps parsed records to their stored shape, resolving each
// distinct project code once.
func (s *Service) resolveRecords(ctx context.Context, jobID uuid.UUID, records []parser.InvoiceRecord) ([]repository.StoredRecord, error) {
	resolved := make(map[string]*uuid.UUID)
	out := make([]repository.StoredRecord, 0, len(records))

	for _, rec := range records {
		projectID, seen := resolved[rec.ProjectCode]
		if !seen && rec.ProjectCode != "" {
			id, err := s.store.ResolveProjectID(ctx, rec.ProjectCode)
			if err != nil {
				return nil, err
			}
			resolved[rec.ProjectCode] = id
			projectID = id
		}

		out = append(out, repository.StoredRecord{
			JobID:         jobID,
			ProjectID:     projectID,
			ProjectCode:   rec.ProjectCode,
			ProjectName:   rec.ProjectName,
			InvoiceNumber: rec.InvoiceNumber,
			InvoiceDate:   rec.InvoiceDate,
			InvoiceAmount: rec.InvoiceAmount.String(),
			PaymentDate:   rec.PaymentDate,
			PaymentAmount: rec.PaymentAmount.String(),
			Phase:         rec.Phase,
			Discipline:    rec.Discipline,
			Notes:         rec.Notes,
			Status:        rec.Status,
		})
	}
	return out, nil
}
