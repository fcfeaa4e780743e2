// =============================================================================
// Ledger Export - Export Orchestrator
// =============================================================================
//
// This module drives the full export pipeline for one request:
//
//   1. Build the batch (fetch + normalize + sort)
//   2. Validate the batch; refuse on any error-severity issue
//   3. Compute statistics for the summary
//   4. Write the artifact (skipped on dry runs)
//   5. Archive a copy of the artifact
//
// Each stage consumes a fully-materialized input and produces a
// fully-materialized output; the only blocking operation is the source fetch
// inside the aggregator, which honors the request context. The batch is
// immutable once built, so validation and statistics could run concurrently;
// they are cheap enough that the orchestrator simply runs them in sequence.
//
// Every export request is independent. The orchestrator holds no mutable
// state between calls and may serve requests in parallel.
//
// =============================================================================

package export

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
	"github.com/ginjaninja78/ledger-export/internal/normalize"
	"github.com/ginjaninja78/ledger-export/internal/source"
	"github.com/ginjaninja78/ledger-export/internal/stats"
	"github.com/ginjaninja78/ledger-export/internal/validation"
	"github.com/ginjaninja78/ledger-export/internal/xlsxwriter"
	"github.com/ginjaninja78/ledger-export/pkg/utils"
)

// =============================================================================
// REQUEST AND RESULT
// =============================================================================

// Request describes one export call.
type Request struct {
	// Period scopes the source fetch by year and optional month.
	Period ledger.Period

	// IncludeExpenses and IncludeIncome select the record kinds. At least
	// one must be true.
	IncludeExpenses bool
	IncludeIncome   bool

	// DryRun validates and summarizes without writing an artifact.
	DryRun bool
}

// Result is the outcome of a successful export call.
type Result struct {
	// OutputFile is the path of the written artifact. Empty on dry runs.
	OutputFile string

	// ArchiveFile is the path of the archived copy. Empty on dry runs or
	// when archiving is disabled.
	ArchiveFile string

	// Batch is the batch that was exported.
	Batch *ledger.ExportBatch

	// Report is the validation report (exportable, possibly with warnings).
	Report *validation.Report

	// Stats are the aggregate figures over the batch.
	Stats stats.Statistics

	// Elapsed is the total pipeline time.
	Elapsed time.Duration
}

// =============================================================================
// EXPORTER
// =============================================================================

// Exporter runs the export pipeline against a record source.
type Exporter struct {
	aggregator *Aggregator
	files      *utils.FileManager
	log        *slog.Logger
}

// NewExporter creates an exporter.
//
// PARAMETERS:
//   - src: the record source to fetch from.
//   - names: the reference name resolver for normalization.
//   - files: file manager for output naming and archival.
//   - log: structured logger; nil falls back to slog.Default().
func NewExporter(src source.RecordSource, names normalize.Resolver, files *utils.FileManager, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{
		aggregator: NewAggregator(src, names),
		files:      files,
		log:        log,
	}
}

// Run executes the pipeline for one request.
//
// Failure modes map onto the package error taxonomy: ErrEmptySelection
// before any fetch, SourceError from the aggregator, ValidationError when
// the batch carries error-severity issues, WriteError from serialization.
func (e *Exporter) Run(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: BUILD BATCH
	// =========================================================================

	e.log.Info("building export batch",
		slog.String("period", req.Period.String()),
		slog.Bool("expenses", req.IncludeExpenses),
		slog.Bool("income", req.IncludeIncome))

	batch, err := e.aggregator.BuildBatch(ctx, req.Period, req.IncludeExpenses, req.IncludeIncome)
	if err != nil {
		return nil, err
	}

	e.log.Debug("batch built", slog.Int("entries", batch.Len()))

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================

	report := validation.Validate(batch)
	for _, warning := range report.Warnings() {
		e.log.Warn("validation warning", slog.String("issue", warning.Error()))
	}

	if !report.Exportable() {
		for _, issue := range report.Errors() {
			e.log.Error("validation error", slog.String("issue", issue.Error()))
		}
		return nil, &ValidationError{Report: report}
	}

	// =========================================================================
	// STEP 3: STATISTICS
	// =========================================================================

	figures := stats.Summarize(batch)

	e.log.Info("batch summary",
		slog.Int("entries", figures.Count),
		slog.String("dates", figures.DateRange()),
		slog.String("debit_total", figures.DebitTotal.StringFixed(2)),
		slog.String("credit_total", figures.CreditTotal.StringFixed(2)),
		slog.String("balance", figures.Balance.StringFixed(2)))

	result := &Result{
		Batch:  batch,
		Report: report,
		Stats:  figures,
	}

	if req.DryRun {
		result.Elapsed = time.Since(startTime)
		return result, nil
	}

	// =========================================================================
	// STEP 4: WRITE ARTIFACT
	// =========================================================================

	destination := e.files.ExportPath(req.Period, time.Now())

	written, err := xlsxwriter.Write(batch, destination)
	if err != nil {
		return nil, &WriteError{Path: destination, Err: err}
	}

	result.OutputFile = written.Path
	e.log.Info("artifact written",
		slog.String("path", written.Path),
		slog.Int("rows", written.RowsWritten))

	// =========================================================================
	// STEP 5: ARCHIVE
	// =========================================================================
	// Archival failure does not fail the export; the artifact itself is
	// already in place.

	archived, err := e.files.ArchiveArtifact(written.Path)
	if err != nil {
		e.log.Warn("failed to archive artifact",
			slog.String("path", written.Path),
			slog.String("error", err.Error()))
	} else {
		result.ArchiveFile = archived
		e.log.Debug("artifact archived", slog.String("path", archived))
	}

	result.Elapsed = time.Since(startTime)
	return result, nil
}

// ArtifactName returns the file name an export for the period would use at
// the given timestamp, without running anything.
func (e *Exporter) ArtifactName(period ledger.Period, now time.Time) string {
	return filepath.Base(e.files.ExportPath(period, now))
}
