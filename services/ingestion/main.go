package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	e "github.com/sb25/REST-Web-Services-interaction/models/errors"
	"github.com/sb25/REST-Web-Services-interaction/models/ingest"
	"github.com/sb25/REST-Web-Services-interaction/models/ingest/structs"
	allelesService "github.com/sb25/REST-Web-Services-interaction/services/alleles"
	pipelinesService "github.com/sb25/REST-Web-Services-interaction/services/pipelines"
	productsService "github.com/sb25/REST-Web-Services-interaction/services/products"
	"github.com/sb25/REST-Web-Services-interaction/utils"
)

// AlleleLoader produces the ordered allele records, each carrying its
// products, that should exist in the repository.
type AlleleLoader interface {
	LoadPendingAlleles(ctx context.Context) ([]structs.AlleleImportRecord, error)
}

type AlleleLoaderFunc func(ctx context.Context) ([]structs.AlleleImportRecord, error)

func (f AlleleLoaderFunc) LoadPendingAlleles(ctx context.Context) ([]structs.AlleleImportRecord, error) {
	return f(ctx)
}

type (
	SyncService struct {
		Pipelines *pipelinesService.PipelineService
		Alleles   *allelesService.AlleleService
		Products  *productsService.ProductService

		// ContinueOnError records a failing record in the report and
		// moves on instead of aborting the batch.
		ContinueOnError bool

		validate *validator.Validate
	}
)

func NewSyncService(
	ps *pipelinesService.PipelineService,
	as *allelesService.AlleleService,
	prs *productsService.ProductService,
	continueOnError bool) *SyncService {

	return &SyncService{
		Pipelines:       ps,
		Alleles:         as,
		Products:        prs,
		ContinueOnError: continueOnError,
		validate:        utils.NewValidator(),
	}
}

// Run imports every pending record in order, one request at a time. The
// returned report is never nil, even when the run fails.
func (ss *SyncService) Run(ctx context.Context, loader AlleleLoader) (*ingest.SyncReport, error) {
	report := &ingest.SyncReport{
		SyncRequest: ingest.SyncRequest{
			Id:        uuid.New(),
			Source:    fmt.Sprintf("%T", loader),
			State:     ingest.Queued,
			CreatedAt: time.Now().String(),
		},
		Failures: []ingest.RecordFailure{},
	}
	setState(report, ingest.Running, "")

	if !ss.Pipelines.IsLoaded() {
		if err := ss.Pipelines.Load(ctx); err != nil {
			return fail(report, fmt.Errorf("loading pipelines: %w", err))
		}
	}

	records, err := loader.LoadPendingAlleles(ctx)
	if err != nil {
		return fail(report, fmt.Errorf("loading pending alleles: %w", err))
	}
	report.Records = len(records)

	slog.Info("starting sync", "id", report.Id, "records", len(records), "continueOnError", ss.ContinueOnError)

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return fail(report, err)
		}

		failure := ss.syncRecord(ctx, i, record, report)
		if failure == nil {
			continue
		}

		report.Failures = append(report.Failures, *failure)
		if !ss.ContinueOnError {
			return fail(report, failure.Err)
		}
		slog.Warn("skipping failed record", "index", i, "key", failure.Key, "err", failure.Err)
	}

	if len(report.Failures) > 0 {
		errs := make([]error, 0, len(report.Failures))
		for _, f := range report.Failures {
			errs = append(errs, f.Err)
		}
		return fail(report, errors.Join(errs...))
	}

	setState(report, ingest.Done, utils.SummarizeReport(report))
	slog.Info("sync done", "id", report.Id,
		"allelesFound", report.AllelesFound, "allelesCreated", report.AllelesCreated,
		"productsFound", report.ProductsFound, "productsCreated", report.ProductsCreated)
	return report, nil
}

func (ss *SyncService) syncRecord(ctx context.Context, index int, record structs.AlleleImportRecord, report *ingest.SyncReport) *ingest.RecordFailure {
	key := structs.NaturalKey(record.Allele)
	failed := func(escellClone string, err error) *ingest.RecordFailure {
		err = fmt.Errorf("record %d (%s): %w", index, key, err)
		return &ingest.RecordFailure{
			Index:       index,
			Key:         key,
			EscellClone: escellClone,
			Err:         err,
			Message:     err.Error(),
		}
	}

	if err := ss.validate.Struct(record); err != nil {
		return failed("", fmt.Errorf("%w: %v", e.ErrInvalidRecord, err))
	}

	if err := ss.Pipelines.ResolvePipelineId(&record); err != nil {
		return failed("", err)
	}

	// products are submitted on their own once the allele has an id
	candidate, products := record.Detach()

	allele, created, err := ss.Alleles.Resolve(ctx, candidate)
	if err != nil {
		return failed("", err)
	}
	if created {
		report.AllelesCreated++
	} else {
		report.AllelesFound++
	}

	for _, p := range products {
		_, created, err := ss.Products.Resolve(ctx, allele, p.EscellClone)
		if err != nil {
			return failed(p.EscellClone, err)
		}
		if created {
			report.ProductsCreated++
		} else {
			report.ProductsFound++
		}
	}

	return nil
}

func setState(report *ingest.SyncReport, state ingest.State, message string) {
	report.State = state
	report.Message = message
	report.UpdatedAt = time.Now().String()
}

func fail(report *ingest.SyncReport, err error) (*ingest.SyncReport, error) {
	setState(report, ingest.Error, err.Error())
	slog.Error("sync failed", "id", report.Id, "err", err)
	return report, err
}
