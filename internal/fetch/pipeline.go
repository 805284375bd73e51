package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"mdscli/internal/config"
	"mdscli/internal/dataprocessing"
	apierrors "mdscli/internal/errors"
	"mdscli/internal/infrastructure"
	"mdscli/internal/ingest"
	"mdscli/pkg/contracts/domain"
)

// Dataset is the fully processed output for one end year.
type Dataset struct {
	EndYear int                    `json:"end_year"`
	Wide    []*domain.CanonicalRow `json:"wide"`
	Tidy    []domain.TidyRecord    `json:"tidy"`
}

// BatchResult collects a multi-year run. Years that failed to download or
// parse become warnings rather than aborting the batch.
type BatchResult struct {
	Datasets []*Dataset `json:"datasets"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Pipeline runs the per-year flow: fetch through the source plan, parse,
// normalize, merge the supplement, synthesize the state row, pivot to tidy.
type Pipeline struct {
	fetcher    ByteFetcher
	sheets     SpreadsheetReader
	pdfs       PDFTextExtractor
	plan       SourcePlan
	normalizer *dataprocessing.Normalizer
	aggregator *dataprocessing.Aggregator
	tidy       *dataprocessing.TidyTransform
	metrics    *infrastructure.Metrics
	logger     *slog.Logger
}

// NewPipeline wires a pipeline. metrics may be nil.
func NewPipeline(fetcher ByteFetcher, sheets SpreadsheetReader, pdfs PDFTextExtractor, plan SourcePlan, metrics *infrastructure.Metrics, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher:    fetcher,
		sheets:     sheets,
		pdfs:       pdfs,
		plan:       plan,
		normalizer: dataprocessing.NewNormalizer(logger),
		aggregator: dataprocessing.NewAggregator(logger),
		tidy:       dataprocessing.NewTidyTransform(logger),
		metrics:    metrics,
		logger:     logger.With(slog.String("component", "pipeline")),
	}
}

// FetchYear produces the wide and tidy datasets for one end year.
func (p *Pipeline) FetchYear(ctx context.Context, endYear int) (*Dataset, error) {
	if !config.YearSupported(endYear) {
		return nil, apierrors.NewValidationError("year",
			fmt.Sprintf("year %d outside supported range %d-%d", endYear, config.MinEndYear, config.MaxEndYear))
	}

	records, err := p.fetchChain(ctx, endYear)
	if err != nil {
		return nil, err
	}
	rows := p.normalizer.Normalize(records, endYear)

	if p.plan.Supplement != nil {
		if extra, err := p.fetchSource(ctx, *p.plan.Supplement, endYear); err != nil {
			p.logger.Warn("supplemental source unavailable",
				slog.Int("end_year", endYear),
				slog.String("source", p.plan.Supplement.Name),
				slog.String("error", err.Error()))
		} else {
			rows = p.aggregator.Merge(rows, p.normalizer.Normalize(extra, endYear))
		}
	}

	rows = p.aggregator.SynthesizeState(rows, endYear)

	ds := &Dataset{
		EndYear: endYear,
		Wide:    rows,
		Tidy:    p.tidy.Transform(rows),
	}
	p.logger.Info("year processed",
		slog.Int("end_year", endYear),
		slog.Int("wide_rows", len(ds.Wide)),
		slog.Int("tidy_records", len(ds.Tidy)))
	return ds, nil
}

// FetchRange runs FetchYear over the given years in order. Download and
// parse failures become warnings; zero successful years is an error.
// Validation failures abort immediately.
func (p *Pipeline) FetchRange(ctx context.Context, years []int) (*BatchResult, error) {
	result := &BatchResult{}
	for _, year := range years {
		ds, err := p.FetchYear(ctx, year)
		if err != nil {
			if !apierrors.IsRecoverable(err) {
				return nil, err
			}
			p.logger.Warn("year skipped",
				slog.Int("end_year", year),
				slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, fmt.Sprintf("year %d: %v", year, err))
			continue
		}
		result.Datasets = append(result.Datasets, ds)
	}
	if len(result.Datasets) == 0 {
		return nil, apierrors.NewAppError(apierrors.ErrTypeDownload,
			fmt.Sprintf("no year produced data (%d attempted)", len(years)), nil)
	}
	return result, nil
}

// fetchChain walks the primary sources and returns the first non-empty
// parse. The last failure is reported when every source fails.
func (p *Pipeline) fetchChain(ctx context.Context, endYear int) ([]ingest.RawRecord, error) {
	var lastErr error
	for _, src := range p.plan.Primary {
		records, err := p.fetchSource(ctx, src, endYear)
		if err != nil {
			lastErr = err
			continue
		}
		if len(records) > 0 {
			return records, nil
		}
	}
	if lastErr == nil {
		lastErr = apierrors.NewDownloadError("enrollment", endYear, fmt.Errorf("no sources configured"))
	}
	return nil, lastErr
}

func (p *Pipeline) fetchSource(ctx context.Context, src Source, endYear int) ([]ingest.RawRecord, error) {
	p.countFetch(ctx, src.Name)
	data, err := FetchFirst(ctx, p.fetcher, src.Name, endYear, src.URLPatterns, p.logger)
	if err != nil {
		p.countFetchFailure(ctx, src.Name)
		return nil, err
	}

	var grid [][]string
	var pages []string
	switch src.Format {
	case domain.FormatSpreadsheetBlock:
		if grid, err = p.sheets.ReadGrid(data); err != nil {
			p.countParseFailure(ctx, src.Name)
			return nil, apierrors.NewParseError(src.Name, endYear, err)
		}
	case domain.FormatPDFLineTable:
		if pages, err = p.pdfs.ExtractPages(data); err != nil {
			p.countParseFailure(ctx, src.Name)
			return nil, apierrors.NewParseError(src.Name, endYear, err)
		}
	}

	records, err := ingest.Parse(src.Format, src.Name, endYear, data, grid, pages)
	if err != nil {
		p.countParseFailure(ctx, src.Name)
		return nil, err
	}
	return records, nil
}

func (p *Pipeline) countFetch(ctx context.Context, source string) {
	if p.metrics != nil {
		p.metrics.FetchTotal.Add(ctx, 1, sourceAttr(source))
	}
}

func (p *Pipeline) countFetchFailure(ctx context.Context, source string) {
	if p.metrics != nil {
		p.metrics.FetchFailures.Add(ctx, 1, sourceAttr(source))
	}
}

func (p *Pipeline) countParseFailure(ctx context.Context, source string) {
	if p.metrics != nil {
		p.metrics.ParseFailures.Add(ctx, 1, sourceAttr(source))
	}
}

func sourceAttr(source string) metric.AddOption {
	return metric.WithAttributes(attribute.String("source", source))
}
