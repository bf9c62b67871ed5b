// Package app wires the collection pipeline together: querying the SPARQL
// endpoint per département, normalizing and persisting raw captures,
// assembling the deduplicated dataset, and exporting or uploading it.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/parisfoot/idfplayers/internal/adapters/hub"
	"github.com/parisfoot/idfplayers/internal/adapters/rawstore"
	"github.com/parisfoot/idfplayers/internal/adapters/wikidata"
	"github.com/parisfoot/idfplayers/internal/config"
	"github.com/parisfoot/idfplayers/internal/dataset"
	"github.com/parisfoot/idfplayers/internal/domain/model"
	"github.com/parisfoot/idfplayers/internal/domain/normalize"
	"github.com/parisfoot/idfplayers/pkg/logger"
	"github.com/parisfoot/idfplayers/pkg/metrics"
)

// Names of the report artifacts written next to the export files. CardName
// doubles as the dataset card the registry renders on the dataset page.
const (
	SummaryName = "SUMMARY.md"
	CardName    = "README.md"
)

// Querier runs SPARQL queries against the endpoint.
type Querier interface {
	QueryDepartment(ctx context.Context, code string) ([]normalize.Row, error)
	Probe(ctx context.Context) bool
}

// RawStore persists per-département captures between runs.
type RawStore interface {
	Save(batch model.Batch) error
	LoadAll() ([]model.Batch, error)
	Completed() ([]string, error)
	Missing(all []string) ([]string, error)
}

// Uploader pushes the export directory to the dataset registry.
type Uploader interface {
	EnsureRepo(ctx context.Context, repo string) error
	UploadFolder(ctx context.Context, repo, dir, message string) error
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQuerier overrides the SPARQL client.
func WithQuerier(q Querier) Option {
	return func(s *Service) {
		if q != nil {
			s.querier = q
		}
	}
}

// WithStore overrides the raw capture store.
func WithStore(st RawStore) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithUploader overrides the registry client.
func WithUploader(u Uploader) Option {
	return func(s *Service) {
		if u != nil {
			s.uploader = u
		}
	}
}

// WithNormalizer overrides the binding-row normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithLogger sets the logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// Service orchestrates the collect, retry, analyze, status and upload
// operations on top of the adapters.
type Service struct {
	cfg        *config.Config
	querier    Querier
	store      RawStore
	uploader   Uploader
	normalizer *normalize.Normalizer
	log        logger.Logger
}

// New creates a Service from configuration. Adapters not supplied via
// options are built from the config values.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:        cfg,
		normalizer: normalize.New(),
		log:        logger.Get().Named("app"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.querier == nil {
		s.querier = wikidata.New(
			wikidata.WithEndpoint(cfg.Endpoint),
			wikidata.WithUserAgent(cfg.UserAgent),
			wikidata.WithTimeout(time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
			wikidata.WithRetry(uint(cfg.RetryAttempts), time.Duration(cfg.RetryDelayMS)*time.Millisecond),
			wikidata.WithBuilder(wikidata.NewBuilder(
				wikidata.WithYearRange(cfg.MinYear, cfg.MaxYear),
				wikidata.WithLabelLang(cfg.Lang),
			)),
		)
	}
	if s.store == nil {
		store, err := rawstore.New(cfg.RawDir)
		if err != nil {
			return nil, err
		}
		s.store = store
	}
	if s.uploader == nil {
		s.uploader = hub.New(
			hub.WithEndpoint(cfg.HubEndpoint),
			hub.WithToken(cfg.HubToken),
		)
	}
	return s, nil
}

// RunReport describes the outcome of a collect or retry run.
type RunReport struct {
	RunID     string
	Collected []string
	Failed    []string
	Summary   dataset.Summary
}

// Collect queries every configured département in order, persists each
// capture, then assembles and exports the dataset. A failed département is
// recorded and skipped; the run never aborts early.
func (s *Service) Collect(ctx context.Context) (*RunReport, error) {
	runID := uuid.NewString()
	s.log.Info(ctx, "starting collection run",
		logger.String("run_id", runID),
		logger.Int("departments", len(s.cfg.Departments)))

	collected, failed := s.collectDepartments(ctx, runID, s.cfg.Departments)
	report, err := s.finishRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	report.Collected = collected
	report.Failed = failed
	return report, nil
}

// Retry probes the endpoint, then collects only the départements that have
// no raw capture yet. Already-captured départements are never re-queried.
func (s *Service) Retry(ctx context.Context) (*RunReport, error) {
	if !s.querier.Probe(ctx) {
		return nil, ErrEndpointUnavailable
	}

	missing, err := s.store.Missing(s.cfg.Departments)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	if len(missing) == 0 {
		s.log.Info(ctx, "nothing to retry, all départements captured",
			logger.String("run_id", runID))
		return s.finishRun(ctx, runID)
	}

	s.log.Info(ctx, "retrying missing départements",
		logger.String("run_id", runID),
		logger.Any("missing", missing))

	collected, failed := s.collectDepartments(ctx, runID, missing)
	report, err := s.finishRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	report.Collected = collected
	report.Failed = failed
	return report, nil
}

// Analyze rebuilds the dataset from the raw captures on disk without
// touching the endpoint, then re-exports it.
func (s *Service) Analyze(ctx context.Context) (*RunReport, error) {
	batches, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, ErrNoCaptures
	}
	return s.finishRun(ctx, uuid.NewString())
}

// StatusReport describes the on-disk state of the pipeline.
type StatusReport struct {
	Completed []string
	Missing   []string
	ByDept    map[string]int
	Total     int
}

// Status reports which départements have captures and how many players
// each holds. Duplicate entities across départements are not collapsed
// here; the counts reflect the raw captures.
func (s *Service) Status(ctx context.Context) (*StatusReport, error) {
	missing, err := s.store.Missing(s.cfg.Departments)
	if err != nil {
		return nil, err
	}
	batches, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		Missing: missing,
		ByDept:  make(map[string]int, len(batches)),
	}
	for _, batch := range batches {
		report.Completed = append(report.Completed, batch.Department)
		report.ByDept[batch.Department] = batch.Count
		report.Total += batch.Count
	}
	return report, nil
}

// Upload pushes the export directory to the configured dataset registry.
func (s *Service) Upload(ctx context.Context) error {
	if s.cfg.HubRepo == "" {
		return ErrNoRepo
	}
	if err := s.uploader.EnsureRepo(ctx, s.cfg.HubRepo); err != nil {
		return err
	}
	message := fmt.Sprintf("dataset refresh %s", time.Now().UTC().Format("2006-01-02"))
	return s.uploader.UploadFolder(ctx, s.cfg.HubRepo, s.cfg.ExportDir, message)
}

// collectDepartments queries the given départements in order with the
// configured pause between requests. One failure does not stop the loop.
func (s *Service) collectDepartments(ctx context.Context, runID string, depts []string) (collected, failed []string) {
	delay := time.Duration(s.cfg.RequestDelayMS) * time.Millisecond

	for i, dept := range depts {
		if i > 0 && delay > 0 {
			if err := pause(ctx, delay); err != nil {
				failed = append(failed, depts[i:]...)
				return collected, failed
			}
		}

		rows, err := s.querier.QueryDepartment(ctx, dept)
		if err != nil {
			s.log.Error(ctx, "département query failed",
				logger.String("department", dept),
				logger.Error(err))
			failed = append(failed, dept)
			continue
		}

		batch := s.normalizeBatch(ctx, runID, dept, rows)
		if err := s.store.Save(batch); err != nil {
			s.log.Error(ctx, "saving capture failed",
				logger.String("department", dept),
				logger.Error(err))
			failed = append(failed, dept)
			continue
		}

		collected = append(collected, dept)
		s.log.Info(ctx, "département captured",
			logger.String("department", dept),
			logger.Int("players", batch.Count))
	}
	return collected, failed
}

// normalizeBatch flattens binding rows into player records, dropping the
// malformed ones.
func (s *Service) normalizeBatch(ctx context.Context, runID, dept string, rows []normalize.Row) model.Batch {
	players := make([]model.Player, 0, len(rows))
	for _, row := range rows {
		player, err := s.normalizer.Record(row, dept)
		if err != nil {
			metrics.IncRowMalformed()
			s.log.Warn(ctx, "dropping malformed row",
				logger.String("department", dept),
				logger.Error(err))
			continue
		}
		players = append(players, player)
	}
	metrics.AddRowsNormalized(len(players))

	return model.Batch{
		Department:  dept,
		RunID:       runID,
		CollectedAt: time.Now().UTC(),
		Count:       len(players),
		Players:     players,
	}
}

// finishRun assembles whatever captures exist on disk, classifies and
// exports the dataset, and writes the summary and metrics artifacts.
func (s *Service) finishRun(ctx context.Context, runID string) (*RunReport, error) {
	batches, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}

	assembler := dataset.New()
	for _, batch := range batches {
		assembler.Add(ctx, batch)
	}
	assembler.ClassifyAll()

	if err := assembler.Export(s.cfg.ExportDir); err != nil {
		return nil, err
	}

	missing, err := s.store.Missing(s.cfg.Departments)
	if err != nil {
		return nil, err
	}
	summary := assembler.Summarize(runID, missing)

	summaryPath := filepath.Join(s.cfg.ExportDir, SummaryName)
	if err := os.WriteFile(summaryPath, []byte(summary.Markdown()), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	cardPath := filepath.Join(s.cfg.ExportDir, CardName)
	if err := os.WriteFile(cardPath, []byte(datasetCard(summary)), 0o644); err != nil {
		return nil, fmt.Errorf("writing dataset card: %w", err)
	}

	if s.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			s.log.Warn(ctx, "metrics textfile write failed", logger.Error(err))
		}
	}

	s.log.Info(ctx, "dataset exported",
		logger.String("run_id", runID),
		logger.Int("players", summary.Total),
		logger.Any("missing", missing))

	return &RunReport{RunID: runID, Summary: summary}, nil
}

// pause sleeps for d unless the context ends first.
func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
