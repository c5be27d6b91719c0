package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"webrecon/internal/config"
	"webrecon/internal/log"
	"webrecon/internal/metrics"
	"webrecon/internal/model"
	"webrecon/internal/process"
	"webrecon/internal/util"
)

const (
	ReasonInvalidTarget  = "invalid target"
	ReasonPageNotFetched = "page not fetched"
)

// Service runs every collector against a target and assembles the result.
type Service struct {
	fetcher     Fetcher
	enumerator  *SubdomainEnumerator
	scanner     *DirectoryScanner
	phoneSource string
	dedupe      bool
}

type Option func(*Service)

// WithPhoneSource selects what the phone collector scans: config.PhoneSourceHTML,
// config.PhoneSourceText or config.PhoneSourceBoth.
func WithPhoneSource(source string) Option {
	return func(s *Service) {
		s.phoneSource = source
	}
}

// WithDedupe drops repeated subdomains and folders, keeping first occurrences.
func WithDedupe(dedupe bool) Option {
	return func(s *Service) {
		s.dedupe = dedupe
	}
}

func New(fetcher Fetcher, enumerator *SubdomainEnumerator, scanner *DirectoryScanner, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		enumerator:  enumerator,
		scanner:     scanner,
		phoneSource: config.PhoneSourceHTML,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig wires the production collectors from cfg.
func NewFromConfig(cfg *config.Config, runner process.Runner) *Service {
	fetcher := NewHTMLFetcher(cfg.FetchTimeout,
		WithRateLimit(cfg.FetchRate),
		WithUserAgent(cfg.UserAgent),
		WithMaxBodyBytes(cfg.MaxBodyBytes),
	)
	enumerator := NewSubdomainEnumerator(runner, cfg.SubdomainTool, cfg.SubdomainTimeout)
	scanner := NewDirectoryScanner(runner, cfg.DirscanTool, cfg.DirscanTimeout,
		WithExtensions(cfg.DirscanExtensions),
		WithExcludeStatus(cfg.DirscanExcludeStatus),
		WithFoundMarker(cfg.DirscanFoundMarker),
	)
	return New(fetcher, enumerator, scanner,
		WithPhoneSource(cfg.PhoneSource),
		WithDedupe(cfg.Dedupe),
	)
}

// Run reconnoitres rawURL. Collector failures are recorded as statuses in
// the result; the only returned error is *InvalidTargetError, in which case
// the result has every collector skipped and nothing was contacted.
func (s *Service) Run(ctx context.Context, rawURL string) (*model.ReconResult, error) {
	result := &model.ReconResult{
		RunID:      uuid.NewString(),
		Target:     model.Target{URL: rawURL},
		StartedAt:  time.Now(),
		Phones:     []string{},
		Subdomains: []string{},
		Folders:    []string{},
	}
	logger := log.Logger.With(zap.String("run_id", result.RunID))

	target, err := util.ParseTarget(rawURL)
	if err != nil {
		logger.Warn("invalid target", zap.String("input", rawURL), zap.Error(err))
		result.SkipAll(ReasonInvalidTarget)
		metrics.ObserveTarget(false)
		s.observe(result)
		return result, &InvalidTargetError{Input: rawURL, Err: err}
	}
	result.Target = target
	metrics.ObserveTarget(true)

	logger.Info("starting recon",
		zap.String("url", target.URL),
		zap.String("domain", target.Domain),
	)

	// The metadata collector hands the fetched page to the phone collector.
	pageReady := make(chan struct{})
	var fetched *FetchResult

	var g errgroup.Group

	g.Go(func() error {
		defer close(pageReady)
		defer recoverCollector(model.CollectorMetadata, &result.MetadataStatus)
		start := time.Now()

		page, err := s.fetcher.Fetch(ctx, target.URL)
		if err != nil {
			result.MetadataStatus = model.Failed(failureReason(ctx, err), time.Since(start))
			return nil
		}
		fetched = page
		result.HTTPStatus = page.StatusCode
		result.Metadata = ParseMetadata(page.Body)
		result.MetadataStatus = model.Success(time.Since(start))
		return nil
	})

	g.Go(func() error {
		defer recoverCollector(model.CollectorPhones, &result.PhoneStatus)
		<-pageReady
		if fetched == nil {
			result.PhoneStatus = model.Skipped(ReasonPageNotFetched)
			return nil
		}
		start := time.Now()
		result.Phones = s.extractPhones(fetched.Body, result.Metadata)
		result.PhoneStatus = model.Success(time.Since(start))
		return nil
	})

	g.Go(func() error {
		defer recoverCollector(model.CollectorSubdomains, &result.SubdomainStatus)
		start := time.Now()

		subdomains, err := s.enumerator.Enumerate(ctx, target.Domain)
		if err != nil {
			result.SubdomainStatus = model.Failed(failureReason(ctx, err), time.Since(start))
			return nil
		}
		if s.dedupe {
			subdomains = util.Dedupe(subdomains)
		}
		result.Subdomains = subdomains
		result.SubdomainStatus = model.Success(time.Since(start))
		return nil
	})

	g.Go(func() error {
		defer recoverCollector(model.CollectorFolders, &result.FolderStatus)
		start := time.Now()

		folders, err := s.scanner.Scan(ctx, target.URL)
		if err != nil {
			result.FolderStatus = model.Failed(failureReason(ctx, err), time.Since(start))
			return nil
		}
		if s.dedupe {
			folders = util.Dedupe(folders)
		}
		result.Folders = folders
		result.FolderStatus = model.Success(time.Since(start))
		return nil
	})

	// Collectors never return errors; failures live in their statuses.
	_ = g.Wait()

	result.Duration = time.Since(result.StartedAt)
	s.observe(result)

	logger.Info("recon finished",
		zap.String("url", target.URL),
		zap.Duration("duration", result.Duration),
		zap.String("metadata", result.MetadataStatus.String()),
		zap.String("phones", result.PhoneStatus.String()),
		zap.String("subdomains", result.SubdomainStatus.String()),
		zap.String("folders", result.FolderStatus.String()),
	)

	return result, nil
}

func (s *Service) extractPhones(body string, page *model.PageMetadata) []string {
	switch s.phoneSource {
	case config.PhoneSourceText:
		return ExtractPhoneNumbers(paragraphText(page))
	case config.PhoneSourceBoth:
		return append(ExtractPhoneNumbers(body), ExtractPhoneNumbers(paragraphText(page))...)
	default:
		return ExtractPhoneNumbers(body)
	}
}

func (s *Service) observe(result *model.ReconResult) {
	for _, section := range result.Sections() {
		metrics.ObserveCollector(section.Name, string(section.Status.State), section.Status.Duration)
	}
}

// failureReason prefers the run's cancellation cause over the collector's
// own error, so an aborted run reads as cancelled rather than as a tool fault.
func failureReason(ctx context.Context, err error) string {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "cancelled: run timed out"
		}
		return "cancelled"
	}
	return err.Error()
}
