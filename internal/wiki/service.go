package wiki

import (
	"context"
	"fmt"
	"time"

	"github.com/rohmanhakim/wiki-content/internal/config"
	"github.com/rohmanhakim/wiki-content/internal/fetcher"
	"github.com/rohmanhakim/wiki-content/internal/mdconvert"
	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/internal/sanitizer"
	"github.com/rohmanhakim/wiki-content/internal/storage"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
	"github.com/rohmanhakim/wiki-content/pkg/hashutil"
)

/*
 Service composes the retrieval pipeline for a single wiki page:

	fetch -> clean -> (render) -> (store)

 - Stages never call each other; only the service passes results along.
 - An absent result at any stage stops the pipeline and is returned as an
   absent Page, never as an error.
 - Errors returned by a stage are already recorded by that stage and are
   passed through unchanged.
 - The service holds no per-call state and is safe for concurrent use.
*/

type Service struct {
	metadataSink   metadata.MetadataSink
	htmlFetcher    fetcher.Fetcher
	htmlSanitizer  sanitizer.Sanitizer
	conversionRule mdconvert.ConvertRule
	storageSink    storage.Sink
	format         config.OutputFormat
	hashAlgo       hashutil.HashAlgo
}

func NewService(cfg config.Config, metadataSink metadata.MetadataSink) Service {
	htmlFetcher := fetcher.NewHtmlFetcher(metadataSink)
	htmlSanitizer := sanitizer.NewHTMLSanitizer(metadataSink, cfg.SanitizeParam())
	conversionRule := mdconvert.NewRule(metadataSink)
	storageSink := storage.NewLocalSink(metadataSink)
	return NewServiceWithDeps(
		cfg,
		metadataSink,
		&htmlFetcher,
		&htmlSanitizer,
		conversionRule,
		&storageSink,
	)
}

// NewServiceWithDeps creates a Service with injected pipeline stages.
func NewServiceWithDeps(
	cfg config.Config,
	metadataSink metadata.MetadataSink,
	htmlFetcher fetcher.Fetcher,
	htmlSanitizer sanitizer.Sanitizer,
	conversionRule mdconvert.ConvertRule,
	storageSink storage.Sink,
) Service {
	return Service{
		metadataSink:   metadataSink,
		htmlFetcher:    htmlFetcher,
		htmlSanitizer:  htmlSanitizer,
		conversionRule: conversionRule,
		storageSink:    storageSink,
		format:         cfg.Format(),
		hashAlgo:       cfg.HashAlgo(),
	}
}

// GetWikiContent fetches the raw HTML of the page at url.
func (s *Service) GetWikiContent(ctx context.Context, url string) (fetcher.FetchResult, failure.ClassifiedError) {
	return s.htmlFetcher.Fetch(ctx, url)
}

// CleanWikiContent extracts and cleans the content block of an HTML page.
func (s *Service) CleanWikiContent(content string) (sanitizer.CleanResult, failure.ClassifiedError) {
	return s.htmlSanitizer.Clean(content)
}

// Retrieve fetches the page at url and cleans it.
func (s *Service) Retrieve(ctx context.Context, url string) (Page, failure.ClassifiedError) {
	fetchResult, err := s.GetWikiContent(ctx, url)
	if err != nil {
		return Page{}, err
	}
	if fetchResult.IsAbsent() {
		return newAbsentPage(url, fetchResult, sanitizer.CleanResult{}, StageFetch), nil
	}

	cleanResult, err := s.CleanWikiContent(fetchResult.HTML())
	if err != nil {
		return Page{}, err
	}
	if cleanResult.IsAbsent() {
		return newAbsentPage(url, fetchResult, cleanResult, StageClean), nil
	}

	return newPage(url, fetchResult, cleanResult), nil
}

// FromContent wraps already available HTML (a file or stdin) as a Page.
// sourceURL may be empty.
func (s *Service) FromContent(sourceURL string, content string) (Page, failure.ClassifiedError) {
	cleanResult, err := s.CleanWikiContent(content)
	if err != nil {
		return Page{}, err
	}
	if cleanResult.IsAbsent() {
		return newAbsentPage(sourceURL, fetcher.FetchResult{}, cleanResult, StageClean), nil
	}
	return newPage(sourceURL, fetcher.FetchResult{}, cleanResult), nil
}

// Render returns the page fragment in the configured output format.
func (s *Service) Render(page Page) (Rendered, failure.ClassifiedError) {
	if page.IsAbsent() {
		return Rendered{}, s.recordServiceError("Service.Render", page.URL(), &ServiceError{
			Message:   fmt.Sprintf("%s stage produced no content", page.AbsentAt()),
			Retryable: false,
			Cause:     ErrCausePageAbsent,
		})
	}

	switch s.format {
	case config.FormatHTML:
		return Rendered{
			content: []byte(page.Fragment()),
			kind:    metadata.ArtifactHTML,
		}, nil
	case config.FormatMarkdown:
		conversionResult, err := s.conversionRule.Convert(page.CleanResult())
		if err != nil {
			return Rendered{}, err
		}
		return Rendered{
			content: conversionResult.GetMarkdownContent(),
			kind:    metadata.ArtifactMarkdown,
		}, nil
	default:
		return Rendered{}, s.recordServiceError("Service.Render", page.URL(), &ServiceError{
			Message:   fmt.Sprintf("format %q", s.format),
			Retryable: false,
			Cause:     ErrCauseUnsupportedFormat,
		})
	}
}

// Store persists rendered content of the page under outputDir.
func (s *Service) Store(outputDir string, page Page, rendered Rendered) (storage.WriteResult, failure.ClassifiedError) {
	doc := storage.NewDocument(page.URL(), rendered.Content(), rendered.Kind())
	return s.storageSink.Write(outputDir, doc, s.hashAlgo)
}

func (s *Service) recordServiceError(action string, url string, err *ServiceError) *ServiceError {
	s.metadataSink.RecordError(
		time.Now(),
		"wiki",
		action,
		mapServiceErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, url),
			metadata.NewAttr(metadata.AttrMessage, err.Message),
		},
	)
	return err
}
