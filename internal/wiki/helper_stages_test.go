package wiki_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/wiki-content/internal/config"
	"github.com/rohmanhakim/wiki-content/internal/fetcher"
	"github.com/rohmanhakim/wiki-content/internal/mdconvert"
	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/internal/sanitizer"
	"github.com/rohmanhakim/wiki-content/internal/storage"
	"github.com/rohmanhakim/wiki-content/internal/wiki"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
	"github.com/rohmanhakim/wiki-content/pkg/hashutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fetcherMock is a testify mock for fetcher.Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(ctx context.Context, rawURL string) (fetcher.FetchResult, failure.ClassifiedError) {
	args := f.Called(ctx, rawURL)
	result := args.Get(0).(fetcher.FetchResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

// sanitizerMock is a testify mock for sanitizer.Sanitizer
type sanitizerMock struct {
	mock.Mock
}

func (s *sanitizerMock) Clean(content string) (sanitizer.CleanResult, failure.ClassifiedError) {
	args := s.Called(content)
	result := args.Get(0).(sanitizer.CleanResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

// convertMock is a testify mock for mdconvert.ConvertRule
type convertMock struct {
	mock.Mock
}

func (c *convertMock) Convert(cleanResult sanitizer.CleanResult) (mdconvert.ConversionResult, failure.ClassifiedError) {
	args := c.Called(cleanResult)
	result := args.Get(0).(mdconvert.ConversionResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

// storageMock is a testify mock for storage.Sink
type storageMock struct {
	mock.Mock
}

func (s *storageMock) Write(outputDir string, doc storage.Document, hashAlgo hashutil.HashAlgo) (storage.WriteResult, failure.ClassifiedError) {
	args := s.Called(outputDir, doc, hashAlgo)
	result := args.Get(0).(storage.WriteResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

// recordedError is one RecordError call
type recordedError struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
}

// metadataSinkMock records error calls; other events are ignored
type metadataSinkMock struct {
	mu     sync.Mutex
	errors []recordedError
}

func (m *metadataSinkMock) RecordFetch(string, int, time.Duration, string, int, int) {}

func (m *metadataSinkMock) RecordWarning(string, string, string, []metadata.Attribute) {}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, recordedError{packageName, action, cause, details})
}

func (m *metadataSinkMock) RecordArtifact(metadata.ArtifactKind, string, []metadata.Attribute) {}

func (m *metadataSinkMock) recordedErrors() []recordedError {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedError(nil), m.errors...)
}

// stages bundles the mocks behind a Service under test
type stages struct {
	fetcher   *fetcherMock
	sanitizer *sanitizerMock
	convert   *convertMock
	storage   *storageMock
	sink      *metadataSinkMock
}

func newServiceForTest(t *testing.T, format config.OutputFormat) (wiki.Service, stages) {
	t.Helper()
	cfg, err := config.WithDefault().WithFormat(format).Build()
	require.NoError(t, err)

	st := stages{
		fetcher:   new(fetcherMock),
		sanitizer: new(sanitizerMock),
		convert:   new(convertMock),
		storage:   new(storageMock),
		sink:      &metadataSinkMock{},
	}
	svc := wiki.NewServiceWithDeps(cfg, st.sink, st.fetcher, st.sanitizer, st.convert, st.storage)
	return svc, st
}

func (s stages) assertExpectations(t *testing.T) {
	t.Helper()
	s.fetcher.AssertExpectations(t)
	s.sanitizer.AssertExpectations(t)
	s.convert.AssertExpectations(t)
	s.storage.AssertExpectations(t)
}
