package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
	"github.com/rohmanhakim/wiki-content/pkg/fileutil"
	"github.com/rohmanhakim/wiki-content/pkg/hashutil"
	"github.com/rohmanhakim/wiki-content/pkg/urlutil"
)

/*
Responsibilities
- Persist cleaned wiki fragments (HTML or Markdown)
- Ensure deterministic filenames

Output Characteristics
- Flat directory layout: <outputDir>/<url hash>.<ext>
- Idempotent writes
- Overwrite-safe reruns
*/

// urlHashLen is the number of hex characters of the identity hash used as filename.
const urlHashLen = 12

type Sink interface {
	Write(
		outputDir string,
		doc Document,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

var _ Sink = (*LocalSink)(nil)

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	doc Document,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, doc, hashAlgo)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, doc.SourceURL()),
				metadata.NewAttr(metadata.AttrWritePath, err.Path),
				metadata.NewAttr(metadata.AttrMessage, err.Message),
			},
		)
		return WriteResult{}, err
	}
	s.metadataSink.RecordArtifact(
		doc.Kind(),
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrURL, doc.SourceURL()),
			metadata.NewAttr(metadata.AttrURLHash, writeResult.URLHash()),
			metadata.NewAttr(metadata.AttrContentHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	doc Document,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	identity, err := identityOf(doc)
	if err != nil {
		return WriteResult{}, err
	}

	urlHash, hashErr := hashutil.ShortHash(identity, hashAlgo, urlHashLen)
	if hashErr != nil {
		return WriteResult{}, &StorageError{
			Message:   hashErr.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}
	contentHash, hashErr := hashutil.HashBytes(doc.Content(), hashAlgo)
	if hashErr != nil {
		return WriteResult{}, &StorageError{
			Message:   hashErr.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}

	if dirErr := fileutil.EnsureDir(outputDir); dirErr != nil {
		return WriteResult{}, fromFileError(dirErr, outputDir)
	}

	fullPath := filepath.Join(outputDir, urlHash+doc.extension())
	if writeErr := fileutil.WriteFile(fullPath, doc.Content()); writeErr != nil {
		return WriteResult{}, fromFileError(writeErr, fullPath)
	}

	return NewWriteResult(urlHash, fullPath, contentHash), nil
}

// identityOf returns the bytes that name a document on disk: its canonical
// source URL, or its content when no URL is known.
func identityOf(doc Document) ([]byte, *StorageError) {
	if strings.TrimSpace(doc.SourceURL()) == "" {
		return doc.Content(), nil
	}
	canonical, err := urlutil.CanonicalString(doc.SourceURL())
	if err != nil {
		return nil, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidSourceURL,
		}
	}
	return []byte(canonical), nil
}

func fromFileError(err error, path string) *StorageError {
	var fileErr *fileutil.FileError
	if !errors.As(err, &fileErr) {
		return &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      path,
		}
	}

	cause := ErrCauseWriteFailure
	switch fileErr.Cause {
	case fileutil.ErrCausePathError:
		cause = ErrCausePathError
	case fileutil.ErrCauseDiskFull:
		cause = ErrCauseDiskFull
	}
	return &StorageError{
		Message:   fileErr.Message,
		Retryable: fileErr.Retryable,
		Cause:     cause,
		Path:      path,
	}
}
