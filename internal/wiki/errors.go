package wiki

import (
	"fmt"

	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
)

type ServiceErrorCause string

const (
	ErrCausePageAbsent        ServiceErrorCause = "page has no content"
	ErrCauseUnsupportedFormat ServiceErrorCause = "unsupported output format"
)

type ServiceError struct {
	Message   string
	Retryable bool
	Cause     ServiceErrorCause
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("wiki error: %s", e.Cause)
}

func (e *ServiceError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapServiceErrorToMetadataCause maps service-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapServiceErrorToMetadataCause(err *ServiceError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCausePageAbsent, ErrCauseUnsupportedFormat:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
