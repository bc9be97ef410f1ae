package metadata

import (
	"time"

	"go.uber.org/zap"
)

/*
Metadata Collected
- Fetch status codes, durations and redirect hops
- Absence warnings (blank input, unusable status, missing content block)
- Reported failures with their canonical cause
- Written artifacts with their hashes

Metadata is write-only.
No component may read metadata to influence fetch or clean decisions.
*/

type MetadataSink interface {
	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		sizeByte int,
		redirectHop int,
	)
	RecordWarning(
		packageName string,
		action string,
		message string,
		attrs []Attribute,
	)
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

// Compile-time interface check
var (
	_ MetadataSink = (*Recorder)(nil)
	_ MetadataSink = (*NoopSink)(nil)
)

// Recorder writes metadata events as structured zap entries.
// It is safe for concurrent use.
type Recorder struct {
	logger *zap.Logger
}

func NewRecorder(logger *zap.Logger) Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	sizeByte int,
	redirectHop int,
) {
	r.logger.Debug("fetch",
		zap.String(string(AttrURL), fetchUrl),
		zap.Int(string(AttrHTTPStatus), httpStatus),
		zap.Duration("duration", duration),
		zap.String("content_type", contentType),
		zap.Int("size_byte", sizeByte),
		zap.Int("redirect_hop", redirectHop),
	)
}

func (r *Recorder) RecordWarning(
	packageName string,
	action string,
	message string,
	attrs []Attribute,
) {
	fields := []zap.Field{
		zap.String("package", packageName),
		zap.String("action", action),
	}
	r.logger.Warn(message, append(fields, attrFields(attrs)...)...)
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	fields := []zap.Field{
		zap.Time("observed_at", observedAt),
		zap.String("package", packageName),
		zap.String("action", action),
		zap.Stringer("cause", cause),
	}
	r.logger.Error(details, append(fields, attrFields(attrs)...)...)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String(string(AttrWritePath), path),
	}
	r.logger.Info("artifact written", append(fields, attrFields(attrs)...)...)
}

func attrFields(attrs []Attribute) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, zap.String(string(attr.Key), attr.Value))
	}
	return fields
}

// NoopSink implements MetadataSink but does nothing.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	sizeByte int,
	redirectHop int,
) {
}

func (n *NoopSink) RecordWarning(packageName string, action string, message string, attrs []Attribute) {}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
