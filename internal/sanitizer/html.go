/*
Responsibilities
- Locate the wiki content block
- Make root-relative links and resources absolute
- Drop presentation wrappers

Cleaning is a pure function of the input string: no network access,
no timestamps, no randomness.
*/
package sanitizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
)

type HtmlSanitizer struct {
	metadataSink metadata.MetadataSink
	param        SanitizeParam
}

func NewHTMLSanitizer(metadataSink metadata.MetadataSink, param SanitizeParam) HtmlSanitizer {
	return HtmlSanitizer{
		metadataSink: metadataSink,
		param:        param,
	}
}

func (h *HtmlSanitizer) Clean(content string) (CleanResult, failure.ClassifiedError) {
	callerMethod := "HtmlSanitizer.Clean"

	if strings.TrimSpace(content) == "" {
		h.metadataSink.RecordWarning("sanitizer", callerMethod, "can't clean empty content", nil)
		return newAbsentResult(AbsenceBlankContent), nil
	}

	result, err := clean(content, h.param)
	if err != nil {
		h.metadataSink.RecordError(
			time.Now(),
			"sanitizer",
			callerMethod,
			mapSanitizationErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrMessage, err.Message),
			},
		)
		return CleanResult{}, err
	}

	if result.IsAbsent() {
		h.metadataSink.RecordWarning(
			"sanitizer",
			callerMethod,
			fmt.Sprintf("%s not found in content", h.param.ContentClass),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrField, h.param.ContentClass),
				metadata.NewAttr(metadata.AttrReason, string(result.AbsenceReason())),
			},
		)
	}

	return result, nil
}

func clean(content string, param SanitizeParam) (CleanResult, *SanitizationError) {
	if !utf8.ValidString(content) {
		return CleanResult{}, &SanitizationError{
			Message:   "content is not valid UTF-8",
			Retryable: false,
			Cause:     ErrCauseUnparseableContent,
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return CleanResult{}, &SanitizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseUnparseableContent,
		}
	}

	blocks := findByClass(doc.Selection, param.ContentClass)
	if blocks.Length() == 0 {
		return newAbsentResult(AbsenceContentBlockMissing), nil
	}
	block := blocks.First()

	rewritten := rewriteRootRelative(block, "href", param.Origin)
	rewritten += rewriteRootRelative(block, "src", param.Origin)
	removed := removeByClass(block, param.NoiseClass)

	fragment, err := block.Html()
	if err != nil {
		return CleanResult{}, &SanitizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseSerializationFailure,
		}
	}

	return newCleanResult(fragment, block.Get(0), rewritten, removed), nil
}

// Summary renders the counters of a present result for log attributes.
func (c *CleanResult) Summary() []metadata.Attribute {
	return []metadata.Attribute{
		metadata.NewAttr(metadata.AttrRewritten, strconv.Itoa(c.rewrittenLinks)),
		metadata.NewAttr(metadata.AttrRemoved, strconv.Itoa(c.removedNodes)),
	}
}
