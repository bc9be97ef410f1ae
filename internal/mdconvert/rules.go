package mdconvert

import (
	"errors"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/internal/sanitizer"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
	"golang.org/x/net/html"
)

/*
Conversion Rules
- Headings, lists, code and tables map structurally (GFM)
- Links and images are kept exactly as the sanitizer left them
- DOM order preserved

Conversion is an optional display step: the cleaned HTML fragment remains
the primary output.
*/

// ConvertRule defines the interface for rendering a cleaned fragment as Markdown.
type ConvertRule interface {
	Convert(cleanResult sanitizer.CleanResult) (ConversionResult, failure.ClassifiedError)
}

// Compile-time interface check
var _ ConvertRule = (*StrictConversionRule)(nil)

type StrictConversionRule struct {
	metadataSink metadata.MetadataSink
}

func NewRule(metadataSink metadata.MetadataSink) *StrictConversionRule {
	return &StrictConversionRule{
		metadataSink: metadataSink,
	}
}

func (s *StrictConversionRule) Convert(
	cleanResult sanitizer.CleanResult,
) (ConversionResult, failure.ClassifiedError) {
	conversionResult, err := convert(cleanResult.GetContentNode())
	if err != nil {
		var conversionError *ConversionError
		errors.As(err, &conversionError)

		s.metadataSink.RecordError(
			time.Now(),
			"mdconvert",
			"StrictConversionRule.Convert",
			mapConversionErrorToMetadataCause(conversionError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrMessage, conversionError.Message),
			},
		)
		return ConversionResult{}, conversionError
	}
	return conversionResult, nil
}

// convert is a stateless pure function that renders the content block node
// as Markdown.
func convert(contentNode *html.Node) (ConversionResult, *ConversionError) {
	if contentNode == nil {
		return ConversionResult{}, &ConversionError{
			Message:   "cannot convert an absent content block",
			Retryable: false,
			Cause:     ErrCauseNoContent,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(contentNode)
	if err != nil {
		return ConversionResult{}, &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	return NewConversionResult(markdown, extractLinkRefs(contentNode)), nil
}

// extractLinkRefs returns the href of every anchor and the src of every
// image below contentNode, in document order.
func extractLinkRefs(contentNode *html.Node) []LinkRef {
	var linkRefs []LinkRef

	doc := goquery.NewDocumentFromNode(contentNode)
	doc.Find("a[href], img[src]").Each(func(i int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "a":
			href, _ := s.Attr("href")
			linkRefs = append(linkRefs, toLinkRef("a", href))
		case "img":
			src, _ := s.Attr("src")
			linkRefs = append(linkRefs, toLinkRef("img", src))
		}
	})

	return linkRefs
}

func toLinkRef(tagName, raw string) LinkRef {
	var kind LinkKind
	switch {
	case tagName == "img":
		kind = KindImage
	case strings.HasPrefix(raw, "#"):
		kind = KindAnchor
	default:
		kind = KindNavigation
	}
	return NewLinkRef(raw, kind)
}
