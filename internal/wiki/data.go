package wiki

import (
	"github.com/rohmanhakim/wiki-content/internal/fetcher"
	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/internal/sanitizer"
)

// Stage names the pipeline step that produced an absent Page.
type Stage string

const (
	StageNone  Stage = ""
	StageFetch Stage = "fetch"
	StageClean Stage = "clean"
)

// Page is the outcome of retrieving one wiki page: the fetch result and,
// when the fetch produced content, the clean result.
type Page struct {
	url         string
	fetchResult fetcher.FetchResult
	cleanResult sanitizer.CleanResult
	absentAt    Stage
}

func (p *Page) URL() string {
	return p.url
}

func (p *Page) Fragment() string {
	return p.cleanResult.Fragment()
}

func (p *Page) IsAbsent() bool {
	return p.absentAt != StageNone
}

// AbsentAt reports which stage yielded no content, or StageNone.
func (p *Page) AbsentAt() Stage {
	return p.absentAt
}

func (p *Page) FetchResult() fetcher.FetchResult {
	return p.fetchResult
}

func (p *Page) CleanResult() sanitizer.CleanResult {
	return p.cleanResult
}

func newPage(url string, fetchResult fetcher.FetchResult, cleanResult sanitizer.CleanResult) Page {
	return Page{
		url:         url,
		fetchResult: fetchResult,
		cleanResult: cleanResult,
	}
}

func newAbsentPage(url string, fetchResult fetcher.FetchResult, cleanResult sanitizer.CleanResult, stage Stage) Page {
	return Page{
		url:         url,
		fetchResult: fetchResult,
		cleanResult: cleanResult,
		absentAt:    stage,
	}
}

// Rendered is a cleaned fragment in its output format.
type Rendered struct {
	content []byte
	kind    metadata.ArtifactKind
}

func (r *Rendered) Content() []byte {
	return r.content
}

func (r *Rendered) Kind() metadata.ArtifactKind {
	return r.kind
}
