package wiki_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/wiki-content/internal/config"
	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/internal/wiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confluencePage = `<!DOCTYPE html>
<html><head><title>Git Plugin</title></head>
<body>
<div id="header">navigation</div>
<div class="wiki-content"><h2>Usage</h2><p>See <a href="/display/JENKINS/Home">home</a> and <img src="/images/icon.png"></p><div class="table-wrap"><table><tr><td>versions</td></tr></table></div></div>
</body></html>`

func newWikiServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/display/JENKINS/Git+Plugin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(confluencePage))
	})
	mux.HandleFunc("/pages/viewpage.action", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/display/JENKINS/Git+Plugin", http.StatusMovedPermanently)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestPipeline_RetrieveRenderStore(t *testing.T) {
	server := newWikiServer(t)
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	svc := wiki.NewService(cfg, &metadata.NoopSink{})

	page, retrieveErr := svc.Retrieve(context.Background(), server.URL+"/pages/viewpage.action")
	require.Nil(t, retrieveErr)
	require.False(t, page.IsAbsent())

	fragment := page.Fragment()
	assert.Contains(t, fragment, `href="https://wiki.jenkins-ci.org/display/JENKINS/Home"`)
	assert.Contains(t, fragment, `src="https://wiki.jenkins-ci.org/images/icon.png"`)
	assert.NotContains(t, fragment, "versions")
	assert.NotContains(t, fragment, "navigation")

	rendered, renderErr := svc.Render(page)
	require.Nil(t, renderErr)

	outputDir := t.TempDir()
	result, storeErr := svc.Store(outputDir, page, rendered)
	require.Nil(t, storeErr)
	assert.Equal(t, ".html", filepath.Ext(result.Path()))

	written, readErr := os.ReadFile(result.Path())
	require.NoError(t, readErr)
	assert.Equal(t, fragment, string(written))
}

func TestPipeline_MarkdownOutput(t *testing.T) {
	server := newWikiServer(t)
	cfg, err := config.WithDefault().WithFormat(config.FormatMarkdown).Build()
	require.NoError(t, err)

	svc := wiki.NewService(cfg, &metadata.NoopSink{})

	page, retrieveErr := svc.Retrieve(context.Background(), server.URL+"/display/JENKINS/Git+Plugin")
	require.Nil(t, retrieveErr)

	rendered, renderErr := svc.Render(page)
	require.Nil(t, renderErr)
	assert.Equal(t, metadata.ArtifactMarkdown, rendered.Kind())
	assert.Contains(t, string(rendered.Content()), "## Usage")
	assert.Contains(t, string(rendered.Content()), "(https://wiki.jenkins-ci.org/display/JENKINS/Home)")
}

func TestPipeline_MissingPageIsAbsent(t *testing.T) {
	server := newWikiServer(t)
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	svc := wiki.NewService(cfg, &metadata.NoopSink{})

	page, retrieveErr := svc.Retrieve(context.Background(), server.URL+"/display/JENKINS/Missing")
	require.Nil(t, retrieveErr)
	assert.True(t, page.IsAbsent())
	assert.Equal(t, wiki.StageFetch, page.AbsentAt())
}
