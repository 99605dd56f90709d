package orchestrate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/country-outline/pkg/config"
	"github.com/Sriram-PR/country-outline/pkg/fetch"
	"github.com/Sriram-PR/country-outline/pkg/utils"
)

const vanuatuPage = `<html><body>
<h1 id="firstHeading">Vanuatu</h1>
<div id="mw-content-text"><h2>History</h2><h2>Tools</h2></div>
</body></html>`

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

// stubFetcher returns canned articles without any network access
type stubFetcher struct {
	mu    sync.Mutex
	calls []string
	body  string
	err   error
}

func (s *stubFetcher) FetchArticle(_ context.Context, country string) (*fetch.Article, error) {
	s.mu.Lock()
	s.calls = append(s.calls, country)
	s.mu.Unlock()
	article := &fetch.Article{
		Country:    country,
		URL:        fetch.ArticleURL(config.DefaultWikiBaseURL, country),
		StatusCode: http.StatusOK,
		Body:       []byte(s.body),
	}
	if s.err != nil {
		return article, s.err
	}
	return article, nil
}

func TestOutline_Success(t *testing.T) {
	for _, parser := range []string{config.ParserGoquery, config.ParserHTML} {
		t.Run(parser, func(t *testing.T) {
			stub := &stubFetcher{body: vanuatuPage}
			o := NewOrchestratorWithFetcher(stub, parser, testLogger())

			result, err := o.Outline(context.Background(), "Vanuatu")

			require.NoError(t, err)
			assert.Equal(t, "Vanuatu", result.Country)
			assert.Equal(t, "https://en.wikipedia.org/wiki/Vanuatu", result.URL)
			assert.Equal(t, "## Contents\n\n# Vanuatu\n\n## History\n", result.Outline)
			assert.Len(t, result.Document.Headings, 1)
			assert.Equal(t, []string{"Vanuatu"}, stub.calls)
		})
	}
}

func TestOutline_CountryEchoedAsRequested(t *testing.T) {
	stub := &stubFetcher{body: vanuatuPage}
	o := NewOrchestratorWithFetcher(stub, "", testLogger())

	result, err := o.Outline(context.Background(), "united states")

	require.NoError(t, err)
	assert.Equal(t, "united states", result.Country)
	assert.Equal(t, "https://en.wikipedia.org/wiki/united_states", result.URL)
}

func TestOutline_Failures(t *testing.T) {
	tests := []struct {
		name    string
		country string
		stub    *stubFetcher
		kind    string
		message string
	}{
		{
			name:    "fetch failed",
			country: "Nonexistentxyz",
			stub:    &stubFetcher{err: &utils.FetchError{Country: "Nonexistentxyz", StatusCode: 404}},
			kind:    utils.KindFetchFailed,
			message: "Could not fetch page for 'Nonexistentxyz'",
		},
		{
			name:    "content not found",
			country: "Vanuatu",
			stub:    &stubFetcher{body: `<html><body><h1 id="firstHeading">Vanuatu</h1></body></html>`},
			kind:    utils.KindContentNotFound,
			message: "Could not find content",
		},
		{
			name:    "network error",
			country: "Vanuatu",
			stub:    &stubFetcher{err: errors.New(`Get "https://en.wikipedia.org/wiki/Vanuatu": dial tcp: lookup en.wikipedia.org: no such host`)},
			kind:    utils.KindUnexpected,
			message: `Get "https://en.wikipedia.org/wiki/Vanuatu": dial tcp: lookup en.wikipedia.org: no such host`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrchestratorWithFetcher(tt.stub, config.ParserGoquery, testLogger())

			result, err := o.Outline(context.Background(), tt.country)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.kind, utils.Kind(err))
			assert.Equal(t, tt.message, utils.ErrorMessage(err))
		})
	}
}

func TestOutline_BlankCountry(t *testing.T) {
	stub := &stubFetcher{body: vanuatuPage}
	o := NewOrchestratorWithFetcher(stub, "", testLogger())

	for _, country := range []string{"", "   ", "\t"} {
		_, err := o.Outline(context.Background(), country)
		assert.ErrorIs(t, err, utils.ErrMissingCountry)
	}
	assert.Empty(t, stub.calls)
}

func TestOutline_UnknownParser(t *testing.T) {
	o := NewOrchestratorWithFetcher(&stubFetcher{body: vanuatuPage}, "lxml", testLogger())

	_, err := o.Outline(context.Background(), "Vanuatu")

	assert.ErrorIs(t, err, utils.ErrParsing)
}

func TestOutline_ConcurrentRequestsIndependent(t *testing.T) {
	stub := &stubFetcher{body: vanuatuPage}
	o := NewOrchestratorWithFetcher(stub, "", testLogger())

	var wg sync.WaitGroup
	outlines := make([]string, 16)
	for i := range outlines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := o.Outline(context.Background(), "Vanuatu")
			if err == nil {
				outlines[i] = result.Outline
			}
		}(i)
	}
	wg.Wait()

	for _, out := range outlines {
		assert.Equal(t, "## Contents\n\n# Vanuatu\n\n## History\n", out)
	}
}

func TestNewOrchestrator_EndToEndWithUpstream(t *testing.T) {
	var gotUA atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		if r.URL.Path != "/wiki/Vanuatu" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, vanuatuPage)
	}))
	t.Cleanup(server.Close)

	cfg := &config.AppConfig{WikiBaseURL: server.URL + "/wiki/"}
	_, err := cfg.Validate()
	require.NoError(t, err)
	o := NewOrchestrator(cfg, testLogger())

	result, err := o.Outline(context.Background(), "Vanuatu")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/wiki/Vanuatu", result.URL)
	assert.Equal(t, "## Contents\n\n# Vanuatu\n\n## History\n", result.Outline)
	assert.Equal(t, config.DefaultUserAgent, gotUA.Load())

	_, err = o.Outline(context.Background(), "Nonexistentxyz")
	require.Error(t, err)
	assert.Equal(t, "Could not fetch page for 'Nonexistentxyz'", utils.ErrorMessage(err))
}

func TestNewOrchestrator_OversizedPageYieldsNoOutline(t *testing.T) {
	page := `<html><body><h1 id="firstHeading">Vanuatu</h1><div id="mw-content-text"><h2>History</h2>` +
		strings.Repeat("<p>Lorem ipsum dolor sit amet.</p>", 200) +
		`<h2>Economy</h2></div></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, page)
	}))
	t.Cleanup(server.Close)

	cfg := &config.AppConfig{WikiBaseURL: server.URL + "/wiki/", MaxBodyBytes: 200}
	_, err := cfg.Validate()
	require.NoError(t, err)
	o := NewOrchestrator(cfg, testLogger())

	result, err := o.Outline(context.Background(), "Vanuatu")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, utils.ErrResponseBodyRead)
}
