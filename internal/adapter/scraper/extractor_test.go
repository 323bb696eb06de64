package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"wiki-quiz/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport serves a canned response and records every request.
type countingTransport struct {
	calls  atomic.Int32
	status int
	body   string
	err    error
	lastUA atomic.Value
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	c.lastUA.Store(req.Header.Get("User-Agent"))
	if c.err != nil {
		return nil, c.err
	}
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
		Request:    req,
	}, nil
}

func newTestExtractor(rt *countingTransport) *Extractor {
	return NewExtractor("test-agent/1.0", 0, WithHTTPClient(&http.Client{Transport: rt}))
}

const articleFixture = `<!DOCTYPE html>
<html>
<head><title>Alan Turing - Wikipedia</title></head>
<body>
<h1 id="firstHeading">Alan Turing</h1>
<div id="mw-content-text">
  <table class="infobox"><tr><td><p>Born 23 June 1912</p></td></tr></table>
  <p>Alan Turing was an English mathematician.<sup>[1]</sup></p>
  <p>   </p>
  <p>He worked at Bletchley Park during the war.</p>
  <div class="navbox"><p>Navigation paragraph</p></div>
  <p>He is widely considered the father of computer science.</p>
  <ol class="references"><li><p>Reference paragraph</p></li></ol>
  <script>var x = "<p>not a paragraph</p>";</script>
</div>
</body>
</html>`

func TestExtract_OffListHostMakesNoRequest(t *testing.T) {
	urls := []string{
		"https://example.com/wiki/Alan_Turing",
		"https://notwikipedia.org/wiki/Alan_Turing",
		"https://wikipedia.org.evil.com/wiki/Alan_Turing",
		"ftp://en.wikipedia.org/wiki/Alan_Turing",
		"en.wikipedia.org/wiki/Alan_Turing",
		"",
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			rt := &countingTransport{body: articleFixture}
			_, err := newTestExtractor(rt).Extract(context.Background(), u)

			require.Error(t, err)
			assert.True(t, domain.HasCode(err, domain.CodeInvalidSource), "got %v", err)
			assert.Equal(t, int32(0), rt.calls.Load())
		})
	}
}

func TestIsAllowedHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"en.wikipedia.org", true},
		{"wikipedia.org", true},
		{"EN.Wikipedia.ORG", true},
		{"en.wikipedia.org:443", true},
		{"de.wikipedia.org", true},
		{"en.m.wikipedia.org", true},
		{"wikipedia.org.", true},
		{"fakewikipedia.org", false},
		{"wikipedia.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedHost(tt.host))
		})
	}
}

func TestExtract_StripsNoiseAndJoinsParagraphs(t *testing.T) {
	rt := &countingTransport{body: articleFixture}

	doc, err := newTestExtractor(rt).Extract(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	require.NoError(t, err)

	want := &domain.ArticleDocument{
		Title: "Alan Turing",
		Body: "Alan Turing was an English mathematician.\n\n" +
			"He worked at Bletchley Park during the war.\n\n" +
			"He is widely considered the father of computer science.",
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int32(1), rt.calls.Load())
	assert.Equal(t, "test-agent/1.0", rt.lastUA.Load())
}

func TestExtract_IsDeterministic(t *testing.T) {
	rt := &countingTransport{body: articleFixture}
	e := newTestExtractor(rt)

	first, err := e.Extract(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Extract() differs (-first +second):\n%s", diff)
	}
}

func TestExtract_NoParagraphs(t *testing.T) {
	pages := map[string]string{
		"empty content region":  `<html><body><h1 id="firstHeading">Stub</h1><div id="mw-content-text"><div>no prose</div></div></body></html>`,
		"only noise paragraphs": `<html><body><div id="mw-content-text"><table><tr><td><p>cell</p></td></tr></table><div class="references"><p>ref</p></div></div></body></html>`,
		"whitespace paragraphs": "<html><body><article><p> </p><p>\n</p></article></body></html>",
	}

	for name, page := range pages {
		t.Run(name, func(t *testing.T) {
			rt := &countingTransport{body: page}
			e := newTestExtractor(rt)

			for i := 0; i < 2; i++ {
				_, err := e.Extract(context.Background(), "https://en.wikipedia.org/wiki/Stub")
				require.Error(t, err)
				assert.True(t, domain.HasCode(err, domain.CodeContentNotFound), "got %v", err)
			}
		})
	}
}

func TestExtract_FetchFailures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		rt := &countingTransport{status: http.StatusNotFound, body: "missing"}
		_, err := newTestExtractor(rt).Extract(context.Background(), "https://en.wikipedia.org/wiki/Nope")

		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("transport error", func(t *testing.T) {
		cause := errors.New("connection refused")
		rt := &countingTransport{err: cause}
		_, err := newTestExtractor(rt).Extract(context.Background(), "https://en.wikipedia.org/wiki/Go")

		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))
		assert.ErrorIs(t, err, cause)
	})
}

func TestParseDocument_FallbackChains(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "title element when no heading",
			html:      `<html><head><title>Page Title</title></head><body><article><p>Body text.</p></article></body></html>`,
			wantTitle: "Page Title",
			wantBody:  "Body text.",
		},
		{
			name:      "no title at all",
			html:      `<html><body><p>Only body.</p></body></html>`,
			wantTitle: "No title",
			wantBody:  "Only body.",
		},
		{
			name:      "content region preferred over body",
			html:      `<html><body><p>Outside.</p><div id="mw-content-text"><p>Inside.</p></div></body></html>`,
			wantTitle: "No title",
			wantBody:  "Inside.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &countingTransport{body: tt.html}
			doc, err := newTestExtractor(rt).Extract(context.Background(), "https://en.wikipedia.org/wiki/X")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title)
			assert.Equal(t, tt.wantBody, doc.Body)
		})
	}
}
