package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// AllowedHosts are the hosts articles may be fetched from. Subdomains of an
// entry are accepted as well.
var AllowedHosts = []string{"wikipedia.org", "en.wikipedia.org"}

const (
	defaultTimeout = 10 * time.Second
	noTitle        = "No title"
	// maxBodyBytes bounds how much of a response is parsed.
	maxBodyBytes = 10 << 20
)

// Subtrees removed from the content region before paragraphs are collected.
const noiseSelector = "sup, table, style, script, aside, noscript, .references, .navbox, .vertical-navbox, .infobox"

// Content regions, tried in order.
var contentSelectors = []string{"#mw-content-text", "article", "body"}

// Extractor fetches Wikipedia articles and reduces them to their prose.
type Extractor struct {
	client    *http.Client
	userAgent string
}

type Option func(*Extractor)

// WithHTTPClient replaces the default client. The client's own timeout applies.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) {
		e.client = c
	}
}

// NewExtractor creates an Extractor. A non-positive timeout falls back to ten seconds.
func NewExtractor(userAgent string, timeout time.Duration, opts ...Option) *Extractor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	e := &Extractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements domain.ArticleExtractor.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*domain.ArticleDocument, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	logger.Get().Debug("Fetching article", zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, domain.NewFetchError(rawURL, err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, domain.NewFetchError(rawURL, fmt.Errorf("unexpected status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewFetchError(rawURL, fmt.Errorf("parse html: %w", err))
	}

	article, err := ParseDocument(doc)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			domainErr.WithContext("url", rawURL)
		}
		return nil, err
	}

	logger.Get().Info("Article extracted",
		zap.String("url", rawURL),
		zap.String("title", article.Title),
		zap.Int("body_length", len(article.Body)))
	return article, nil
}

// ValidateURL parses rawURL and checks its scheme and host against AllowedHosts.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, domain.NewInvalidSourceError(rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, domain.NewInvalidSourceError(rawURL, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if !IsAllowedHost(u.Host) {
		return nil, domain.NewInvalidSourceError(rawURL, fmt.Errorf("host %q is not allowed", u.Host))
	}
	return u, nil
}

// IsAllowedHost reports whether host (optionally with a port) is an allowed
// host or a subdomain of one. Comparison is case-insensitive.
func IsAllowedHost(host string) bool {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return false
	}
	for _, allowed := range AllowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// ParseDocument extracts the title and paragraph text from a parsed page.
// It returns a CONTENT_NOT_FOUND DomainError when no content region or no
// non-empty paragraph is present.
func ParseDocument(doc *goquery.Document) (*domain.ArticleDocument, error) {
	title := extractTitle(doc)

	var content *goquery.Selection
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			content = s
			break
		}
	}
	if content == nil {
		return nil, domain.NewContentNotFoundError("", "could not find main content")
	}

	content.Find(noiseSelector).Remove()

	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return nil, domain.NewContentNotFoundError("", "article has no paragraph text")
	}

	return &domain.ArticleDocument{
		Title: title,
		Body:  strings.Join(paragraphs, domain.ParagraphSeparator),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("#firstHeading").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return noTitle
}
