package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/country-outline/pkg/config"
	"github.com/Sriram-PR/country-outline/pkg/utils"
)

// Article is a fetched article page.
type Article struct {
	Country    string
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher retrieves Wikipedia articles. It makes exactly one request per
// call; there is no retry.
type Fetcher struct {
	client       *http.Client
	baseURL      string
	userAgent    string
	maxBodyBytes int64
	log          *logrus.Entry
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, cfg *config.AppConfig, log *logrus.Entry) *Fetcher {
	f := &Fetcher{
		client:       client,
		baseURL:      cfg.WikiBaseURL,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		log:          log.WithField("component", "fetch"),
	}
	if f.baseURL == "" {
		f.baseURL = config.DefaultWikiBaseURL
	}
	if f.userAgent == "" {
		f.userAgent = config.DefaultUserAgent
	}
	if f.maxBodyBytes <= 0 {
		f.maxBodyBytes = config.DefaultMaxBodyBytes
	}
	return f
}

// ArticleURL builds the article URL for a country name: spaces become
// underscores and each path segment is percent-encoded.
func ArticleURL(baseURL, country string) string {
	title := strings.ReplaceAll(country, " ", "_")
	segments := strings.Split(title, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return baseURL + strings.Join(segments, "/")
}

// URLFor returns the article URL this fetcher would request for country.
func (f *Fetcher) URLFor(country string) string {
	return ArticleURL(f.baseURL, country)
}

// FetchArticle downloads the article for country.
// A non-200 status yields a *utils.FetchError together with the Article,
// whose Body is left empty.
func (f *Fetcher) FetchArticle(ctx context.Context, country string) (*Article, error) {
	article := &Article{Country: country, URL: f.URLFor(country)}
	reqLog := f.log.WithFields(logrus.Fields{"country": country, "url": article.URL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, article.URL, nil)
	if err != nil {
		return article, fmt.Errorf("%w: %v", utils.ErrRequestCreation, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		reqLog.WithError(err).Warn("Request failed")
		return article, err
	}
	defer resp.Body.Close()

	article.StatusCode = resp.StatusCode
	resLog := reqLog.WithFields(logrus.Fields{"status_code": resp.StatusCode, "status": resp.Status})

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resLog.Warn("Upstream returned non-success status")
		return article, &utils.FetchError{Country: country, StatusCode: resp.StatusCode}
	}

	// One byte past the limit tells a page of exactly maxBodyBytes from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		resLog.WithError(err).Warn("Reading body failed")
		return article, fmt.Errorf("%w: %v", utils.ErrResponseBodyRead, err)
	}
	if int64(len(body)) > f.maxBodyBytes {
		resLog.WithField("limit", f.maxBodyBytes).Warn("Body exceeds size limit")
		return article, fmt.Errorf("%w: body exceeds %d bytes", utils.ErrResponseBodyRead, f.maxBodyBytes)
	}
	article.Body = body

	resLog.WithField("bytes", len(body)).Debug("Successfully fetched")
	return article, nil
}
