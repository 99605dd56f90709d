package orchestrate

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/country-outline/pkg/config"
	"github.com/Sriram-PR/country-outline/pkg/fetch"
	"github.com/Sriram-PR/country-outline/pkg/models"
	"github.com/Sriram-PR/country-outline/pkg/outline"
	"github.com/Sriram-PR/country-outline/pkg/utils"
)

// ArticleFetcher retrieves the article page for a country
type ArticleFetcher interface {
	FetchArticle(ctx context.Context, country string) (*fetch.Article, error)
}

// Orchestrator runs the fetch and outline extraction steps for one country.
// It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	fetcher ArticleFetcher
	parser  string
	log     *logrus.Entry
}

// NewOrchestrator wires an Orchestrator with the HTTP client and fetcher
// described by appCfg.
func NewOrchestrator(appCfg *config.AppConfig, log *logrus.Entry) *Orchestrator {
	httpClient := fetch.NewClient(appCfg.HTTPClientSettings, log)
	fetcher := fetch.NewFetcher(httpClient, appCfg, log)
	return NewOrchestratorWithFetcher(fetcher, appCfg.Parser, log)
}

// NewOrchestratorWithFetcher builds an Orchestrator around an existing fetcher.
func NewOrchestratorWithFetcher(fetcher ArticleFetcher, parser string, log *logrus.Entry) *Orchestrator {
	if parser == "" {
		parser = config.ParserGoquery
	}
	return &Orchestrator{
		fetcher: fetcher,
		parser:  parser,
		log:     log.WithField("component", "orchestrate"),
	}
}

// Outline fetches the article for country and extracts its outline.
// Errors are returned unwrapped so utils.ErrorMessage reports the fault text as-is.
func (o *Orchestrator) Outline(ctx context.Context, country string) (*models.OutlineResult, error) {
	startTime := time.Now()
	reqLog := o.log.WithField("country", country)

	if strings.TrimSpace(country) == "" {
		reqLog.Warn("Rejected blank country")
		return nil, utils.ErrMissingCountry
	}

	article, err := o.fetcher.FetchArticle(ctx, country)
	if err != nil {
		o.logFailure(reqLog, err, startTime)
		return nil, err
	}
	reqLog = reqLog.WithField("url", article.URL)

	tree, err := outline.Parse(bytes.NewReader(article.Body), o.parser)
	if err != nil {
		o.logFailure(reqLog, err, startTime)
		return nil, err
	}
	doc, err := outline.Extract(tree)
	if err != nil {
		o.logFailure(reqLog, err, startTime)
		return nil, err
	}

	result := &models.OutlineResult{
		Country:  country,
		URL:      article.URL,
		Outline:  doc.Markdown(),
		Document: doc,
	}

	reqLog.WithFields(logrus.Fields{
		"headings": len(doc.Headings),
		"duration": time.Since(startTime),
	}).Info("Outline generated")
	return result, nil
}

func (o *Orchestrator) logFailure(entry *logrus.Entry, err error, startTime time.Time) {
	entry.WithFields(logrus.Fields{
		"kind":     utils.Kind(err),
		"category": utils.CategorizeError(err),
		"duration": time.Since(startTime),
	}).Warnf("Outline failed: %v", err)
}
