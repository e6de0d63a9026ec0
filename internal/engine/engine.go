package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/textgap/internal/analysis"
	"github.com/knowledge-engine/textgap/internal/config"
	"github.com/knowledge-engine/textgap/internal/fetcher"
	"github.com/knowledge-engine/textgap/internal/politeness"
)

// DocumentFetcher retrieves the text behind a URL
type DocumentFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.FetchResult, error)
}

// RobotsPolicy decides whether a URL may be fetched
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) (bool, error)
}

// Request is one comparison: inline texts followed by URL documents.
// Nil parameters fall back to the configured defaults.
type Request struct {
	Texts       []string
	URLs        []string
	TopN        *int
	GapBase     *int
	GapTop      *int
	GapMinDelta *float64
}

// Engine resolves document sources and runs the analysis pipeline
type Engine struct {
	Config  *config.Config
	Logger  *logrus.Entry
	Fetcher DocumentFetcher
	// Robots is nil when robots.txt checks are disabled.
	Robots RobotsPolicy

	analyzer  *analysis.Analyzer
	stopwords analysis.StopwordSet

	requests      atomic.Int64
	documents     atomic.Int64
	fetchFailures atomic.Int64
	startTime     time.Time
}

// EngineStats is a snapshot of the engine counters
type EngineStats struct {
	Requests      int64
	Documents     int64
	FetchFailures int64
	StartTime     time.Time
}

func NewEngine(cfg *config.Config, logger *logrus.Entry) (*Engine, error) {
	stopwords := analysis.DefaultStopwords()
	if path := cfg.Analysis.StopwordsFile; path != "" {
		loaded, err := loadStopwords(path)
		if err != nil {
			return nil, err
		}
		stopwords = loaded
		logger.WithFields(logrus.Fields{"file": path, "count": len(stopwords)}).Info("Loaded custom stopwords")
	}

	e := &Engine{
		Config: cfg,
		Logger: logger,
		Fetcher: fetcher.NewFetcher(fetcher.Options{
			Timeout:   cfg.Fetch.Timeout(),
			UserAgent: cfg.Fetch.UserAgent,
			MaxBytes:  cfg.Fetch.MaxDocumentBytes,
		}),
		analyzer:  analysis.NewAnalyzer(analysis.NewTokenizer(stopwords)),
		stopwords: stopwords,
		startTime: time.Now(),
	}
	if cfg.Fetch.RespectRobots {
		e.Robots = politeness.NewRobotsChecker(cfg.Fetch, logger.WithField("component", "robots"))
	}
	return e, nil
}

func loadStopwords(path string) (analysis.StopwordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopwords: %w", err)
	}
	defer f.Close()
	return analysis.ReadStopwords(f)
}

// Stopwords returns the set the analyzer filters
func (e *Engine) Stopwords() analysis.StopwordSet {
	return e.stopwords
}

// Options merges request parameters with the configured defaults
func (e *Engine) Options(req Request) analysis.Options {
	opts := analysis.Options{
		TopN:        e.Config.Analysis.TopN,
		GapBase:     analysis.DefaultGapBase,
		GapTop:      e.Config.Analysis.GapTop,
		GapMinDelta: e.Config.Analysis.GapMinDelta,
	}
	if req.TopN != nil {
		opts.TopN = *req.TopN
	}
	if req.GapBase != nil {
		opts.GapBase = *req.GapBase
	}
	if req.GapTop != nil {
		opts.GapTop = *req.GapTop
	}
	if req.GapMinDelta != nil {
		opts.GapMinDelta = *req.GapMinDelta
	}
	return opts
}

// Analyze collects up to Analysis.MaxDocuments documents (texts first, then
// URLs in order) and compares them. Sources beyond the cap are dropped
// without being fetched. A malformed kept URL fails the request with
// politeness.ErrInvalidURL before anything is fetched.
func (e *Engine) Analyze(ctx context.Context, req Request) (*analysis.Result, error) {
	start := time.Now()
	e.requests.Add(1)

	docs, err := e.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := e.Options(req)
	result := e.analyzer.Analyze(docs, opts)
	e.documents.Add(int64(len(docs)))

	e.Logger.WithFields(logrus.Fields{
		"documents":  len(docs),
		"vocab_size": result.VocabSize,
		"gap_base":   opts.GapBase,
		"duration":   time.Since(start).String(),
	}).Debug("Analysis complete")

	return result, nil
}

func (e *Engine) collect(ctx context.Context, req Request) ([]string, error) {
	limit := max(e.Config.Analysis.MaxDocuments, 0)
	texts := req.Texts
	if len(texts) > limit {
		texts = texts[:limit]
	}
	urls := req.URLs
	if room := limit - len(texts); len(urls) > room {
		urls = urls[:room]
	}
	if dropped := len(req.Texts) + len(req.URLs) - len(texts) - len(urls); dropped > 0 {
		e.Logger.WithField("dropped", dropped).Debug("Truncated document list")
	}

	docs := make([]string, len(texts), len(texts)+len(urls))
	copy(docs, texts)
	if len(urls) == 0 {
		return docs, nil
	}
	for _, u := range urls {
		if _, err := politeness.ValidateURL(u); err != nil {
			return nil, err
		}
	}

	fetched, err := e.fetchAll(ctx, urls)
	if err != nil {
		return nil, err
	}
	return append(docs, fetched...), nil
}

// fetchAll retrieves every URL concurrently, keeping input order.
func (e *Engine) fetchAll(ctx context.Context, urls []string) ([]string, error) {
	texts := make([]string, len(urls))
	errs := make([]error, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			texts[i], errs[i] = e.fetchOne(ctx, u)
		}(i, u)
	}
	wg.Wait()

	var first error
	for i, err := range errs {
		if err == nil {
			continue
		}
		e.fetchFailures.Add(1)
		e.Logger.WithError(err).WithField("url", urls[i]).Warn("Failed to fetch document")
		if first == nil {
			first = fmt.Errorf("fetch %s: %w", urls[i], err)
		}
	}
	if first != nil {
		return nil, first
	}
	return texts, nil
}

func (e *Engine) fetchOne(ctx context.Context, u string) (string, error) {
	if e.Robots != nil {
		allowed, err := e.Robots.Allowed(ctx, u)
		if err != nil {
			return "", err
		}
		if !allowed {
			return "", politeness.ErrDisallowed
		}
	}
	res, err := e.Fetcher.Fetch(ctx, u)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Stats returns a snapshot of the engine counters
func (e *Engine) Stats() EngineStats {
	return EngineStats{
		Requests:      e.requests.Load(),
		Documents:     e.documents.Load(),
		FetchFailures: e.fetchFailures.Load(),
		StartTime:     e.startTime,
	}
}
