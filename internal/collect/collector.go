package collect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/ppiankov/cyberabsa/internal/cache"
	"github.com/ppiankov/cyberabsa/internal/extract"
	"github.com/ppiankov/cyberabsa/internal/model"
	"github.com/ppiankov/cyberabsa/internal/util"
	"github.com/ppiankov/cyberabsa/internal/worker"
)

// DefaultUserAgent identifies the collector to origin servers.
const DefaultUserAgent = "cyberabsa/1.0 (+https://github.com/ppiankov/cyberabsa)"

// Options configures a collection run.
type Options struct {
	UserAgent         string
	Timeout           time.Duration
	MaxBodyBytes      int64
	RequestsPerSecond float64
	Burst             int
	Delay             time.Duration // fixed extra delay after rate-limit clearance
	Workers           int
	RespectRobots     bool
	CacheDir          string // empty disables the disk layer
	Insecure          bool
	HTTPProxy         string
	HTTPSProxy        string
	NoProxy           string
	DomainRates       map[string]float64 // per-host overrides of RequestsPerSecond
	TierOverrides     map[string]string  // host -> tier name
	Progress          func(done, total int)
}

// Collector fetches source documents politely and concurrently.
type Collector struct {
	fetcher       *Fetcher
	articles      *extract.ArticleExtractor
	links         *extract.LinkExtractor
	limiter       *worker.Limiter
	pages         cache.Cache
	robots        *util.RobotsChecker
	tiers         *TierClassifier
	workers       int
	delay         time.Duration
	respectRobots bool
	progress      func(done, total int)
}

// NewCollector creates a collector with the given options, filling
// unset fields with conservative defaults.
func NewCollector(opts Options) *Collector {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2_000_000
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	var pages cache.Cache
	if opts.CacheDir != "" {
		pages = cache.NewLayeredCache(time.Hour, opts.CacheDir, 24*time.Hour)
	} else {
		pages = cache.NewMemoryCache(time.Hour)
	}

	return &Collector{
		fetcher:       NewFetcher(opts.Timeout, opts.UserAgent, opts.MaxBodyBytes, opts.Insecure, opts.HTTPProxy, opts.HTTPSProxy, opts.NoProxy),
		articles:      extract.NewArticleExtractor(),
		links:         extract.NewLinkExtractor(),
		limiter:       worker.NewLimiter(opts.RequestsPerSecond, opts.Burst, opts.DomainRates),
		pages:         pages,
		robots:        util.NewRobotsChecker(opts.UserAgent, opts.Timeout),
		tiers:         NewTierClassifier(opts.TierOverrides),
		workers:       opts.Workers,
		delay:         opts.Delay,
		respectRobots: opts.RespectRobots,
		progress:      opts.Progress,
	}
}

// Collect gathers documents for one source. Per-URL failures (download
// errors, empty extractions, robots denials) become failure records
// rather than hard errors, so collection statistics stay honest; only
// source-level problems (bad kind, unreadable CSV, unreachable index)
// return an error.
func (c *Collector) Collect(ctx context.Context, src Source) ([]model.RawRecord, error) {
	switch src.Kind {
	case KindCSV:
		return c.collectCSV(src)
	case KindURLs:
		urls := src.URLs
		if len(urls) == 0 && src.Path != "" {
			loaded, err := LoadURLFile(src.Path)
			if err != nil {
				return nil, err
			}
			urls = loaded
		}
		return c.fetchAll(ctx, src, limitURLs(urls, src.Limit)), nil
	case KindIndex:
		urls, err := c.discoverLinks(ctx, src)
		if err != nil {
			return nil, err
		}
		return c.fetchAll(ctx, src, limitURLs(urls, src.Limit)), nil
	default:
		return nil, fmt.Errorf("unknown source kind: %s", src.Kind)
	}
}

func (c *Collector) collectCSV(src Source) ([]model.RawRecord, error) {
	path := src.Path
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		found, err := FindLocalDataset(path, src.Name)
		if err != nil {
			return nil, err
		}
		path = found
	}
	return ReadCSVRecords(path, src.Name, src.Tier)
}

// discoverLinks fetches the index page and returns candidate article
// URLs under the source's path prefix.
func (c *Collector) discoverLinks(ctx context.Context, src Source) ([]string, error) {
	html, finalURL, err := c.fetchPage(ctx, src.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index %s: %w", src.BaseURL, err)
	}

	links, err := c.links.Extract(html, finalURL, src.PathPrefix)
	if err != nil {
		return nil, fmt.Errorf("extract links: %w", err)
	}

	urls := make([]string, 0, len(links))
	for _, link := range links {
		// Index pages routinely link to themselves
		if link.URL == finalURL || link.URL == src.BaseURL {
			continue
		}
		urls = append(urls, link.URL)
	}
	return urls, nil
}

// fetchAll fans article fetches out over the worker pool and returns
// records in submission order.
func (c *Collector) fetchAll(ctx context.Context, src Source, urls []string) []model.RawRecord {
	if len(urls) == 0 {
		return nil
	}

	pool := worker.NewPool(c.workers)
	var done atomic.Int64
	total := len(urls)
	for _, u := range urls {
		pool.Submit(&fetchJob{
			url:       u,
			source:    src,
			collector: c,
			total:     total,
			done:      &done,
		})
	}

	results := pool.Run(ctx)
	records := make([]model.RawRecord, len(results))
	for i, result := range results {
		records[i] = result.(*fetchJobResult).record
	}
	return records
}

// fetchOne fetches and extracts a single article, returning a failure
// record when anything goes wrong.
func (c *Collector) fetchOne(ctx context.Context, src Source, rawURL string) model.RawRecord {
	record := model.RawRecord{
		Source:      src.Name,
		URL:         rawURL,
		CollectedAt: time.Now().UTC(),
		Tier:        c.tiers.Classify(rawURL, src.Tier),
	}

	if c.respectRobots && !c.robots.Allowed(ctx, rawURL) {
		record.Title = "Failed Extraction - Robots Disallowed"
		record.Error = "disallowed by robots.txt"
		return record
	}

	html, _, err := c.fetchPage(ctx, rawURL)
	if err != nil {
		record.Title = "Failed Extraction - Download Error"
		record.Error = err.Error()
		return record
	}

	article, err := c.articles.Extract(html)
	if err != nil || article.Text == "" {
		record.Title = "Failed Extraction - No Content"
		record.Error = "no content extracted"
		return record
	}

	record.Title = article.Title
	if record.Title == "" {
		record.Title = "No Title"
	}
	record.Text = article.Text
	record.Author = article.Author
	record.Published = article.Published
	record.Description = article.Description
	record.SiteName = article.SiteName
	record.ExtractionSuccess = true
	return record
}

// maxCrawlDelay caps how long a hostile robots.txt can stall the run.
const maxCrawlDelay = 10 * time.Second

// fetchPage serves a page from the cache or fetches it through the rate
// limiter, caching the HTML on success.
func (c *Collector) fetchPage(ctx context.Context, rawURL string) (string, string, error) {
	key := cache.PageKey(rawURL)
	if body, ok := c.pages.Get(key); ok {
		return string(body), rawURL, nil
	}

	delay := c.delay
	if c.respectRobots {
		robotsDelay := c.robots.CrawlDelay(rawURL)
		if robotsDelay > maxCrawlDelay {
			robotsDelay = maxCrawlDelay
		}
		if robotsDelay > delay {
			delay = robotsDelay
		}
	}
	if err := c.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
		return "", "", err
	}

	result, err := c.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", "", err
	}

	_ = c.pages.Set(key, []byte(result.HTML))
	return result.HTML, result.FinalURL, nil
}

// fetchJob fetches one article URL as a pool job.
type fetchJob struct {
	url       string
	source    Source
	collector *Collector
	total     int
	done      *atomic.Int64
}

// Execute fetches the article and reports progress.
func (j *fetchJob) Execute(ctx context.Context) worker.Result {
	record := j.collector.fetchOne(ctx, j.source, j.url)
	if j.collector.progress != nil {
		j.collector.progress(int(j.done.Add(1)), j.total)
	}
	return &fetchJobResult{record: record}
}

// fetchJobResult wraps one record as a pool result.
type fetchJobResult struct {
	record model.RawRecord
}

// Err returns the extraction error, nil for successful records.
func (r *fetchJobResult) Err() error {
	if r.record.ExtractionSuccess {
		return nil
	}
	return errors.New(r.record.Error)
}
