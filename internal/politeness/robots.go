package politeness

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"

	"github.com/knowledge-engine/textgap/internal/config"
)

// ErrDisallowed is returned by callers that refuse a URL excluded by robots.txt.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// ErrInvalidURL marks document URLs that cannot be fetched at all.
var ErrInvalidURL = errors.New("invalid URL")

// ValidateURL parses rawURL and requires an http or https scheme and a host.
func ValidateURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: only HTTP/HTTPS URLs are supported: %s", ErrInvalidURL, rawURL)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: URL must have a host: %s", ErrInvalidURL, rawURL)
	}
	return parsedURL, nil
}

// RobotsChecker answers robots.txt questions for document URLs, caching each
// host's rules.
type RobotsChecker struct {
	client        *http.Client
	userAgent     string
	cacheDuration time.Duration
	logger        *logrus.Entry

	mu    sync.RWMutex
	cache map[string]*RobotsEntry
}

// RobotsEntry caches robots.txt data. A nil robots field means the host
// published none.
type RobotsEntry struct {
	robots    *robotstxt.RobotsData
	fetchTime time.Time
}

// NewRobotsChecker creates a checker using the fetch settings
func NewRobotsChecker(cfg config.FetchConfig, logger *logrus.Entry) *RobotsChecker {
	if logger == nil {
		logger = logrus.WithField("component", "robots")
	}
	return &RobotsChecker{
		client:        &http.Client{Timeout: cfg.Timeout()},
		userAgent:     cfg.UserAgent,
		cacheDuration: cfg.RobotsCacheDuration(),
		logger:        logger,
		cache:         make(map[string]*RobotsEntry),
	}
}

// Allowed reports whether the configured user agent may fetch rawURL. Hosts
// whose robots.txt cannot be retrieved are allowed.
func (rc *RobotsChecker) Allowed(ctx context.Context, rawURL string) (bool, error) {
	parsedURL, err := ValidateURL(rawURL)
	if err != nil {
		return false, err
	}

	robotsData, err := rc.getRobotsData(ctx, parsedURL.Scheme, parsedURL.Host)
	if err != nil {
		rc.logger.WithError(err).WithField("domain", parsedURL.Host).Warn("Failed to get robots.txt, allowing request")
		return true, nil
	}
	if robotsData == nil {
		return true, nil
	}

	group := robotsData.FindGroup(rc.userAgent)
	if group == nil {
		return true, nil
	}

	path := parsedURL.EscapedPath()
	if path == "" {
		path = "/"
	}
	return group.Test(path), nil
}

// CachedHosts returns the number of hosts with cached rules
func (rc *RobotsChecker) CachedHosts() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.cache)
}

func (rc *RobotsChecker) getRobotsData(ctx context.Context, scheme, host string) (*robotstxt.RobotsData, error) {
	rc.mu.RLock()
	entry, exists := rc.cache[host]
	rc.mu.RUnlock()

	if exists && time.Since(entry.fetchTime) < rc.cacheDuration {
		return entry.robots, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create robots.txt request: %w", err)
	}
	if rc.userAgent != "" {
		req.Header.Set("User-Agent", rc.userAgent)
	}

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	var robotsData *robotstxt.RobotsData
	if resp.StatusCode == http.StatusOK {
		robotsData, err = robotstxt.FromResponse(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse robots.txt: %w", err)
		}
	}

	// Cache the result (even if nil for 404s)
	rc.mu.Lock()
	rc.cache[host] = &RobotsEntry{
		robots:    robotsData,
		fetchTime: time.Now(),
	}
	rc.mu.Unlock()

	return robotsData, nil
}
