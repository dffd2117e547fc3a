package verify

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"

	"inquire/internal/cache"
	"inquire/internal/model"
	"inquire/internal/util"
)

// maxNoteLength bounds the failure detail carried in a verification result.
const maxNoteLength = 200

// FetchResult is the classified outcome of fetching one citation URL.
// Failure is empty on success; transport and status failures are values,
// not errors, so the verifier never special-cases them.
type FetchResult struct {
	Body       string
	StatusCode int
	Failure    model.VerificationStatus // paywall or inaccessible
	Note       string
}

// SourceFetcher performs a single GET per citation URL with a timeout and
// redirect following. No retries: a failed attempt is terminal for that
// claim's verification in this run.
type SourceFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	stripHTML bool
	cache     cache.Cache         // nil disables caching
	cacheTTL  time.Duration
	robots    *util.RobotsChecker // nil disables robots.txt checks
	limiter   Limiter             // nil disables per-domain rate limiting
}

// Limiter is the admission interface the fetcher needs from the per-domain
// rate limiter.
type Limiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// NewSourceFetcher builds a fetcher from configuration. Cache, robots and
// rate limiting are wired only when the config enables them, so the default
// behavior is one plain GET per citation.
func NewSourceFetcher(cfg *model.Config) *SourceFetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &SourceFetcher{
		client: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		stripHTML: cfg.Verify.StripHTML,
	}

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if base, err := os.UserCacheDir(); err == nil {
				dir = filepath.Join(base, "inquire")
			}
		}
		if dir != "" {
			f.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
			f.cacheTTL = cfg.Cache.DiskTTL
		}
	}

	if cfg.Verify.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return f
}

// SetLimiter installs a per-domain rate limiter.
func (f *SourceFetcher) SetLimiter(l Limiter) {
	f.limiter = l
}

// Fetch retrieves the source behind rawURL and classifies the outcome:
// 403 is a paywall, any other non-200 status or transport error is
// inaccessible, 200 yields the body text.
func (f *SourceFetcher) Fetch(ctx context.Context, rawURL string) FetchResult {
	if f.cache != nil {
		if body, ok := f.cache.Get(cache.Key(rawURL)); ok {
			return FetchResult{Body: string(body), StatusCode: http.StatusOK}
		}
	}

	if f.robots != nil {
		if allowed, err := f.robots.CanFetch(ctx, rawURL); err == nil && !allowed {
			return FetchResult{Failure: model.StatusInaccessible, Note: "blocked by robots.txt"}
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return FetchResult{Failure: model.StatusInaccessible, Note: truncate(err.Error(), maxNoteLength)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchResult{Failure: model.StatusInaccessible, Note: truncate(err.Error(), maxNoteLength)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{Failure: model.StatusInaccessible, Note: truncate(err.Error(), maxNoteLength)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return FetchResult{
			StatusCode: resp.StatusCode,
			Failure:    model.StatusPaywall,
			Note:       "Access denied (likely paywall)",
		}
	}
	if resp.StatusCode != http.StatusOK {
		return FetchResult{
			StatusCode: resp.StatusCode,
			Failure:    model.StatusInaccessible,
			Note:       fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return FetchResult{
			StatusCode: resp.StatusCode,
			Failure:    model.StatusInaccessible,
			Note:       truncate(err.Error(), maxNoteLength),
		}
	}

	text := string(body)
	if f.stripHTML && isHTMLContent(resp.Header.Get("Content-Type")) {
		text = visibleText(text)
	}

	if f.cache != nil {
		_ = f.cache.Set(cache.Key(rawURL), []byte(text), f.cacheTTL)
	}

	return FetchResult{Body: text, StatusCode: resp.StatusCode}
}

func isHTMLContent(contentType string) bool {
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml")
}

// visibleText reduces an HTML document to its visible text, skipping
// script, style, noscript and iframe subtrees. Falls back to the raw input
// when parsing fails.
func visibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String()
}
