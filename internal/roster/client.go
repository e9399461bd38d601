package roster

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"rosterpost/internal/config"
	"rosterpost/internal/logging"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Client walks the public roster over HTTP: the index page lists one link
// per booking, each resolving to a detail page. Pages load fully on GET, so
// pacing is a fixed wait between requests rather than readiness polling.
type Client struct {
	http    *resty.Client
	baseURL string
	wait    time.Duration
	logger  *slog.Logger

	links []string
	pos   int
}

func NewClient(cfg config.Roster, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	http := resty.New()
	http.SetHeader("user-agent", userAgent)
	http.SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	return &Client{
		http:    http,
		baseURL: cfg.BaseURL,
		wait:    time.Duration(cfg.DetailWaitSecs) * time.Second,
		logger:  logger.With(logging.Component("roster")),
	}
}

// Next fetches the next detail page, loading the index on first call.
func (c *Client) Next(ctx context.Context) (View, error) {
	if c.links == nil {
		if err := c.loadIndex(ctx); err != nil {
			return nil, err
		}
	}
	if c.pos >= len(c.links) {
		return nil, ErrNoMoreViews
	}

	link := c.links[c.pos]
	c.pos++

	if c.pos > 1 && c.wait > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.wait):
		}
	}

	res, err := c.http.R().SetContext(ctx).Get(link)
	if err != nil {
		return nil, fmt.Errorf("fetch detail view %s: %w", link, err)
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("fetch detail view %s: status %d", link, res.StatusCode())
	}
	view, err := ParseDetail(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse detail view %s: %w", link, err)
	}
	return view, nil
}

// loadIndex fetches the roster index and collects detail links in page
// order. Duplicate hrefs collapse to the first occurrence.
func (c *Client) loadIndex(ctx context.Context) error {
	res, err := c.http.R().SetContext(ctx).Get(c.baseURL)
	if err != nil {
		return fmt.Errorf("fetch roster index: %w", err)
	}
	if res.StatusCode() >= 400 {
		return fmt.Errorf("fetch roster index: status %d", res.StatusCode())
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return fmt.Errorf("parse roster index: %w", err)
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse roster base url: %w", err)
	}

	c.links = []string{}
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !looksLikeDetailLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()
		if seen[resolved] {
			return
		}
		seen[resolved] = true
		c.links = append(c.links, resolved)
	})

	c.logger.Info("roster index loaded", logging.Int("detail_links", len(c.links)))
	return nil
}

func looksLikeDetailLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.Contains(lower, "detail") || strings.Contains(lower, "inmate")
}
