package rss

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/yesroad/daily-briefing-bot/internal/logger"
	"github.com/yesroad/daily-briefing-bot/internal/news"
)

// FetchError records one failed feed fetch.
type FetchError struct {
	Source string
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("rss: fetch %s (%s): %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options narrows a fetch to a category set and a publish-time window.
type Options struct {
	Categories []string
	From       time.Time
	To         time.Time
}

// Fetcher downloads and normalizes all registry sources concurrently.
type Fetcher struct {
	parser *gofeed.Parser
	// Strict restores fail-fast behavior: any single feed failure aborts
	// the whole batch instead of being reported and skipped.
	Strict bool
}

func NewFetcher(timeout time.Duration, strict bool) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &Fetcher{parser: parser, Strict: strict}
}

// FetchAll fans out one fetch per source, waits for all of them, and merges
// the surviving articles in registry order. Per-feed failures are returned
// alongside the merged batch; they only become fatal in Strict mode or when
// every source failed.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source, opts Options) ([]news.Article, []*FetchError, error) {
	selected := filterSources(sources, opts.Categories)
	if len(selected) == 0 {
		return nil, nil, fmt.Errorf("rss: no sources match categories %v", opts.Categories)
	}

	perSource := make([][]news.Article, len(selected))
	errs := make([]*FetchError, len(selected))

	var wg sync.WaitGroup
	for i, src := range selected {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			items, err := f.fetchOne(ctx, src, opts)
			if err != nil {
				errs[i] = &FetchError{Source: src.Name, URL: src.URL, Err: err}
				return
			}
			perSource[i] = items
		}(i, src)
	}
	wg.Wait()

	var failed []*FetchError
	var merged []news.Article
	for i := range selected {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			logger.Warn("feed fetch failed", "source", errs[i].Source, "error", errs[i].Err)
			continue
		}
		merged = append(merged, perSource[i]...)
	}

	if f.Strict && len(failed) > 0 {
		return nil, failed, failed[0]
	}
	if len(failed) == len(selected) {
		return nil, failed, fmt.Errorf("rss: all %d feeds failed, first: %w", len(selected), failed[0])
	}

	logger.Info("feeds fetched",
		"sources", len(selected), "failed", len(failed), "articles", len(merged))
	return merged, failed, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, src Source, opts Options) ([]news.Article, error) {
	feed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, err
	}

	windowed := !opts.From.IsZero() || !opts.To.IsZero()
	articles := make([]news.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		published := itemTime(item)
		if windowed {
			// A window fetch keeps only items proven inside the window;
			// undated items cannot prove anything.
			if published.IsZero() {
				continue
			}
			if !opts.From.IsZero() && published.Before(opts.From) {
				continue
			}
			if !opts.To.IsZero() && published.After(opts.To) {
				continue
			}
		}

		articles = append(articles, news.Article{
			Title:        title,
			Summary:      summaryText(item.Description),
			Link:         item.Link,
			CanonicalURL: news.CanonicalizeURL(item.Link),
			Published:    published,
			Source:       src.Name,
			Category:     src.Category,
		})
	}
	return articles, nil
}

func itemTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// summaryText flattens an HTML-bearing feed description into one line of
// plain text.
func summaryText(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return strings.Join(strings.Fields(trimmed), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func filterSources(sources []Source, categories []string) []Source {
	if len(categories) == 0 {
		return sources
	}
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}
	var out []Source
	for _, s := range sources {
		if allowed[s.Category] {
			out = append(out, s)
		}
	}
	return out
}
