// Package app wires the pipeline stages into the two delivery flows.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/yesroad/daily-briefing-bot/internal/briefing"
	"github.com/yesroad/daily-briefing-bot/internal/config"
	"github.com/yesroad/daily-briefing-bot/internal/email"
	"github.com/yesroad/daily-briefing-bot/internal/llm"
	"github.com/yesroad/daily-briefing-bot/internal/logger"
	"github.com/yesroad/daily-briefing-bot/internal/metrics"
	"github.com/yesroad/daily-briefing-bot/internal/news"
	"github.com/yesroad/daily-briefing-bot/internal/rss"
)

// collectArticles runs fetch, relevance filter, dedupe and representative
// selection. Shared by both flows; the weekly flow narrows with opts.
func collectArticles(ctx context.Context, cfg *config.Config, opts rss.Options, minCount, maxCount int) ([]news.Article, error) {
	sources, err := rss.LoadSources(cfg.SourcesPath)
	if err != nil {
		return nil, err
	}

	fetcher := rss.NewFetcher(cfg.RequestTimeout, cfg.StrictFetch)
	fetched, failed, err := fetcher.FetchAll(ctx, sources, opts)
	if err != nil {
		return nil, err
	}
	metrics.Global.AddArticlesFetched(len(fetched))
	metrics.Global.AddFeedFailures(len(failed))

	rules := news.DefaultRules()
	relevant := make([]news.Article, 0, len(fetched))
	for _, a := range fetched {
		if rules.IsMarketRelevant(a) {
			relevant = append(relevant, a)
		}
	}
	metrics.Global.AddArticlesFiltered(len(fetched) - len(relevant))

	deduped := news.Dedupe(relevant)
	metrics.Global.AddDuplicatesRemoved(len(relevant) - len(deduped))

	selected := news.SelectRepresentative(deduped, minCount, maxCount)
	logger.Info("articles collected",
		"fetched", len(fetched),
		"relevant", len(relevant),
		"deduped", len(deduped),
		"selected", len(selected),
		"failed_feeds", len(failed))
	return selected, nil
}

// RunDaily produces today's briefing and mails it.
func RunDaily(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	selected, err := collectArticles(ctx, cfg, rss.Options{}, 0, cfg.MaxArticles)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("app: no relevant articles to summarize")
	}

	client, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxGeminiRequests)
	if err != nil {
		return err
	}
	defer client.Close()

	prompt := briefing.BuildPrompt(selected)
	logger.Debug("daily prompt built", "articles", len(selected))

	raw, err := client.GenerateJSON(ctx, prompt, briefing.ResponseSchema())
	if err != nil {
		return fmt.Errorf("app: daily summary generation: %w", err)
	}
	metrics.Global.IncrementGeminiCalls()

	summary, err := briefing.ParseSummary(raw, len(selected))
	if err != nil {
		return fmt.Errorf("app: daily summary validation: %w", err)
	}

	now := time.Now()
	subject := email.Subject(now)
	textBody := email.RenderText(summary, subject)
	htmlBody := email.RenderHTML(summary, subject, now)

	sender := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPTo)
	if err := sender.Send(subject, textBody, htmlBody); err != nil {
		return err
	}
	metrics.Global.IncrementBriefingsDelivered()

	metrics.Global.RecordRunDuration(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("daily briefing sent", "subject", subject, "duration", time.Since(start))
	return nil
}
