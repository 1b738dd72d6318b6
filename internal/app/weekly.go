package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yesroad/daily-briefing-bot/internal/config"
	"github.com/yesroad/daily-briefing-bot/internal/llm"
	"github.com/yesroad/daily-briefing-bot/internal/logger"
	"github.com/yesroad/daily-briefing-bot/internal/metrics"
	"github.com/yesroad/daily-briefing-bot/internal/rss"
	"github.com/yesroad/daily-briefing-bot/internal/weekly"
	"github.com/yesroad/daily-briefing-bot/internal/wordpress"
)

// minWeeklyContentRunes guards against the model returning a stub body.
const minWeeklyContentRunes = 800

// RunWeekly summarizes the past week's economy coverage into a WordPress
// draft. An existing draft with the same title is overwritten.
func RunWeekly(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	now := time.Now()

	opts := rss.Options{
		Categories: []string{"economy"},
		From:       now.Add(-7 * 24 * time.Hour),
		To:         now,
	}
	selected, err := collectArticles(ctx, cfg, opts, cfg.WeeklyMin, cfg.WeeklyMax)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("app: no economy articles found in the last 7 days")
	}

	client, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxGeminiRequests)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("weekly selection step", "articles", len(selected))
	rawSelection, err := client.GenerateJSON(ctx, weekly.BuildSelectionPrompt(selected), weekly.ResponseSchema())
	if err != nil {
		return fmt.Errorf("app: weekly selection generation: %w", err)
	}
	metrics.Global.IncrementGeminiCalls()

	selection, err := weekly.ParseSelection(rawSelection, len(selected))
	if err != nil {
		return fmt.Errorf("app: weekly selection validation: %w", err)
	}
	logger.Info("weekly selection validated", "items", len(selection.Items))

	content, err := client.GenerateText(ctx, weekly.BuildArticlePrompt(selection))
	if err != nil {
		return fmt.Errorf("app: weekly content generation: %w", err)
	}
	metrics.Global.IncrementGeminiCalls()

	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < minWeeklyContentRunes {
		return fmt.Errorf("app: weekly content too short: %d characters", n)
	}

	refs := weekly.References(selection, selected)
	post := weekly.RenderPost(weekly.Title(now), content, refs)

	wp := wordpress.NewClient(cfg.WPBaseURL, cfg.WPUser, cfg.WPAppPassword, cfg.RequestTimeout)
	existing, err := wp.FindPostByTitle(ctx, post.Title)
	if err != nil {
		return err
	}

	var result *wordpress.PostResult
	if existing != nil {
		result, err = wp.UpdateDraft(ctx, existing.ID, post.Title, post.Content, cfg.WPCategoryID, cfg.WPTagIDs)
	} else {
		result, err = wp.CreateDraft(ctx, post.Title, post.Content, cfg.WPCategoryID, cfg.WPTagIDs)
	}
	if err != nil {
		return err
	}
	metrics.Global.IncrementBriefingsDelivered()

	metrics.Global.RecordRunDuration(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("weekly draft saved",
		"id", result.ID,
		"link", result.Link,
		"updated", existing != nil,
		"duration", time.Since(start))
	return nil
}
