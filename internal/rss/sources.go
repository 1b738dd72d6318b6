// Package rss turns the configured feed registry into normalized articles.
package rss

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one named feed in the registry.
type Source struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	URL      string `yaml:"url"`
}

type sourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

func googleNewsURL(query string) string {
	return fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=ko&gl=KR&ceid=KR:ko",
		url.QueryEscape(query),
	)
}

// DefaultSources is the built-in registry: Google News queries per category
// plus Yahoo Finance top stories.
func DefaultSources() []Source {
	return []Source{
		{Name: "Google News - Economy", Category: "economy", URL: googleNewsURL("경제 OR 물가 OR 금리 OR 경기")},
		{Name: "Google News - Stock Market", Category: "stock_market", URL: googleNewsURL("증시 OR 코스피 OR 코스닥 OR 주가")},
		{Name: "Google News - Real Estate", Category: "real_estate_kr", URL: googleNewsURL("부동산 OR 아파트 OR 주택 OR 전세")},
		{Name: "Google News - Global", Category: "social_global", URL: googleNewsURL("글로벌 OR 미국 OR 중국 OR 유럽 OR 연준")},
		{Name: "Google News - Sector", Category: "sector_focus", URL: googleNewsURL("반도체 OR 자동차 OR 에너지 OR 바이오 OR IT")},
		{Name: "Yahoo Finance Top Stories", Category: "social_global", URL: "https://finance.yahoo.com/news/rssindex"},
	}
}

// LoadSources reads a YAML source registry. An empty path falls back to the
// built-in registry.
func LoadSources(path string) ([]Source, error) {
	if path == "" {
		return DefaultSources(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rss: open sources file: %w", err)
	}
	defer f.Close()

	var cfg sourcesConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("rss: parse sources file %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("rss: sources file %s lists no feeds", path)
	}
	for i, s := range cfg.Sources {
		if s.URL == "" {
			return nil, fmt.Errorf("rss: source %d (%s) has no url", i, s.Name)
		}
	}
	return cfg.Sources, nil
}
