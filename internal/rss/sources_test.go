package rss

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSourcesCoverCategories(t *testing.T) {
	sources := DefaultSources()
	if len(sources) == 0 {
		t.Fatal("no default sources")
	}

	categories := map[string]bool{}
	for _, s := range sources {
		if s.Name == "" || s.URL == "" {
			t.Errorf("incomplete source: %+v", s)
		}
		categories[s.Category] = true
	}
	for _, want := range []string{"economy", "stock_market", "real_estate_kr", "social_global", "sector_focus"} {
		if !categories[want] {
			t.Errorf("no source for category %s", want)
		}
	}
}

func TestGoogleNewsURLEncodesQuery(t *testing.T) {
	u := googleNewsURL("경제 OR 금리")
	if !strings.Contains(u, "hl=ko&gl=KR&ceid=KR:ko") {
		t.Errorf("missing Korean locale params: %s", u)
	}
	if strings.Contains(u, " ") {
		t.Errorf("unencoded space in %s", u)
	}
}

func TestLoadSourcesEmptyPathUsesDefaults(t *testing.T) {
	sources, err := LoadSources("")
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != len(DefaultSources()) {
		t.Errorf("got %d sources, want defaults", len(sources))
	}
}

func TestLoadSourcesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: "Test Feed"
    category: economy
    url: "https://feeds.example/economy"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 || sources[0].Category != "economy" {
		t.Errorf("sources = %+v", sources)
	}
}

func TestLoadSourcesRejectsBadRegistry(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty list", "sources: []\n"},
		{"missing url", "sources:\n  - name: x\n    category: economy\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSources(path); err == nil {
				t.Error("want error")
			}
		})
	}

	if _, err := LoadSources(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}
