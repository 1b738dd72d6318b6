package briefing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yesroad/daily-briefing-bot/internal/llm"
)

func validPayload(items string) string {
	return fmt.Sprintf(`{
		"one_liner": "시장은 금리 인하 기대를 반영했다",
		"economy": %s,
		"stock_market": [],
		"real_estate_kr": [],
		"social_global": [],
		"sector_focus": [],
		"tomorrow_watchlist": []
	}`, items)
}

func TestParseSummaryValid(t *testing.T) {
	raw := validPayload(`[
		{"text": "기준 금리 동결", "sourceIndex": 1},
		{"text": "물가 상승 둔화", "sourceIndex": 3}
	]`)

	summary, err := ParseSummary(raw, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.OneLiner != "시장은 금리 인하 기대를 반영했다" {
		t.Errorf("one-liner = %q", summary.OneLiner)
	}
	economy := summary.Section(CategoryEconomy)
	if len(economy) != 2 || economy[0].SourceIndex != 1 || economy[1].SourceIndex != 3 {
		t.Errorf("economy section = %+v", economy)
	}
}

func TestParseSummaryFencedPayload(t *testing.T) {
	raw := "```json\n" + validPayload(`[{"text": "금리", "sourceIndex": 1}]`) + "\n```"
	if _, err := ParseSummary(raw, 3); err != nil {
		t.Fatalf("fenced JSON should parse: %v", err)
	}
}

func TestParseSummarySchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the market went up"},
		{"missing one_liner", `{"economy": [], "stock_market": [], "real_estate_kr": [], "social_global": [], "sector_focus": [], "tomorrow_watchlist": []}`},
		{"missing category", `{"one_liner": "x", "economy": []}`},
		{"wrong item type", validPayload(`[{"text": "x", "sourceIndex": "three"}]`)},
		{"fractional index", validPayload(`[{"text": "x", "sourceIndex": 1.5}]`)},
		{"item missing sourceIndex", validPayload(`[{"text": "x"}]`)},
		{"unknown top-level key", validPayload(`[]`)[:1] + `"extra": 1,` + validPayload(`[]`)[1:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSummary(tt.raw, 5)
			var schemaErr *llm.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("want SchemaError, got %v", err)
			}
		})
	}
}

func TestParseSummaryDropsUngroundedItems(t *testing.T) {
	raw := validPayload(`[
		{"text": "유효 항목", "sourceIndex": 2},
		{"text": "범위 밖 0", "sourceIndex": 0},
		{"text": "범위 밖 N+1", "sourceIndex": 6},
		{"text": "   ", "sourceIndex": 3},
		{"text": "중복 인덱스", "sourceIndex": 2}
	]`)

	summary, err := ParseSummary(raw, 5)
	if err != nil {
		t.Fatalf("grounding drops must not fail the parse: %v", err)
	}
	economy := summary.Section(CategoryEconomy)
	if len(economy) != 1 {
		t.Fatalf("want 1 surviving item, got %d: %+v", len(economy), economy)
	}
	if economy[0].Text != "유효 항목" || economy[0].SourceIndex != 2 {
		t.Errorf("wrong survivor: %+v", economy[0])
	}
}

func TestParseSummaryDuplicateKeepsFirst(t *testing.T) {
	raw := validPayload(`[
		{"text": "먼저 온 항목", "sourceIndex": 3},
		{"text": "나중 온 항목", "sourceIndex": 3}
	]`)

	summary, err := ParseSummary(raw, 5)
	if err != nil {
		t.Fatal(err)
	}
	economy := summary.Section(CategoryEconomy)
	if len(economy) != 1 || economy[0].Text != "먼저 온 항목" {
		t.Errorf("first occurrence must win: %+v", economy)
	}
}

func TestParseSummaryDuplicatesAllowedAcrossCategories(t *testing.T) {
	raw := `{
		"one_liner": "x",
		"economy": [{"text": "경제 항목", "sourceIndex": 1}],
		"stock_market": [{"text": "증시 항목", "sourceIndex": 1}],
		"real_estate_kr": [],
		"social_global": [],
		"sector_focus": [],
		"tomorrow_watchlist": []
	}`
	summary, err := ParseSummary(raw, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Section(CategoryEconomy)) != 1 || len(summary.Section(CategoryStocks)) != 1 {
		t.Error("the duplicate-index rule is scoped per category")
	}
}
