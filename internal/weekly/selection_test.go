package weekly

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/yesroad/daily-briefing-bot/internal/llm"
)

func payload(title string, items []map[string]any) string {
	raw, err := json.Marshal(map[string]any{"title": title, "items": items})
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func validItems(n int) []map[string]any {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"title":       fmt.Sprintf("기사 %d", i+1),
			"summary":     fmt.Sprintf("요약 %d", i+1),
			"sourceIndex": i + 1,
		}
	}
	return items
}

func TestParseSelectionValid(t *testing.T) {
	raw := payload("2026년 9월 1주차 경제 이슈 요약", validItems(7))
	sel, err := ParseSelection(raw, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Title != "2026년 9월 1주차 경제 이슈 요약" {
		t.Errorf("title = %q", sel.Title)
	}
	if len(sel.Items) != 7 {
		t.Errorf("items = %d, want 7", len(sel.Items))
	}
}

func TestParseSelectionSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "no schema here"},
		{"missing title", `{"items": []}`},
		{"blank title", `{"title": "  ", "items": []}`},
		{"missing items", `{"title": "x"}`},
		{"too few items structurally", payload("x", validItems(5))},
		{"too many items structurally", payload("x", validItems(11))},
		{"item missing field", `{"title": "x", "items": [{"title": "a", "sourceIndex": 1}, {"title": "b", "summary": "s", "sourceIndex": 2}, {"title": "c", "summary": "s", "sourceIndex": 3}, {"title": "d", "summary": "s", "sourceIndex": 4}, {"title": "e", "summary": "s", "sourceIndex": 5}, {"title": "f", "summary": "s", "sourceIndex": 6}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSelection(tt.raw, 20)
			var schemaErr *llm.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("want SchemaError, got %v", err)
			}
		})
	}
}

func TestParseSelectionGroundingDropBelowMinimumFails(t *testing.T) {
	// Seven structurally valid items, but two point outside [1, N] and one
	// duplicates an index: five survive, below the minimum of six.
	items := validItems(7)
	items[4]["sourceIndex"] = 0
	items[5]["sourceIndex"] = 99
	items[6]["sourceIndex"] = 1

	_, err := ParseSelection(payload("주간 요약", items), 20)
	var groundingErr *llm.GroundingError
	if !errors.As(err, &groundingErr) {
		t.Fatalf("want GroundingError, got %v", err)
	}
}

func TestParseSelectionDropsOutOfRangeAndDuplicates(t *testing.T) {
	items := validItems(9)
	items[6]["sourceIndex"] = 0  // below range
	items[7]["sourceIndex"] = 21 // above range for 20 articles
	items[8]["sourceIndex"] = 1  // duplicate of the first

	sel, err := ParseSelection(payload("주간 요약", items), 20)
	if err != nil {
		t.Fatalf("six grounded items remain, parse should succeed: %v", err)
	}
	if len(sel.Items) != 6 {
		t.Fatalf("items = %d, want 6", len(sel.Items))
	}
	for _, it := range sel.Items {
		if it.SourceIndex < 1 || it.SourceIndex > 20 {
			t.Errorf("out-of-range index survived: %+v", it)
		}
	}
}

func TestParseSelectionDuplicateKeepsFirst(t *testing.T) {
	items := validItems(7)
	items[6]["sourceIndex"] = 3
	items[6]["title"] = "나중 항목"

	sel, err := ParseSelection(payload("주간 요약", items), 20)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range sel.Items {
		if it.SourceIndex == 3 && it.Title != "기사 3" {
			t.Errorf("first occurrence of index 3 must win, got %+v", it)
		}
	}
}

