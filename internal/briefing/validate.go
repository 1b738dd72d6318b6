package briefing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/yesroad/daily-briefing-bot/internal/llm"
	"github.com/yesroad/daily-briefing-bot/internal/logger"
	"github.com/yesroad/daily-briefing-bot/internal/metrics"
)

// ResponseSchema is the JSON-schema descriptor sent with the daily summary
// request.
func ResponseSchema() *genai.Schema {
	itemSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":        {Type: genai.TypeString},
			"sourceIndex": {Type: genai.TypeInteger, Description: "1-based index into the article list"},
		},
		Required: []string{"text", "sourceIndex"},
	}

	properties := map[string]*genai.Schema{
		"one_liner": {Type: genai.TypeString},
	}
	required := []string{"one_liner"}
	for _, c := range Categories {
		properties[string(c)] = &genai.Schema{Type: genai.TypeArray, Items: itemSchema}
		required = append(required, string(c))
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}

// Wire shapes. Pointers distinguish a missing key from an empty value so
// required-key checks work.
type wireItem struct {
	Text        *string `json:"text"`
	SourceIndex *int    `json:"sourceIndex"`
}

type wireSummary struct {
	OneLiner   *string     `json:"one_liner"`
	Economy    *[]wireItem `json:"economy"`
	Stocks     *[]wireItem `json:"stock_market"`
	RealEstate *[]wireItem `json:"real_estate_kr"`
	Global     *[]wireItem `json:"social_global"`
	Sector     *[]wireItem `json:"sector_focus"`
	Watchlist  *[]wireItem `json:"tomorrow_watchlist"`
}

func (w *wireSummary) section(c Category) *[]wireItem {
	switch c {
	case CategoryEconomy:
		return w.Economy
	case CategoryStocks:
		return w.Stocks
	case CategoryRealEstate:
		return w.RealEstate
	case CategoryGlobal:
		return w.Global
	case CategorySector:
		return w.Sector
	case CategoryWatchlist:
		return w.Watchlist
	}
	return nil
}

// ParseSummary is the trust boundary for daily model output. Structural
// failures reject the whole payload; grounding failures drop single items.
func ParseSummary(raw string, articleCount int) (*Summary, error) {
	var wire wireSummary
	dec := json.NewDecoder(strings.NewReader(llm.CleanJSON(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, &llm.SchemaError{Err: fmt.Errorf("daily summary: %w", err)}
	}

	if wire.OneLiner == nil {
		return nil, &llm.SchemaError{Err: fmt.Errorf("daily summary: missing one_liner")}
	}

	summary := &Summary{
		OneLiner: strings.TrimSpace(*wire.OneLiner),
		Sections: make(map[Category][]Item, len(Categories)),
	}

	for _, c := range Categories {
		items := wire.section(c)
		if items == nil {
			return nil, &llm.SchemaError{Err: fmt.Errorf("daily summary: missing category %s", c)}
		}
		for j, it := range *items {
			if it.Text == nil || it.SourceIndex == nil {
				return nil, &llm.SchemaError{Err: fmt.Errorf("daily summary: %s[%d] missing required fields", c, j)}
			}
		}
		kept, dropped := sanitizeItems(*items, articleCount)
		if dropped > 0 {
			logger.Warn("briefing items dropped by sanitization", "category", string(c), "dropped", dropped)
			metrics.Global.AddItemsDropped(dropped)
		}
		summary.Sections[c] = kept
	}

	return summary, nil
}

// sanitizeItems enforces the grounding contract on one category: drop
// out-of-range indexes, duplicate indexes (first occurrence wins) and blank
// text. Items are never repaired. Fields are non-nil by the time this runs.
func sanitizeItems(items []wireItem, articleCount int) ([]Item, int) {
	var kept []Item
	seen := make(map[int]bool, len(items))

	for _, it := range items {
		text := strings.TrimSpace(*it.Text)
		idx := *it.SourceIndex
		if text == "" || idx < 1 || idx > articleCount || seen[idx] {
			continue
		}
		seen[idx] = true
		kept = append(kept, Item{Text: text, SourceIndex: idx})
	}
	return kept, len(items) - len(kept)
}
