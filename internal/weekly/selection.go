// Package weekly implements the weekly economy flow: a two-step model
// conversation (select grounded items, then write the post body) plus the
// validation and rendering around it.
package weekly

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/yesroad/daily-briefing-bot/internal/llm"
	"github.com/yesroad/daily-briefing-bot/internal/logger"
	"github.com/yesroad/daily-briefing-bot/internal/metrics"
)

const (
	// The selection must land in this window, both structurally (the model
	// is told so) and after sanitization.
	MinItems = 6
	MaxItems = 10
)

// SelectionItem is one selected story with its evidentiary source index.
type SelectionItem struct {
	Title       string
	Summary     string
	SourceIndex int
}

// Selection is the sanitized step-1 output.
type Selection struct {
	Title string
	Items []SelectionItem
}

// ResponseSchema is the JSON-schema descriptor for the step-1 call.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			"items": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"summary":     {Type: genai.TypeString},
						"sourceIndex": {Type: genai.TypeInteger, Description: "1-based index into the article list"},
					},
					Required: []string{"title", "summary", "sourceIndex"},
				},
			},
		},
		Required: []string{"title", "items"},
	}
}

type wireSelectionItem struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	SourceIndex *int    `json:"sourceIndex"`
}

type wireSelection struct {
	Title *string              `json:"title"`
	Items *[]wireSelectionItem `json:"items"`
}

// ParseSelection validates and sanitizes step-1 model output. Structural
// problems (bad JSON, missing keys, item count outside [6, 10]) are schema
// violations; items that fail grounding are dropped, and dropping below
// MinItems is a grounding violation that fails the run.
func ParseSelection(raw string, articleCount int) (*Selection, error) {
	var wire wireSelection
	dec := json.NewDecoder(strings.NewReader(llm.CleanJSON(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, &llm.SchemaError{Err: fmt.Errorf("weekly selection: %w", err)}
	}

	if wire.Title == nil || strings.TrimSpace(*wire.Title) == "" {
		return nil, &llm.SchemaError{Err: fmt.Errorf("weekly selection: missing title")}
	}
	if wire.Items == nil {
		return nil, &llm.SchemaError{Err: fmt.Errorf("weekly selection: missing items")}
	}
	items := *wire.Items
	if len(items) < MinItems || len(items) > MaxItems {
		return nil, &llm.SchemaError{Err: fmt.Errorf("weekly selection: %d items, want %d..%d", len(items), MinItems, MaxItems)}
	}
	for i, it := range items {
		if it.Title == nil || it.Summary == nil || it.SourceIndex == nil {
			return nil, &llm.SchemaError{Err: fmt.Errorf("weekly selection: items[%d] missing required fields", i)}
		}
	}

	kept := sanitizeItems(items, articleCount)
	if dropped := len(items) - len(kept); dropped > 0 {
		logger.Warn("weekly selection items dropped by sanitization", "dropped", dropped)
		metrics.Global.AddItemsDropped(dropped)
	}
	if len(kept) < MinItems {
		return nil, &llm.GroundingError{
			Reason: fmt.Sprintf("weekly selection too short after validation: %d", len(kept)),
		}
	}
	if len(kept) > MaxItems {
		kept = kept[:MaxItems]
	}

	return &Selection{
		Title: strings.TrimSpace(*wire.Title),
		Items: kept,
	}, nil
}

func sanitizeItems(items []wireSelectionItem, articleCount int) []SelectionItem {
	var kept []SelectionItem
	seen := make(map[int]bool, len(items))

	for _, it := range items {
		title := strings.TrimSpace(*it.Title)
		summary := strings.TrimSpace(*it.Summary)
		idx := *it.SourceIndex
		if title == "" || summary == "" || idx < 1 || idx > articleCount || seen[idx] {
			continue
		}
		seen[idx] = true
		kept = append(kept, SelectionItem{Title: title, Summary: summary, SourceIndex: idx})
	}
	return kept
}
