// Package briefing builds the daily summary prompt and validates the model
// output that comes back.
package briefing

// Category is one fixed section of the daily briefing. The set is closed;
// Categories fixes the rendering order.
type Category string

const (
	CategoryEconomy    Category = "economy"
	CategoryStocks     Category = "stock_market"
	CategoryRealEstate Category = "real_estate_kr"
	CategoryGlobal     Category = "social_global"
	CategorySector     Category = "sector_focus"
	CategoryWatchlist  Category = "tomorrow_watchlist"
)

var Categories = []Category{
	CategoryEconomy,
	CategoryStocks,
	CategoryRealEstate,
	CategoryGlobal,
	CategorySector,
	CategoryWatchlist,
}

var categoryLabels = map[Category]string{
	CategoryEconomy:    "경제",
	CategoryStocks:     "증시",
	CategoryRealEstate: "부동산(한국)",
	CategoryGlobal:     "글로벌",
	CategorySector:     "섹터",
	CategoryWatchlist:  "내일 체크 포인트",
}

// Label is the Korean section title used by delivery templates.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Item is one grounded sentence of the briefing. SourceIndex is the 1-based
// position of its evidentiary article in the prompt.
type Item struct {
	Text        string
	SourceIndex int
}

// Summary is the sanitized daily briefing: a one-line headline plus ordered
// items per category. Never mutated after ParseSummary returns it.
type Summary struct {
	OneLiner string
	Sections map[Category][]Item
}

// Section returns the items of one category, nil when empty.
func (s *Summary) Section(c Category) []Item {
	return s.Sections[c]
}
