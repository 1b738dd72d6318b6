// Package email renders the daily briefing and delivers it over SMTP.
package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yesroad/daily-briefing-bot/internal/briefing"
)

var seoul = mustLoadSeoul()

func mustLoadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Subject is the daily mail subject with the KST calendar date.
func Subject(now time.Time) string {
	return fmt.Sprintf("[데일리 브리핑] %s 시장 요약", now.In(seoul).Format("2006-01-02"))
}

func sectionTexts(summary *briefing.Summary, c briefing.Category) []string {
	items := summary.Section(c)
	texts := make([]string, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

// highlights picks up to three lead sentences for the top of the mail:
// first economy, first stocks, then real estate or sector as filler.
func highlights(summary *briefing.Summary) []string {
	var picks []string
	economy := sectionTexts(summary, briefing.CategoryEconomy)
	stocks := sectionTexts(summary, briefing.CategoryStocks)
	realEstate := sectionTexts(summary, briefing.CategoryRealEstate)
	sector := sectionTexts(summary, briefing.CategorySector)

	if len(economy) > 0 {
		picks = append(picks, economy[0])
	}
	if len(stocks) > 0 {
		picks = append(picks, stocks[0])
	}
	if len(picks) < 3 {
		if len(realEstate) > 0 {
			picks = append(picks, realEstate[0])
		} else if len(sector) > 0 {
			picks = append(picks, sector[0])
		}
	}
	return picks
}

func quietDay(summary *briefing.Summary) bool {
	return len(sectionTexts(summary, briefing.CategoryGlobal)) == 0 &&
		len(sectionTexts(summary, briefing.CategoryWatchlist)) == 0
}

// RenderText builds the plain-text alternative. Every category appears;
// empty ones carry the placeholder line.
func RenderText(summary *briefing.Summary, subject string) string {
	var lines []string
	lines = append(lines, subject, "")
	lines = append(lines, "오늘 한 줄 요약", "- "+strings.TrimSpace(summary.OneLiner), "")

	if picks := highlights(summary); len(picks) > 0 {
		lines = append(lines, "오늘 핵심 3개")
		for _, p := range picks {
			lines = append(lines, "- "+p)
		}
		lines = append(lines, "")
	}

	for _, c := range briefing.Categories {
		lines = append(lines, fmt.Sprintf("[%s]", c.Label()))
		texts := sectionTexts(summary, c)
		if len(texts) == 0 {
			lines = append(lines, "- (내용 없음)")
		}
		for _, text := range texts {
			lines = append(lines, "- "+text)
		}
		lines = append(lines, "")
	}

	if quietDay(summary) {
		lines = append(lines, "오늘 영향 큰 이슈 없음", "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// RenderHTML builds the HTML body: headline banner, highlight list, then one
// card per non-empty category.
func RenderHTML(summary *briefing.Summary, subject string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 640px; margin: 0 auto; padding: 20px; background: #f3f4f6; color: #1f2937; }
.date { color: #6b7280; font-size: 12px; }
h1 { color: #111827; font-size: 18px; margin: 4px 0 16px 0; }
.one-liner { background: #111827; color: #ffffff; border-radius: 10px; padding: 12px 14px; font-weight: 600; line-height: 1.55; }
.highlights { background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 10px; padding: 10px 12px; margin-top: 12px; }
.highlights strong { font-size: 13px; color: #0f172a; }
.card { background: #ffffff; border: 1px solid #e5e7eb; border-radius: 12px; padding: 16px 18px; margin-top: 16px; }
.card h2 { margin: 0 0 8px 0; font-size: 16px; color: #0f172a; }
.card li { margin-bottom: 8px; font-size: 15px; line-height: 1.55; }
.quiet { background: #fff7ed; border: 1px solid #fed7aa; border-radius: 12px; padding: 12px 16px; margin-top: 16px; color: #9a3412; font-weight: 600; font-size: 14px; }
.footer { color: #6b7280; font-size: 12px; text-align: center; margin-top: 20px; }
</style></head><body>`)

	sb.WriteString(fmt.Sprintf(`<div class="date">%s</div>`, now.In(seoul).Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(subject)))
	sb.WriteString(fmt.Sprintf(`<div class="one-liner">%s</div>`, html.EscapeString(strings.TrimSpace(summary.OneLiner))))

	if picks := highlights(summary); len(picks) > 0 {
		sb.WriteString(`<div class="highlights"><strong>오늘 핵심 3개</strong><ol>`)
		for _, p := range picks {
			sb.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(p)))
		}
		sb.WriteString("</ol></div>")
	}

	for _, c := range briefing.Categories {
		texts := sectionTexts(summary, c)
		if len(texts) == 0 {
			continue
		}
		sb.WriteString(`<div class="card">`)
		sb.WriteString(fmt.Sprintf("<h2>%s</h2><ul>", html.EscapeString(c.Label())))
		for _, text := range texts {
			sb.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(text)))
		}
		sb.WriteString("</ul></div>")
	}

	if quietDay(summary) {
		sb.WriteString(`<div class="quiet">오늘 영향 큰 이슈 없음</div>`)
	}

	sb.WriteString(`<div class="footer">이 메일은 자동 발송된 데일리 브리핑입니다.</div>`)
	sb.WriteString("</body></html>")
	return sb.String()
}
