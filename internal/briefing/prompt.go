package briefing

import (
	"fmt"
	"strings"

	"github.com/yesroad/daily-briefing-bot/internal/news"
)

const (
	maxTitleRunes   = 140
	maxSummaryRunes = 220
)

// trimToMax cuts input to at most max runes. The ellipsis marker counts
// toward the limit and trailing whitespace before the cut is dropped.
func trimToMax(input string, max int) string {
	runes := []rune(input)
	if len(runes) <= max {
		return input
	}
	trimmed := strings.TrimRight(string(runes[:max-1]), " \t\r\n")
	return trimmed + "…"
}

// articleLines enumerates articles as "{1-based index}. {title} — {summary}".
func articleLines(articles []news.Article) []string {
	lines := make([]string, len(articles))
	for i, a := range articles {
		title := trimToMax(a.Title, maxTitleRunes)
		summary := trimToMax(a.Summary, maxSummaryRunes)
		lines[i] = fmt.Sprintf("%d. %s — %s", i+1, title, summary)
	}
	return lines
}

// BuildPrompt renders the instruction block for the daily summary call.
// Schema enforcement happens downstream; the prompt only describes it.
func BuildPrompt(articles []news.Article) string {
	parts := []string{
		"다음은 RSS 뉴스 요약 목록입니다.",
		"각 항목은 제목(최대 140자)과 1줄 요약(최대 220자)만 포함합니다.",
		"지침:",
		"- 반드시 지정된 JSON 스키마로만 응답하세요.",
		"- 각 카테고리는 간결한 불릿 스타일 문장(문장형 문자열) 배열로 작성하세요.",
		"- 각 문장은 입력 기사 목록 중 하나와 1:1로 연결되어야 하며 sourceIndex를 반드시 포함해야 합니다.",
		"- sourceIndex는 입력 번호(1~N) 정수이며, 문장당 하나만 허용합니다.",
		"- URL은 포함하지 마세요.",
		"",
		strings.Join(articleLines(articles), "\n"),
	}
	return strings.Join(parts, "\n")
}
