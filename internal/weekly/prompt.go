package weekly

import (
	"fmt"
	"strings"

	"github.com/yesroad/daily-briefing-bot/internal/news"
)

func trimToMax(input string, max int) string {
	runes := []rune(input)
	if len(runes) <= max {
		return input
	}
	trimmed := strings.TrimRight(string(runes[:max-1]), " \t\r\n")
	return trimmed + "…"
}

// BuildSelectionPrompt renders the step-1 instruction block: pick 6..10
// representative stories and preserve their source indexes.
func BuildSelectionPrompt(articles []news.Article) string {
	lines := make([]string, len(articles))
	for i, a := range articles {
		lines[i] = fmt.Sprintf("%d. %s — %s", i+1, trimToMax(a.Title, 140), trimToMax(a.Summary, 220))
	}

	parts := []string{
		"다음은 최근 7일 경제 뉴스 요약 목록입니다.",
		"각 항목은 제목(최대 140자)과 1줄 요약(최대 220자)만 포함합니다.",
		"",
		"역할: 주간 대표 기사 선별/요약 (근거 보존)",
		"",
		"지침 (매우 중요):",
		"- 반드시 지정된 JSON 스키마로만 응답하세요. 설명이나 부연 텍스트는 금지합니다.",
		"- URL, 매체명, 출처, 링크는 절대 포함하지 마세요.",
		"- items는 6~10개로 제한합니다.",
		"- 각 item은 입력 기사 목록 중 하나와 1:1로 연결되어야 하며 sourceIndex를 반드시 포함해야 합니다.",
		"- sourceIndex는 입력 번호(1~N) 정수이며, item당 하나만 허용합니다.",
		"- 여러 기사를 종합한 문장, sourceIndex 누락, 범위 밖 숫자는 금지합니다.",
		"- 입력 요약에서 벗어난 사실 추가/재해석은 금지합니다.",
		"",
		"작성 원칙:",
		"- title은 반드시 다음 형식으로만 작성: \"YYYY년 M월 N주차 경제 이슈 요약\"",
		"- 콜론(:), '요약:', '주간 경제 요약' 같은 접두어는 금지합니다.",
		"- title은 20자 내외로 유지하고 불필요한 수식어는 쓰지 마세요.",
		"- 각 item의 title은 50자 이내, summary는 1문장 120자 내외로 작성하세요.",
		"- 요약은 '근거 보존'이 목적이며, 해석보다는 사실과 직접적 의미만 유지하세요.",
		"",
		"출력 형식:",
		"- items 배열 요소는 {\"title\":\"...\",\"summary\":\"...\",\"sourceIndex\":1} 형태로만 작성하세요.",
		"",
		strings.Join(lines, "\n"),
	}
	return strings.Join(parts, "\n")
}

// BuildArticlePrompt renders the step-2 instruction block that turns the
// sanitized selection into an HTML post body.
func BuildArticlePrompt(selection *Selection) string {
	lines := make([]string, len(selection.Items))
	for i, item := range selection.Items {
		lines[i] = fmt.Sprintf("%d. %s — %s", i+1, trimToMax(item.Title, 60), trimToMax(item.Summary, 140))
	}

	parts := []string{
		"역할: 경제 전문 블로그 편집자",
		"목표: 이번 주 흐름을 자연스럽게 정리한 주간 경제 편집본 작성",
		"",
		"작성 지침:",
		"- 아래 요약 목록만 근거로 사용하세요. 외부 지식이나 추가 추정은 금지합니다.",
		"- 보고서처럼 딱딱하지 않게, 읽기 쉬운 칼럼 톤으로 작성하세요.",
		"- 과장된 단정 대신 완화 표현을 사용하세요.",
		"- 뉴스 나열이 아니라 흐름과 연결성 중심으로 정리하세요.",
		"- 3~5개의 소제목(<h2>)과 단락(<p>)을 섞어 구성하세요.",
		"- 필요한 경우 짧은 불릿(<ul><li>)을 포함해도 됩니다.",
		"- 출력은 HTML 본문만 허용합니다. <html>, <body>, Markdown 금지.",
		"- 참고 링크 섹션은 작성하지 마세요.",
		"",
		fmt.Sprintf("제목(참고): %s", selection.Title),
		"",
		"기사 요약 목록:",
		strings.Join(lines, "\n"),
	}
	return strings.Join(parts, "\n")
}
