package weekly

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yesroad/daily-briefing-bot/internal/news"
)

// Reference is one 참고 링크 entry at the bottom of the post.
type Reference struct {
	Title string
	URL   string
}

// Post is a rendered WordPress draft payload.
type Post struct {
	Title   string
	Content string
}

// Title formats the fixed weekly post title, e.g. "2026년 9월 1주차 경제
// 이슈 요약". Week of month is (day-1)/7+1.
func Title(now time.Time) string {
	week := (now.Day()-1)/7 + 1
	return fmt.Sprintf("%d년 %d월 %d주차 경제 이슈 요약", now.Year(), int(now.Month()), week)
}

// References resolves each selected item back to its article URL. The
// canonical URL wins over the raw link, missing URLs are skipped, duplicate
// URLs are collapsed, and at most five links are kept.
func References(selection *Selection, articles []news.Article) []Reference {
	var refs []Reference
	seen := make(map[string]bool)

	for _, item := range selection.Items {
		if item.SourceIndex < 1 || item.SourceIndex > len(articles) {
			continue
		}
		article := articles[item.SourceIndex-1]
		url := article.CanonicalURL
		if url == "" {
			url = article.Link
		}
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		refs = append(refs, Reference{Title: item.Title, URL: url})
		if len(refs) >= 5 {
			break
		}
	}
	return refs
}

// RenderPost wraps the step-2 HTML body with the reference-link section.
func RenderPost(title, contentHTML string, refs []Reference) Post {
	parts := []string{strings.TrimSpace(contentHTML)}

	if len(refs) > 0 {
		items := make([]string, len(refs))
		for i, ref := range refs {
			items[i] = fmt.Sprintf(`  <li><a href="%s">%s</a></li>`,
				html.EscapeString(ref.URL), html.EscapeString(ref.Title))
		}
		section := strings.Join([]string{
			"<h2>참고 링크</h2>",
			"<ul>",
			strings.Join(items, "\n"),
			"</ul>",
		}, "\n")
		parts = append(parts, section)
	}

	return Post{
		Title:   strings.TrimSpace(title),
		Content: strings.Join(parts, "\n\n"),
	}
}
