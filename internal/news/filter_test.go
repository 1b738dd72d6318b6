package news

import "testing"

func TestIsMarketRelevant(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		title   string
		summary string
		want    bool
	}{
		{
			name:  "risk keyword overrides exclusion",
			title: "금리 인상 속 스포츠 구단 매각",
			want:  true,
		},
		{
			name:  "exclusion keyword only",
			title: "연예인 결혼 발표",
			want:  false,
		},
		{
			name:  "exclusion pattern only",
			title: "구청 주관 지역 축제 개막",
			want:  false,
		},
		{
			name:  "no inclusion keyword",
			title: "길고양이 구조 소식",
			want:  false,
		},
		{
			name:  "inclusion keyword passes",
			title: "코스피 실적 시즌 개막",
			want:  true,
		},
		{
			name:  "local story without nationwide cue suppressed",
			title: "지역 소상공인 대출 지원 확대",
			want:  false,
		},
		{
			name:  "local story with nationwide cue kept",
			title: "지역 균형 발전과 수도권 주택 공급 정책",
			want:  true,
		},
		{
			name:    "summary text also counts",
			title:   "오늘의 뉴스",
			summary: "한국은행이 기준 금리를 동결했다",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.IsMarketRelevant(Article{Title: tt.title, Summary: tt.summary})
			if got != tt.want {
				t.Errorf("IsMarketRelevant(%q %q) = %v, want %v", tt.title, tt.summary, got, tt.want)
			}
		})
	}
}

func TestIsMarketRelevantRiskBeatsEveryExclusion(t *testing.T) {
	rules := DefaultRules()
	a := Article{Title: "금리", Summary: "스포츠 축제 연예 사고"}
	if !rules.IsMarketRelevant(a) {
		t.Fatal("risk keyword must short-circuit all exclusions")
	}
}

func TestIsMarketRelevantCustomRules(t *testing.T) {
	rules := &Rules{
		Risk:    []string{"war"},
		Exclude: []string{"gossip"},
		Include: []string{"rates"},
	}

	if !rules.IsMarketRelevant(Article{Title: "war drums"}) {
		t.Error("custom risk keyword not honored")
	}
	if rules.IsMarketRelevant(Article{Title: "celebrity gossip on rates"}) {
		t.Error("custom exclusion not honored")
	}
	if rules.IsMarketRelevant(Article{Title: "nothing matches"}) {
		t.Error("article without inclusion keyword must be dropped")
	}
	if !rules.IsMarketRelevant(Article{Title: "rates outlook"}) {
		t.Error("custom inclusion keyword not honored")
	}
}
