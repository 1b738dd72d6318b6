package news

import (
	"regexp"
	"strings"
)

// Rules holds the keyword and pattern tables the relevance filter consumes.
// The tables are data, not logic: tests and callers may supply their own.
type Rules struct {
	// Risk keywords short-circuit to relevant, overriding every exclusion.
	Risk []string
	// Exclude keywords and patterns mark entertainment, civic events,
	// CSR, accidents and sports as irrelevant.
	Exclude         []string
	ExcludePatterns []*regexp.Regexp
	// Include keywords an article must match to stay in the pipeline.
	Include []string
	// LocalCue flags region-level stories; a match is suppressed unless a
	// NationwideCue shows market-wide reach.
	LocalCue       *regexp.Regexp
	NationwideCues []*regexp.Regexp
}

// DefaultRules returns the production keyword tables for the Korean market
// briefing.
func DefaultRules() *Rules {
	return &Rules{
		Risk: []string{
			"지정학",
			"제재",
			"전쟁",
			"유가",
			"환율",
			"금리",
			"물가",
		},
		Exclude: []string{
			"스포츠", "연예", "감독", "경기", "승리", "선수",
			"사망", "화재", "추락", "간판",
			"MOU", "협약", "봉사", "기부",
			"행사", "축제", "홍보", "캠페인",
			"사회공헌", "후원",
		},
		ExcludePatterns: []*regexp.Regexp{
			regexp.MustCompile(`연예|배우|가수|아이돌|유튜버|인플루언서`),
			regexp.MustCompile(`개인|자서전|북\s?콘서트|미담|선행|봉사`),
			regexp.MustCompile(`축제|행사|MOU|협약|지자체|구청|시청|군청|도청`),
			regexp.MustCompile(`사회공헌|기부|후원|캠페인|CSR|ESG\s?활동`),
			regexp.MustCompile(`사고|재해|사건|화재|붕괴|지진|태풍|홍수|폭설`),
			regexp.MustCompile(`스포츠|감독|경기|승리|선수`),
		},
		Include: []string{
			"금리", "물가", "인플레이션", "환율", "정책", "규제", "세제",
			"수급", "리스크", "지표", "경기", "GDP", "고용", "실업",
			"채권", "주식", "증시", "코스피", "코스닥", "나스닥",
			"실적", "가이던스", "공급", "수요",
			"부동산", "집값", "주택", "대출", "금융",
			"유가", "제재", "전쟁", "지정학",
		},
		LocalCue: regexp.MustCompile(`지역|지방|시군구`),
		NationwideCues: []*regexp.Regexp{
			regexp.MustCompile(`전국|전국적|전국민|전국구`),
			regexp.MustCompile(`수도권|서울|부산|대구|인천|광주|대전|울산`),
		},
	}
}

// IsMarketRelevant classifies an article by its title and one-line summary.
// Order matters: risk keywords win over exclusions, exclusions win over
// inclusions, and local-only stories are suppressed last.
func (r *Rules) IsMarketRelevant(a Article) bool {
	text := a.Title + " " + a.Summary

	if containsAny(text, r.Risk) {
		return true
	}
	if r.isExcluded(text) {
		return false
	}
	if !containsAny(text, r.Include) {
		return false
	}
	if r.LocalCue != nil && r.LocalCue.MatchString(text) && !r.hasNationwideCue(text) {
		return false
	}
	return true
}

func (r *Rules) isExcluded(text string) bool {
	if containsAny(text, r.Exclude) {
		return true
	}
	for _, p := range r.ExcludePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func (r *Rules) hasNationwideCue(text string) bool {
	for _, p := range r.NationwideCues {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
