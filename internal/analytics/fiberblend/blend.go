package fiberblend

import (
	"strconv"
	"strings"
)

// 섬유 분류
const (
	ClassCotton      = "cotton"
	ClassSynthetic   = "synthetic"
	ClassRegenerated = "regenerated"
	ClassSpandex     = "spandex"
)

// aliasTable 수기 입력 섬유명 -> 정규화 키
// 한글/영문/약어 표기를 모두 흡수한다
var aliasTable = map[string]string{
	"면":      "cotton",
	"코튼":     "cotton",
	"cotton": "cotton",
	"co":     "cotton",

	"폴리":        "polyester",
	"폴리에스터":     "polyester",
	"폴리에스테르":    "polyester",
	"polyester": "polyester",
	"poly":      "polyester",
	"pe":        "polyester",

	"나일론":   "nylon",
	"nylon": "nylon",
	"ny":    "nylon",

	"아크릴":     "acrylic",
	"acrylic": "acrylic",
	"ac":      "acrylic",

	"레이온":     "rayon",
	"rayon":   "rayon",
	"비스코스":    "rayon",
	"viscose": "rayon",

	"모달":    "modal",
	"modal": "modal",

	"텐셀":      "tencel",
	"tencel":  "tencel",
	"lyocell": "tencel",
	"리오셀":     "tencel",

	"스판":      "spandex",
	"스판덱스":    "spandex",
	"spandex": "spandex",
	"span":    "spandex",
	"pu":      "spandex",
	"폴리우레탄":   "spandex",
}

// classTable 정규화 키 -> 섬유 분류
var classTable = map[string]string{
	"cotton":    ClassCotton,
	"polyester": ClassSynthetic,
	"nylon":     ClassSynthetic,
	"acrylic":   ClassSynthetic,
	"rayon":     ClassRegenerated,
	"modal":     ClassRegenerated,
	"tencel":    ClassRegenerated,
	"spandex":   ClassSpandex,
}

// Shares 혼용율 분류별 비중 (0~100)
type Shares struct {
	Cotton      float64 `json:"cotton"`
	Synthetic   float64 `json:"synthetic"`
	Regenerated float64 `json:"regenerated"`
	Spandex     float64 `json:"spandex"`
	Other       float64 `json:"other"`
}

// Parse 병렬 "/" 구분 문자열 두 개에서 분류별 비중을 계산한다.
// 토큰 수가 다르면 짧은 쪽 기준으로 조용히 절단하고,
// 비율 합이 0 이하이면 파싱 전체를 폐기한다 (ok=false).
func Parse(fibers, ratios string) (Shares, bool) {
	var shares Shares

	nameTokens := splitTokens(fibers)
	ratioTokens := splitTokens(ratios)

	n := len(nameTokens)
	if len(ratioTokens) < n {
		n = len(ratioTokens)
	}
	if n == 0 {
		return shares, false
	}

	byClass := map[string]float64{}
	var total float64
	for i := 0; i < n; i++ {
		ratio, err := strconv.ParseFloat(ratioTokens[i], 64)
		if err != nil || ratio <= 0 {
			continue
		}
		total += ratio

		class := ClassOf(nameTokens[i])
		byClass[class] += ratio
	}

	if total <= 0 {
		return shares, false
	}

	shares.Cotton = byClass[ClassCotton] / total * 100
	shares.Synthetic = byClass[ClassSynthetic] / total * 100
	shares.Regenerated = byClass[ClassRegenerated] / total * 100
	shares.Spandex = byClass[ClassSpandex] / total * 100
	shares.Other = byClass["other"] / total * 100
	return shares, true
}

// ClassOf 섬유명 하나를 분류로 정규화한다. 모르는 이름은 "other".
func ClassOf(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	canonical, ok := aliasTable[key]
	if !ok {
		return "other"
	}
	if class, ok := classTable[canonical]; ok {
		return class
	}
	return "other"
}

func splitTokens(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, "/") {
		tok = strings.TrimSpace(tok)
		tok = strings.TrimSuffix(tok, "%")
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
