package stylecode

import (
	"strconv"
	"strings"

	"github.com/modaworks/vesti/internal/analytics/entity"
)

// 품번 구조 (고정 폭)
//
//	ST M KT 001 25 S
//	│  │ │  │   │  └─ 시즌 (1자리)
//	│  │ │  │   └──── 연도 (2자리)
//	│  │ │  └──────── 시퀀스 (3자리, 디코딩 대상 아님)
//	│  │ └─────────── 아이템 (2자리)
//	│  └───────────── 성별 (1자리)
//	└──────────────── 브랜드 (2자리)
const (
	brandStart   = 0
	brandEnd     = 2
	genderOffset = 2
	itemStart    = 3
	itemEnd      = 5
	yearStart    = 8
	yearEnd      = 10
	seasonOffset = 10

	// MinLength 디코딩 가능한 최소 품번 길이
	MinLength = 11
)

// Unknown 디코딩 실패 시 대체값
const Unknown = "Unknown"

var genderTable = map[string]string{
	"M": "Men",
	"W": "Women",
	"U": "Unisex",
}

type itemInfo struct {
	name     string
	category string
}

var itemTable = map[string]itemInfo{
	"TS": {"T-Shirt", "Tops"},
	"SH": {"Shirt", "Tops"},
	"KT": {"Knit", "Tops"},
	"SW": {"Sweatshirt", "Tops"},
	"HD": {"Hoodie", "Tops"},
	"PL": {"Polo", "Tops"},
	"PT": {"Pants", "Bottoms"},
	"DP": {"Denim Pants", "Bottoms"},
	"SK": {"Skirt", "Bottoms"},
	"ST": {"Shorts", "Bottoms"},
	"JK": {"Jacket", "Outer"},
	"JP": {"Jumper", "Outer"},
	"CT": {"Coat", "Outer"},
	"PD": {"Padding", "Outer"},
	"VT": {"Vest", "Outer"},
	"OP": {"One-Piece", "Dress"},
	"CP": {"Cap", "Acc"},
	"BG": {"Bag", "Acc"},
}

var seasonTable = map[string]string{
	"S": "SS",
	"F": "FW",
}

// Decode 품번을 고정 위치 테이블 조회로 디코딩한다.
// 길이 미달이거나 테이블에 없는 코드는 Unknown으로 대체하며 절대 실패하지 않는다.
func Decode(code string) entity.StyleInfo {
	info := entity.StyleInfo{
		Brand:    Unknown,
		Gender:   Unknown,
		Item:     Unknown,
		Category: Unknown,
		Season:   Unknown,
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < MinLength {
		return info
	}

	info.Brand = code[brandStart:brandEnd]

	if g, ok := genderTable[string(code[genderOffset])]; ok {
		info.Gender = g
	}

	if it, ok := itemTable[code[itemStart:itemEnd]]; ok {
		info.Item = it.name
		info.Category = it.category
	}

	if yy, err := strconv.Atoi(code[yearStart:yearEnd]); err == nil {
		info.Year = 2000 + yy
	}

	if s, ok := seasonTable[string(code[seasonOffset])]; ok {
		info.Season = s
	}

	return info
}

// ItemCodes 등록된 아이템 코드 목록 (입력 폼 드롭다운용)
func ItemCodes() map[string]string {
	out := make(map[string]string, len(itemTable))
	for code, it := range itemTable {
		out[code] = it.name
	}
	return out
}
