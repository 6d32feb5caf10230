package stylecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFullCode(t *testing.T) {
	info := Decode("STMKT00125S")

	assert.Equal(t, "ST", info.Brand)
	assert.Equal(t, "Men", info.Gender)
	assert.Equal(t, "Knit", info.Item)
	assert.Equal(t, "Tops", info.Category)
	assert.Equal(t, 2025, info.Year)
	assert.Equal(t, "SS", info.Season)
}

func TestDecodeNormalizesCase(t *testing.T) {
	upper := Decode("STWJK00224F")
	lower := Decode("  stwjk00224f ")

	assert.Equal(t, upper, lower)
	assert.Equal(t, "Women", upper.Gender)
	assert.Equal(t, "Jacket", upper.Item)
	assert.Equal(t, "Outer", upper.Category)
	assert.Equal(t, 2024, upper.Year)
	assert.Equal(t, "FW", upper.Season)
}

func TestDecodeShortCodeFailsSoft(t *testing.T) {
	for _, code := range []string{"", "ST", "STMKT00125"} {
		info := Decode(code)
		assert.Equal(t, Unknown, info.Brand, "code %q", code)
		assert.Equal(t, Unknown, info.Gender, "code %q", code)
		assert.Equal(t, Unknown, info.Item, "code %q", code)
		assert.Equal(t, Unknown, info.Category, "code %q", code)
		assert.Equal(t, Unknown, info.Season, "code %q", code)
		assert.Zero(t, info.Year, "code %q", code)
	}
}

func TestDecodeUnknownTableKeys(t *testing.T) {
	// 성별 X, 아이템 ZZ, 시즌 Q는 테이블에 없음
	info := Decode("STXZZ00159Q")

	assert.Equal(t, "ST", info.Brand)
	assert.Equal(t, Unknown, info.Gender)
	assert.Equal(t, Unknown, info.Item)
	assert.Equal(t, Unknown, info.Category)
	assert.Equal(t, 2059, info.Year)
	assert.Equal(t, Unknown, info.Season)
}

func TestDecodeNonNumericYear(t *testing.T) {
	info := Decode("STMTS001XXS")

	assert.Zero(t, info.Year)
	assert.Equal(t, "T-Shirt", info.Item)
	assert.Equal(t, "SS", info.Season)
}

func TestDecodeIsPureFunctionOfTables(t *testing.T) {
	// 동일 입력은 항상 동일 결과
	a := Decode("STUPD01024F")
	b := Decode("STUPD01024F")
	assert.Equal(t, a, b)
	assert.Equal(t, "Unisex", a.Gender)
	assert.Equal(t, "Padding", a.Item)
}
