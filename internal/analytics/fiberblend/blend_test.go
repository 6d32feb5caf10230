package fiberblend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicBlend(t *testing.T) {
	shares, ok := Parse("면/폴리에스터/스판", "60/35/5")
	require.True(t, ok)

	assert.InDelta(t, 60, shares.Cotton, 0.001)
	assert.InDelta(t, 35, shares.Synthetic, 0.001)
	assert.InDelta(t, 5, shares.Spandex, 0.001)
	assert.Zero(t, shares.Regenerated)
	assert.Zero(t, shares.Other)
}

func TestParseEnglishAliasesAndPercentSigns(t *testing.T) {
	shares, ok := Parse("Cotton / Poly / Span", "50% / 45% / 5%")
	require.True(t, ok)

	assert.InDelta(t, 50, shares.Cotton, 0.001)
	assert.InDelta(t, 45, shares.Synthetic, 0.001)
	assert.InDelta(t, 5, shares.Spandex, 0.001)
}

func TestParseRegeneratedFibers(t *testing.T) {
	shares, ok := Parse("레이온/텐셀/나일론", "40/30/30")
	require.True(t, ok)

	assert.InDelta(t, 70, shares.Regenerated, 0.001)
	assert.InDelta(t, 30, shares.Synthetic, 0.001)
}

func TestParseTruncatesToShorterList(t *testing.T) {
	// 비율 토큰이 두 개뿐이면 세 번째 섬유는 조용히 버린다
	shares, ok := Parse("면/폴리/스판", "70/30")
	require.True(t, ok)

	assert.InDelta(t, 70, shares.Cotton, 0.001)
	assert.InDelta(t, 30, shares.Synthetic, 0.001)
	assert.Zero(t, shares.Spandex)
}

func TestParseNonPositiveSumDiscarded(t *testing.T) {
	for _, ratios := range []string{"0/0", "-10/-20", "abc/def"} {
		shares, ok := Parse("면/폴리", ratios)
		assert.False(t, ok, "ratios %q", ratios)
		assert.Zero(t, shares, "ratios %q", ratios)
	}
}

func TestParseEmptyInputs(t *testing.T) {
	_, ok := Parse("", "")
	assert.False(t, ok)

	_, ok = Parse("면/폴리", "")
	assert.False(t, ok)
}

func TestParseNormalizesToHundred(t *testing.T) {
	// 합이 100이 아니어도 비중으로 환산
	shares, ok := Parse("면/폴리", "6/4")
	require.True(t, ok)

	assert.InDelta(t, 60, shares.Cotton, 0.001)
	assert.InDelta(t, 40, shares.Synthetic, 0.001)
}

func TestParseUnknownFiberGoesToOther(t *testing.T) {
	shares, ok := Parse("면/울", "80/20")
	require.True(t, ok)

	assert.InDelta(t, 80, shares.Cotton, 0.001)
	assert.InDelta(t, 20, shares.Other, 0.001)
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassCotton, ClassOf("코튼"))
	assert.Equal(t, ClassSynthetic, ClassOf(" NYLON "))
	assert.Equal(t, ClassRegenerated, ClassOf("modal"))
	assert.Equal(t, ClassSpandex, ClassOf("폴리우레탄"))
	assert.Equal(t, "other", ClassOf("울"))
}
