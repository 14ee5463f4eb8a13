package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTop_RanksByFrequency(t *testing.T) {
	e := NewExtractor()

	kw := e.Top("insurance insurance insurance claim claim deductible", 2)
	assert.Equal(t, []string{"insurance", "claim"}, kw)
}

func TestTop_FiltersStopwords(t *testing.T) {
	e := NewExtractor()

	kw := e.Top("the policy and the premium for the policy", 5)
	require.Len(t, kw, 2)
	assert.Equal(t, "policy", kw[0])
	assert.NotContains(t, kw, "the")
	assert.NotContains(t, kw, "and")
}

func TestTop_TiesAlphabetical(t *testing.T) {
	e := NewExtractor()

	kw := e.Top("zebra apple zebra apple", 2)
	assert.Equal(t, []string{"apple", "zebra"}, kw)
}

func TestTop_EmptyText(t *testing.T) {
	e := NewExtractor()

	assert.Nil(t, e.Top("", 5))
	assert.Nil(t, e.Top("the and of", 5))
}

func TestTop_BoundsResult(t *testing.T) {
	e := NewExtractor()

	kw := e.Top("alpha beta gamma delta epsilon", 3)
	assert.Len(t, kw, 3)
}
