package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQueryStripsNiqqud(t *testing.T) {
	// "שָׁלוֹם" with pointing normalizes to bare letters.
	assert.Equal(t, "שלום", NormalizeQuery("שָׁלוֹם"))
}

func TestNormalizeQueryFoldsFinalLetters(t *testing.T) {
	assert.Equal(t, "כהנ", NormalizeQuery("כהן"))
	assert.Equal(t, "יוספ", NormalizeQuery("יוסף"))
	assert.Equal(t, "פרצ", NormalizeQuery("פרץ"))
}

func TestNormalizeQueryLowercasesAndTrims(t *testing.T) {
	assert.Equal(t, "dana levi", NormalizeQuery("  Dana Levi  "))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("cohen", "cohen"))
	assert.Equal(t, 1, Levenshtein("cohen", "kohen"))
	assert.Equal(t, 1, Levenshtein("cohen", "chen"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 5, Levenshtein("", "abcde"))
	assert.Equal(t, 5, Levenshtein("abcde", ""))
}

func TestLevenshteinCountsHebrewRunesNotBytes(t *testing.T) {
	// One substituted letter is one edit even though it spans two bytes.
	assert.Equal(t, 1, Levenshtein("כהנ", "כהת"))
}
