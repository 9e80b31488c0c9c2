package service

import "strings"

// Hebrew final letters fold onto their regular forms so a query typed with
// a mid-word letter still hits names spelled with the final form.
var finalLetterFold = strings.NewReplacer(
	"ך", "כ",
	"ם", "מ",
	"ן", "נ",
	"ף", "פ",
	"ץ", "צ",
)

// NormalizeQuery lowercases, trims, strips Hebrew pointing (niqqud and
// cantillation marks, U+0591..U+05C7) and folds final letters.
func NormalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))

	var b strings.Builder
	b.Grow(len(q))
	for _, r := range q {
		if r >= 0x0591 && r <= 0x05C7 {
			continue
		}
		b.WriteRune(r)
	}
	return finalLetterFold.Replace(b.String())
}

// Levenshtein returns the edit distance between two strings, computed over
// runes so multi-byte Hebrew letters count as single edits.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
