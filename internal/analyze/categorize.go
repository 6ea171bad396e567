package analyze

import (
	"strings"

	"github.com/fintrace-dev/fintrace/internal/model"
)

// categoryKeywords is evaluated in priority order; the first keyword found
// in the narration wins. A narration matching none falls through to OTHER.
var categoryKeywords = []struct {
	keyword  string
	category model.Category
}{
	{"NEFT", model.CategoryNEFT},
	{"IMPS", model.CategoryIMPS},
	{"UPI", model.CategoryUPI},
	{"ATM", model.CategoryATM},
	{"TRANSFER", model.CategoryTransfer},
}

// Categorize classifies a narration by case-insensitive keyword search.
func Categorize(narration string) model.Category {
	upper := strings.ToUpper(narration)
	for _, ck := range categoryKeywords {
		if strings.Contains(upper, ck.keyword) {
			return ck.category
		}
	}
	return model.CategoryOther
}

// counterpartyFallbackLen caps the descriptive fallback key.
const counterpartyFallbackLen = 20

// ExtractCounterparty derives a pseudo-identity from a narration: the first
// contiguous run of 10-12 digits (an account-number-shaped token), or the
// first 20 characters when no such run exists. The run does not need to be
// delimited from surrounding text, so "REF1234567890" yields a key. The fallback can merge
// distinct counterparties that share a narration prefix; that false-merge
// risk is accepted.
func ExtractCounterparty(narration string) string {
	runStart, runLen := -1, 0
	for i := 0; i <= len(narration); i++ {
		if i < len(narration) && narration[i] >= '0' && narration[i] <= '9' {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			continue
		}
		if runLen >= 10 && runLen <= 12 {
			return narration[runStart : runStart+runLen]
		}
		runLen = 0
	}

	r := []rune(narration)
	if len(r) > counterpartyFallbackLen {
		return string(r[:counterpartyFallbackLen])
	}
	return narration
}
