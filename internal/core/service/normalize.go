package service

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds a customer name to the form its blind index is
// computed over: lowercase, NFKC, trimmed, single spaces.
func NormalizeName(name string) string {
	folded := norm.NFKC.String(strings.ToLower(name))
	return strings.Join(strings.Fields(folded), " ")
}
