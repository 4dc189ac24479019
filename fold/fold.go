// Package fold reduces free text typed by back-office operators to a
// comparable form: no diacritics, case folded, single spaces.
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String returns s without diacritics, case folded, and with runs of blanks collapsed into a single space.
//
//	String("  Amortización (Cliente) ") == "amortizacion (cliente)"
func String(s string) string {
	// transformers carry state, a new chain is needed for each call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}
