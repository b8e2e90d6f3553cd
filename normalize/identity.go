package normalize

import (
	"strings"
	"unicode"
)

// CleanDocumentNumber strips a leading "C.C."/"CC" marker together with
// dots, spaces and any other punctuation, keeping only letters and digits.
//
//	"C.C. 12.345.678" -> "12345678"
func CleanDocumentNumber(s string) string {
	s = alnum(strings.ToUpper(s))
	return strings.TrimPrefix(s, "CC")
}

// CleanPlate upper-cases a plate and drops everything but letters and digits.
func CleanPlate(s string) string {
	return alnum(strings.ToUpper(s))
}

// SplitPlate splits a cleaned plate into its letter prefix (the first
// three characters) and the remainder. Plates of three characters or less
// are all prefix.
func SplitPlate(plate string) (letters, rest string) {
	r := []rune(CleanPlate(plate))
	if len(r) <= 3 {
		return string(r), ""
	}
	return string(r[:3]), string(r[3:])
}

func alnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var surnameConnectors = map[string]bool{
	"DE": true, "DEL": true, "LA": true, "LAS": true,
	"LOS": true, "SAN": true, "SANTA": true,
}

// ReorderName turns a name written surnames-first into given names first.
//
// "Surnames, Names" swaps around the comma. Two words swap. With three or
// more words the first two are taken as surnames; the span grows over
// connectors (DE, DEL, LA, ...) and over the word that follows a trailing
// connector. If nothing is left for given names the input is returned
// with its whitespace collapsed.
func ReorderName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if before, after, ok := strings.Cut(s, ","); ok {
		return strings.TrimSpace(strings.TrimSpace(after) + " " + strings.TrimSpace(before))
	}

	tokens := strings.Split(s, " ")
	switch len(tokens) {
	case 1:
		return s
	case 2:
		return tokens[1] + " " + tokens[0]
	}

	end := surnameSpan(tokens)
	if end >= len(tokens) {
		return s
	}
	return strings.Join(tokens[end:], " ") + " " + strings.Join(tokens[:end], " ")
}

// surnameSpan returns how many leading tokens belong to the surnames.
func surnameSpan(tokens []string) int {
	end := 2
	for end < len(tokens) {
		if !surnameConnectors[strings.ToUpper(tokens[end])] && !surnameConnectors[strings.ToUpper(tokens[end-1])] {
			break
		}
		end++
	}
	return end
}

// SplitName splits a surnames-first name into the first surname, the
// remaining surnames and the given names, with the same rules as
// ReorderName. A single word is taken as the given name.
func SplitName(s string) (first, second, given string) {
	s = strings.Join(strings.Fields(s), " ")
	if before, after, ok := strings.Cut(s, ","); ok {
		first, second, _ = strings.Cut(strings.TrimSpace(before), " ")
		return first, strings.TrimSpace(second), strings.TrimSpace(after)
	}

	tokens := strings.Fields(s)
	switch len(tokens) {
	case 0:
		return "", "", ""
	case 1:
		return "", "", tokens[0]
	case 2:
		return tokens[0], "", tokens[1]
	}

	end := min(surnameSpan(tokens), len(tokens))
	lead := 0
	for lead < end-1 && surnameConnectors[strings.ToUpper(tokens[lead])] {
		lead++
	}
	return strings.Join(tokens[:lead+1], " "), strings.Join(tokens[lead+1:end], " "), strings.Join(tokens[end:], " ")
}
