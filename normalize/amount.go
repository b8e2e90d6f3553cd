package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	// ZeroPesos is the phrase for zero and negative amounts.
	ZeroPesos = "CERO PESOS"
	// UnknownPesos is used when an amount cannot be spelled out.
	UnknownPesos = "VALOR EN PESOS"
)

var (
	units = [...]string{"", "UN", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}
	tens  = [...]string{"", "DIEZ", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}
	teens = [...]string{"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISEIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE", "VEINTE"}
)

func belowHundred(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 10:
		return units[n]
	case n <= 20:
		return teens[n-10]
	case n < 30:
		return "VEINTI" + units[n%10]
	case n%10 == 0:
		return tens[n/10]
	}
	return tens[n/10] + " Y " + units[n%10]
}

func belowThousand(n int64) string {
	if n < 100 {
		return belowHundred(n)
	}
	hundreds, rest := n/100, n%100
	var head string
	switch hundreds {
	case 1:
		if rest == 0 {
			return "CIEN"
		}
		head = "CIENTO"
	case 5:
		head = "QUINIENTOS"
	case 7:
		head = "SETECIENTOS"
	case 9:
		head = "NOVECIENTOS"
	default:
		head = units[hundreds] + "CIENTOS"
	}
	if rest == 0 {
		return head
	}
	return head + " " + belowHundred(rest)
}

// AmountToWords spells a peso amount in upper-case Spanish, for example
// 1500000 -> "UN MILLON QUINIENTOS MIL PESOS". Zero and negative amounts
// give ZeroPesos; amounts of a thousand million or more give UnknownPesos.
func AmountToWords(n int64) string {
	if n <= 0 {
		return ZeroPesos
	}
	if n >= 1_000_000_000 {
		return UnknownPesos
	}

	millions := n / 1_000_000
	thousands := n % 1_000_000 / 1000
	rest := n % 1000

	var words []string
	switch {
	case millions == 1:
		words = append(words, "UN MILLON")
	case millions > 1:
		words = append(words, belowThousand(millions), "MILLONES")
	}
	switch {
	case thousands == 1:
		words = append(words, "MIL")
	case thousands > 1:
		words = append(words, belowThousand(thousands), "MIL")
	}
	if rest > 0 {
		words = append(words, belowThousand(rest))
	}
	return strings.Join(words, " ") + " PESOS"
}

// ParseAmount reads a sale amount from a payload value. Numbers are
// rounded to whole pesos. Strings may carry a currency sign, thousands
// separators ("15.000.000" or "15,000,000") and a one or two digit
// decimal part, which is dropped.
func ParseAmount(v any) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(t), true
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(math.Round(t)), true
	case float32:
		return ParseAmount(float64(t))
	case json.Number:
		return ParseAmount(t.String())
	case string:
		return parseAmountString(t)
	}
	return 0, false
}

func parseAmountString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i := strings.LastIndexAny(s, ".,"); i >= 0 {
		if frac := s[i+1:]; len(frac) >= 1 && len(frac) <= 2 && isDigits(frac) {
			s = s[:i]
		}
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(strings.TrimLeft(s, "$ "), "-") {
		n = -n
	}
	return n, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders n as "$15,000,000".
func FormatAmount(n int64) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
