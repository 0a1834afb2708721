// Package currency formats and converts fare amounts. Conversion uses
// a fixed rate table; rates are indicative, not market data.
package currency

import "strconv"

// Rates per 1 KRW, fixed.
var perKRW = map[string]float64{
	"KRW": 1,
	"JPY": 0.11,
	"USD": 0.00072,
}

// Convert converts a whole-unit amount between currencies in the fixed
// rate table, rounding toward zero. Returns false for an unknown
// currency code.
func Convert(amount int, from, to string) (int, bool) {
	fromRate, ok := perKRW[from]
	if !ok {
		return 0, false
	}
	toRate, ok := perKRW[to]
	if !ok {
		return 0, false
	}
	return int(float64(amount) / fromRate * toRate), true
}

// FormatKRW renders a KRW amount with thousands separators, e.g.
// "KRW 167,000".
func FormatKRW(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := addThousandsSeparator(strconv.Itoa(amount), ",")

	result := "KRW " + s
	if negative {
		result = "-" + result
	}
	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
