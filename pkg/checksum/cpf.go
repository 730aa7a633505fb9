package checksum

import (
	"math/rand"
	"strings"
)

// TaxID returns an 11-digit CPF whose two check digits are valid.
func TaxID(r *rand.Rand) string {
	digits := randomDigits(r, 9)
	c1, c2 := taxIDCheckDigits(digits)
	return digitString(append(digits, c1, c2))
}

// ValidTaxID reports whether s is an 11-digit CPF with matching check digits.
// Punctuation (dots, dash) is ignored.
func ValidTaxID(s string) bool {
	digits, ok := parseDigits(s, 11)
	if !ok {
		return false
	}
	c1, c2 := taxIDCheckDigits(digits[:9])
	return digits[9] == c1 && digits[10] == c2
}

// FormatTaxID masks an 11-digit CPF as 000.000.000-00. Other inputs are
// returned unchanged.
func FormatTaxID(s string) string {
	if len(s) != 11 || !allDigits(s) {
		return s
	}
	return s[0:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:11]
}

func taxIDCheckDigits(d []int) (int, int) {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += d[i] * (10 - i)
	}
	c1 := (sum * 10) % 11
	if c1 >= 10 {
		c1 = 0
	}

	sum = 0
	for i := 0; i < 9; i++ {
		sum += d[i] * (11 - i)
	}
	sum += c1 * 2
	c2 := (sum * 10) % 11
	if c2 >= 10 {
		c2 = 0
	}
	return c1, c2
}

func randomDigits(r *rand.Rand, n int) []int {
	out := make([]int, n, n+2)
	for i := range out {
		out[i] = r.Intn(10)
	}
	return out
}

func digitString(d []int) string {
	var b strings.Builder
	b.Grow(len(d))
	for _, v := range d {
		b.WriteByte(byte('0' + v))
	}
	return b.String()
}

// parseDigits strips common mask punctuation and returns exactly n digits.
func parseDigits(s string, n int) ([]int, bool) {
	out := make([]int, 0, n)
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			out = append(out, int(ch-'0'))
		case ch == '.' || ch == '-' || ch == '/' || ch == ' ':
			continue
		default:
			return nil, false
		}
	}
	if len(out) != n {
		return nil, false
	}
	return out, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
