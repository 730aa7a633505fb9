package checksum

import "math/rand"

var (
	companyFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	companySecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// CompanyTaxID returns a 14-digit CNPJ whose two check digits are valid.
func CompanyTaxID(r *rand.Rand) string {
	digits := randomDigits(r, 12)
	digits = append(digits, companyCheckDigit(digits, companyFirstWeights))
	digits = append(digits, companyCheckDigit(digits, companySecondWeights))
	return digitString(digits)
}

// ValidCompanyTaxID reports whether s is a 14-digit CNPJ with matching check
// digits. Mask punctuation is ignored.
func ValidCompanyTaxID(s string) bool {
	digits, ok := parseDigits(s, 14)
	if !ok {
		return false
	}
	if digits[12] != companyCheckDigit(digits[:12], companyFirstWeights) {
		return false
	}
	return digits[13] == companyCheckDigit(digits[:13], companySecondWeights)
}

// FormatCompanyTaxID masks a 14-digit CNPJ as 00.000.000/0000-00.
func FormatCompanyTaxID(s string) string {
	if len(s) != 14 || !allDigits(s) {
		return s
	}
	return s[0:2] + "." + s[2:5] + "." + s[5:8] + "/" + s[8:12] + "-" + s[12:14]
}

func companyCheckDigit(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	mod := sum % 11
	if mod < 2 {
		return 0
	}
	return 11 - mod
}
