package checksum

import "math/rand"

// DriverLicense returns an 11-digit CNH: nine random digits followed by two
// check digits.
func DriverLicense(r *rand.Rand) string {
	digits := randomDigits(r, 9)
	v1, v2 := driverLicenseCheckDigits(digits)
	return digitString(append(digits, v1, v2))
}

// ValidDriverLicense reports whether s is an 11-digit CNH with matching check
// digits.
func ValidDriverLicense(s string) bool {
	digits, ok := parseDigits(s, 11)
	if !ok {
		return false
	}
	v1, v2 := driverLicenseCheckDigits(digits[:9])
	return digits[9] == v1 && digits[10] == v2
}

func driverLicenseCheckDigits(d []int) (int, int) {
	sum1, sum2 := 0, 0
	for i := 0; i < 9; i++ {
		sum1 += d[i] * (9 - i)
		sum2 += d[i] * (i + 1)
	}
	v1 := sum1 % 11
	if v1 >= 10 {
		v1 = 0
	}
	v2 := sum2 % 11
	if v2 >= 10 {
		v2 = 0
	}
	return v1, v2
}
