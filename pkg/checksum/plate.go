package checksum

import "math/rand"

const (
	plateLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	plateDigits  = "0123456789"
)

// PlateNew returns a Mercosul plate in the LLLDLDD layout.
func PlateNew(r *rand.Rand) string {
	return fromPattern(r, "LLLDLDD")
}

// PlateOld returns a pre-Mercosul plate in the LLL-DDDD layout.
func PlateOld(r *rand.Rand) string {
	return fromPattern(r, "LLL-DDDD")
}

// ValidPlateNew reports whether s follows the LLLDLDD layout.
func ValidPlateNew(s string) bool {
	return matchesPattern(s, "LLLDLDD")
}

// ValidPlateOld reports whether s follows the LLL-DDDD layout.
func ValidPlateOld(s string) bool {
	return matchesPattern(s, "LLL-DDDD")
}

func fromPattern(r *rand.Rand, pattern string) string {
	out := make([]byte, len(pattern))
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case 'L':
			out[i] = plateLetters[r.Intn(len(plateLetters))]
		case 'D':
			out[i] = plateDigits[r.Intn(len(plateDigits))]
		default:
			out[i] = pattern[i]
		}
	}
	return string(out)
}

func matchesPattern(s, pattern string) bool {
	if len(s) != len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		ch := s[i]
		switch pattern[i] {
		case 'L':
			if ch < 'A' || ch > 'Z' {
				return false
			}
		case 'D':
			if ch < '0' || ch > '9' {
				return false
			}
		default:
			if ch != pattern[i] {
				return false
			}
		}
	}
	return true
}
