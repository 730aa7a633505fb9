package checksum

import (
	"math/rand"
	"strconv"
	"testing"
)

// recompute helpers mirror the documented weighted-sum rules digit by digit
// so the generators are checked against an independent rendition.

func recomputeTaxID(t *testing.T, s string) (byte, byte) {
	t.Helper()
	sum := 0
	for i := 0; i < 9; i++ {
		sum += digitAt(t, s, i) * (10 - i)
	}
	c1 := (sum * 10) % 11
	if c1 == 10 || c1 == 11 {
		c1 = 0
	}
	sum = 0
	for i := 0; i < 9; i++ {
		sum += digitAt(t, s, i) * (11 - i)
	}
	sum += c1 * 2
	c2 := (sum * 10) % 11
	if c2 == 10 || c2 == 11 {
		c2 = 0
	}
	return strconv.Itoa(c1)[0], strconv.Itoa(c2)[0]
}

func recomputeCompany(t *testing.T, s string, n int, weights []int) byte {
	t.Helper()
	sum := 0
	for i := 0; i < n; i++ {
		sum += digitAt(t, s, i) * weights[i]
	}
	mod := sum % 11
	if mod < 2 {
		return '0'
	}
	return strconv.Itoa(11 - mod)[0]
}

func digitAt(t *testing.T, s string, i int) int {
	t.Helper()
	if s[i] < '0' || s[i] > '9' {
		t.Fatalf("expected digit at %d in %q", i, s)
	}
	return int(s[i] - '0')
}

func TestTaxID_CheckDigitsRecompute(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		s := TaxID(r)
		if len(s) != 11 {
			t.Fatalf("expected 11 digits, got %q", s)
		}
		c1, c2 := recomputeTaxID(t, s)
		if s[9] != c1 || s[10] != c2 {
			t.Fatalf("check digits mismatch for %q: expected %c%c", s, c1, c2)
		}
		if !ValidTaxID(s) {
			t.Fatalf("expected %q to validate", s)
		}
	}
}

func TestCompanyTaxID_CheckDigitsRecompute(t *testing.T) {
	first := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	second := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		s := CompanyTaxID(r)
		if len(s) != 14 {
			t.Fatalf("expected 14 digits, got %q", s)
		}
		if got := recomputeCompany(t, s, 12, first); s[12] != got {
			t.Fatalf("first check digit mismatch for %q: expected %c", s, got)
		}
		if got := recomputeCompany(t, s, 13, second); s[13] != got {
			t.Fatalf("second check digit mismatch for %q: expected %c", s, got)
		}
		if !ValidCompanyTaxID(s) {
			t.Fatalf("expected %q to validate", s)
		}
	}
}

func TestDriverLicense_CheckDigitsRecompute(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		s := DriverLicense(r)
		if len(s) != 11 {
			t.Fatalf("expected 11 digits, got %q", s)
		}
		sum1, sum2 := 0, 0
		for j := 0; j < 9; j++ {
			sum1 += digitAt(t, s, j) * (9 - j)
			sum2 += digitAt(t, s, j) * (j + 1)
		}
		v1, v2 := sum1%11, sum2%11
		if v1 >= 10 {
			v1 = 0
		}
		if v2 >= 10 {
			v2 = 0
		}
		if digitAt(t, s, 9) != v1 || digitAt(t, s, 10) != v2 {
			t.Fatalf("check digits mismatch for %q: expected %d%d", s, v1, v2)
		}
		if !ValidDriverLicense(s) {
			t.Fatalf("expected %q to validate", s)
		}
	}
}

func TestValidators_KnownDocuments(t *testing.T) {
	cases := []struct {
		name  string
		valid func(string) bool
		input string
		want  bool
	}{
		{"cpf plain", ValidTaxID, "52998224725", true},
		{"cpf masked", ValidTaxID, "529.982.247-25", true},
		{"cpf wrong digit", ValidTaxID, "52998224724", false},
		{"cpf short", ValidTaxID, "5299822472", false},
		{"cpf letters", ValidTaxID, "5299822472a", false},
		{"cnpj plain", ValidCompanyTaxID, "11222333000181", true},
		{"cnpj masked", ValidCompanyTaxID, "11.222.333/0001-81", true},
		{"cnpj wrong digit", ValidCompanyTaxID, "11222333000182", false},
		{"plate new", ValidPlateNew, "BRA2E19", true},
		{"plate new lowercase", ValidPlateNew, "bra2e19", false},
		{"plate old", ValidPlateOld, "ABC-1234", true},
		{"plate old without dash", ValidPlateOld, "ABC1234", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.valid(tc.input); got != tc.want {
				t.Fatalf("expected %v for %q, got %v", tc.want, tc.input, got)
			}
		})
	}
}

func TestPlates_FollowLayouts(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		if s := PlateNew(r); !ValidPlateNew(s) {
			t.Fatalf("unexpected new plate %q", s)
		}
		if s := PlateOld(r); !ValidPlateOld(s) {
			t.Fatalf("unexpected old plate %q", s)
		}
	}
}

func TestFormatters_MaskDocuments(t *testing.T) {
	if got := FormatTaxID("52998224725"); got != "529.982.247-25" {
		t.Fatalf("unexpected cpf mask: %q", got)
	}
	if got := FormatCompanyTaxID("11222333000181"); got != "11.222.333/0001-81" {
		t.Fatalf("unexpected cnpj mask: %q", got)
	}
	if got := FormatTaxID("123"); got != "123" {
		t.Fatalf("expected short input unchanged, got %q", got)
	}
}
