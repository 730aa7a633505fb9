// Package validation checks that a value has the shape and check digits a
// kind promises. It backs the CLI validate command and the generator tests.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/internal/textnorm"
	"github.com/goliatone/go-formfill/pkg/checksum"
	"github.com/goliatone/go-formfill/pkg/locale"
	"github.com/goliatone/go-formfill/pkg/model"
)

var (
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern         = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	usernamePattern      = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	postalPattern        = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	moneyPattern         = regexp.MustCompile(`^\d{1,3}(\.\d{3})*,\d{2}$`)
	percentPattern       = regexp.MustCompile(`^\d{1,3},\d{2}%$`)
	signedPercentPattern = regexp.MustCompile(`^[+\-−]\d{1,3},\d{2}%$`)
)

// Issue describes one failed check.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result captures the outcome of validating one value.
type Result struct {
	Kind   string  `json:"kind"`
	Value  string  `json:"value"`
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Option configures a Validator.
type Option func(*Validator)

// WithLookup checks place names and codes against lookup. Without one only
// the shape is checked.
func WithLookup(lookup geo.Lookup) Option {
	return func(v *Validator) {
		v.lookup = lookup
	}
}

// WithClock fixes "today" for the age based kinds.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// Validator checks generated or user supplied values per kind. It holds no
// mutable state and is safe for concurrent use.
type Validator struct {
	lookup geo.Lookup
	now    func() time.Time
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// ValidateName resolves a kind identifier and validates value against it.
func (v *Validator) ValidateName(kind, value string) (Result, error) {
	k, ok := model.ParseKind(kind)
	if !ok || k == model.KindNone {
		return Result{}, fmt.Errorf("validation: unknown kind %q", kind)
	}
	return v.Validate(k, value), nil
}

// Validate checks value against kind.
func (v *Validator) Validate(kind model.Kind, value string) Result {
	result := Result{Kind: kind.String(), Value: value}
	if issue, ok := v.check(kind, strings.TrimSpace(value)); !ok {
		result.Issues = append(result.Issues, issue)
	}
	result.Valid = len(result.Issues) == 0
	return result
}

func (v *Validator) check(kind model.Kind, value string) (Issue, bool) {
	if value == "" {
		return Issue{Code: "empty", Message: "value is empty"}, false
	}

	switch kind {
	case model.KindTaxID:
		return expect(checksum.ValidTaxID(value), "checksum", "CPF check digits do not match")
	case model.KindCompanyTaxID:
		return expect(checksum.ValidCompanyTaxID(value), "checksum", "CNPJ check digits do not match")
	case model.KindDriverLicense:
		return expect(checksum.ValidDriverLicense(value), "checksum", "CNH check digits do not match")
	case model.KindLicensePlateNew:
		return expect(checksum.ValidPlateNew(strings.ToUpper(value)), "format", "expected a LLLDLDD plate")
	case model.KindLicensePlateOld:
		return expect(checksum.ValidPlateOld(strings.ToUpper(value)), "format", "expected a LLL-DDDD plate")
	case model.KindEmail:
		return expect(emailPattern.MatchString(value), "format", "expected an email address")
	case model.KindPhone:
		return expect(phonePattern.MatchString(value), "format", "expected (DD) NNNNN-NNNN")
	case model.KindUsername:
		return expect(usernamePattern.MatchString(value), "format", "expected letters and digits only")
	case model.KindPersonName:
		return expect(len(strings.Fields(value)) >= 2, "format", "expected a first and a last name")
	case model.KindCityName:
		return v.checkCity(value)
	case model.KindCityAndRegion:
		name, region, found := strings.Cut(value, " - ")
		if !found {
			return Issue{Code: "format", Message: "expected \"City - UF\""}, false
		}
		if issue, ok := v.checkRegion(region, true); !ok {
			return issue, false
		}
		return v.checkCity(name)
	case model.KindRegionName:
		return v.checkRegion(value, false)
	case model.KindRegionCode:
		return v.checkRegion(value, true)
	case model.KindPostalCode:
		return expect(postalPattern.MatchString(value), "format", "expected 8 digits")
	case model.KindAreaCode:
		n, err := strconv.Atoi(value)
		return expect(err == nil && len(value) == 2 && n >= 11, "format", "expected a two digit area code")
	case model.KindMunicipalCode:
		return expect(len(value) == 7 && textnorm.Digits(value) == value, "format", "expected a 7 digit IBGE code")
	case model.KindRegionMunicipalCode:
		return expect(len(value) == 2 && textnorm.Digits(value) == value, "format", "expected a 2 digit IBGE code")
	case model.KindDate:
		_, err := time.Parse(locale.DateLayout, value)
		return expect(err == nil, "format", "expected DD/MM/YYYY")
	case model.KindDateTime:
		_, err := time.Parse(locale.DateLayout+" "+locale.TimeLayout, value)
		return expect(err == nil, "format", "expected DD/MM/YYYY HH:MM")
	case model.KindTime:
		_, err := time.Parse(locale.TimeLayout, value)
		return expect(err == nil, "format", "expected HH:MM")
	case model.KindAdultDate:
		return v.checkAge(value, func(born, today time.Time) bool {
			return !born.After(today.AddDate(-18, 0, 0))
		}, "expected someone at least 18 years old")
	case model.KindMinorDate:
		return v.checkAge(value, func(born, today time.Time) bool {
			return !born.Before(today.AddDate(-17, 0, 0)) && !born.After(today)
		}, "expected a birth date within the last 17 years")
	case model.KindURL:
		u, err := url.Parse(value)
		return expect(err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "", "format", "expected an http(s) URL")
	case model.KindInteger:
		_, err := strconv.ParseInt(value, 10, 64)
		return expect(err == nil, "format", "expected plain digits")
	case model.KindMoney:
		return expect(moneyPattern.MatchString(value), "format", "expected 1.234,56")
	case model.KindDecimal:
		_, ok := locale.ParseNumber(value)
		return expect(ok && !strings.HasSuffix(value, "%"), "format", "expected a locale formatted number")
	case model.KindPercent:
		return expect(percentPattern.MatchString(value), "format", "expected NN,NN%")
	case model.KindSignedPercent:
		return expect(signedPercentPattern.MatchString(value), "format", "expected +NN,NN% or -NN,NN%")
	case model.KindGenericText:
		return Issue{}, true
	}
	return Issue{Code: "kind", Message: fmt.Sprintf("kind %s cannot be validated", kind)}, false
}

func (v *Validator) checkCity(name string) (Issue, bool) {
	if v.lookup == nil {
		return expect(strings.TrimSpace(name) != "", "format", "expected a city name")
	}
	city, ok := v.lookup.FindCity(name)
	return expect(ok && textnorm.Fold(city.Name) == textnorm.Fold(name), "lookup", "city is not in the dataset")
}

func (v *Validator) checkRegion(value string, code bool) (Issue, bool) {
	value = strings.TrimSpace(value)
	if code && (len(value) != 2 || strings.ToUpper(value) != value) {
		return Issue{Code: "format", Message: "expected a two letter UF"}, false
	}
	if v.lookup == nil {
		return Issue{}, true
	}
	region, ok := v.lookup.FindRegion(value)
	if code {
		return expect(ok && region.RegionCode == value, "lookup", "UF is not in the dataset")
	}
	return expect(ok && textnorm.Fold(region.Name) == textnorm.Fold(value), "lookup", "region is not in the dataset")
}

func (v *Validator) checkAge(value string, accept func(born, today time.Time) bool, message string) (Issue, bool) {
	born, err := time.Parse(locale.DateLayout, value)
	if err != nil {
		return Issue{Code: "format", Message: "expected DD/MM/YYYY"}, false
	}
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return expect(accept(born, today), "range", message)
}

func expect(ok bool, code, message string) (Issue, bool) {
	if ok {
		return Issue{}, true
	}
	return Issue{Code: code, Message: message}, false
}
