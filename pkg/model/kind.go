package model

import "strings"

// Kind is the semantic kind assigned to a field by the classifier. KindNone
// means the field must be left untouched.
type Kind int

const (
	KindNone Kind = iota
	KindTaxID
	KindCompanyTaxID
	KindDriverLicense
	KindLicensePlateNew
	KindLicensePlateOld
	KindEmail
	KindPhone
	KindUsername
	KindPersonName
	KindCityName
	KindCityAndRegion
	KindRegionName
	KindRegionCode
	KindPostalCode
	KindAreaCode
	KindMunicipalCode
	KindRegionMunicipalCode
	KindDate
	KindDateTime
	KindTime
	KindAdultDate
	KindMinorDate
	KindURL
	KindInteger
	KindMoney
	KindDecimal
	KindPercent
	KindSignedPercent
	KindGenericText
)

var kindNames = [...]string{
	KindNone:                "none",
	KindTaxID:               "tax-id",
	KindCompanyTaxID:        "company-tax-id",
	KindDriverLicense:       "driver-license",
	KindLicensePlateNew:     "license-plate",
	KindLicensePlateOld:     "license-plate-old",
	KindEmail:               "email",
	KindPhone:               "phone",
	KindUsername:            "username",
	KindPersonName:          "person-name",
	KindCityName:            "city",
	KindCityAndRegion:       "city-region",
	KindRegionName:          "region",
	KindRegionCode:          "region-code",
	KindPostalCode:          "postal-code",
	KindAreaCode:            "area-code",
	KindMunicipalCode:       "municipal-code",
	KindRegionMunicipalCode: "region-municipal-code",
	KindDate:                "date",
	KindDateTime:            "datetime",
	KindTime:                "time",
	KindAdultDate:           "adult-date",
	KindMinorDate:           "minor-date",
	KindURL:                 "url",
	KindInteger:             "integer",
	KindMoney:               "money",
	KindDecimal:             "decimal",
	KindPercent:             "percent",
	KindSignedPercent:       "signed-percent",
	KindGenericText:         "text",
}

// String returns the stable kebab-case identifier used by the CLI and HTTP API.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "none"
	}
	return kindNames[k]
}

// ParseKind resolves a kind identifier produced by Kind.String. Unknown names
// report false.
func ParseKind(name string) (Kind, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return KindNone, false
	}
	for idx, candidate := range kindNames {
		if candidate == key {
			return Kind(idx), true
		}
	}
	return KindNone, false
}

// Kinds lists every fillable kind in declaration order, excluding KindNone.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for idx := 1; idx < len(kindNames); idx++ {
		out = append(out, Kind(idx))
	}
	return out
}
