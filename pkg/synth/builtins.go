package synth

import (
	"math"

	"github.com/goliatone/go-formfill/pkg/checksum"
	"github.com/goliatone/go-formfill/pkg/model"
)

func builtins() map[model.Kind]Generator {
	return map[model.Kind]Generator{
		model.KindTaxID:               GeneratorFunc(func(src Source, _ model.Constraints) string { return checksum.TaxID(src.Rand) }),
		model.KindCompanyTaxID:        GeneratorFunc(func(src Source, _ model.Constraints) string { return checksum.CompanyTaxID(src.Rand) }),
		model.KindDriverLicense:       GeneratorFunc(func(src Source, _ model.Constraints) string { return checksum.DriverLicense(src.Rand) }),
		model.KindLicensePlateNew:     GeneratorFunc(func(src Source, _ model.Constraints) string { return checksum.PlateNew(src.Rand) }),
		model.KindLicensePlateOld:     GeneratorFunc(func(src Source, _ model.Constraints) string { return checksum.PlateOld(src.Rand) }),
		model.KindEmail:               GeneratorFunc(email),
		model.KindPhone:               GeneratorFunc(phone),
		model.KindUsername:            GeneratorFunc(username),
		model.KindPersonName:          GeneratorFunc(personName),
		model.KindCityName:            GeneratorFunc(cityName),
		model.KindCityAndRegion:       GeneratorFunc(cityAndRegion),
		model.KindRegionName:          GeneratorFunc(regionName),
		model.KindRegionCode:          GeneratorFunc(regionCode),
		model.KindPostalCode:          GeneratorFunc(postalCode),
		model.KindAreaCode:            GeneratorFunc(areaCode),
		model.KindMunicipalCode:       GeneratorFunc(municipalCode),
		model.KindRegionMunicipalCode: GeneratorFunc(regionMunicipalCode),
		model.KindDate:                GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Format.Date() }),
		model.KindDateTime:            GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Format.DateTime() }),
		model.KindTime:                GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Format.Time() }),
		model.KindAdultDate:           GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Format.AdultDate() }),
		model.KindMinorDate:           GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Format.MinorDate() }),
		model.KindURL:                 GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Faker.URL() }),
		model.KindInteger:             GeneratorFunc(integer),
		model.KindMoney:               GeneratorFunc(money),
		model.KindDecimal:             GeneratorFunc(decimal),
		model.KindPercent:             GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Format.Percent() }),
		model.KindSignedPercent:       GeneratorFunc(func(src Source, _ model.Constraints) string { return src.Format.SignedPercent() }),
		model.KindGenericText:         GeneratorFunc(genericText),
	}
}

// maxSafeBound keeps constraint ranges where float64 still holds every
// integer and where int64 conversions cannot overflow.
const maxSafeBound = 1 << 53

func integer(src Source, c model.Constraints) string {
	min, max := bounds(c, src.Defaults.IntegerMin, src.Defaults.IntegerMax)
	lo, hi := math.Ceil(min), math.Floor(max)
	if hi < lo {
		// no integer in a fractional range such as [1.2, 1.8]
		hi = lo
	}
	return src.Format.Integer(int64(lo), int64(hi))
}

func money(src Source, c model.Constraints) string {
	min, max := bounds(c, src.Defaults.MoneyMin, src.Defaults.MoneyMax)
	return src.Format.Money(min, max)
}

func decimal(src Source, c model.Constraints) string {
	min, max := bounds(c, src.Defaults.DecimalMin, src.Defaults.DecimalMax)
	return src.Format.Decimal(min, max, src.Defaults.Decimals)
}

// bounds resolves the drawing range for numeric kinds. A single declared
// bound that falls on the wrong side of the default range keeps the width of
// that range on its open side, so the declared bound is never crossed.
func bounds(c model.Constraints, defMin, defMax float64) (float64, float64) {
	if defMax < defMin {
		defMin, defMax = defMax, defMin
	}
	width := defMax - defMin
	if width <= 0 {
		width = 1
	}

	min, max := c.MinOr(defMin), c.MaxOr(defMax)
	if c.Min != nil && c.Max == nil && max < min {
		max = min + width
	}
	if c.Max != nil && c.Min == nil && min > max {
		min = max - width
	}
	return clampSafe(min), clampSafe(max)
}

func clampSafe(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxSafeBound:
		return maxSafeBound
	case v < -maxSafeBound:
		return -maxSafeBound
	default:
		return v
	}
}
