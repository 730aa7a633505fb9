package synth

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/internal/textnorm"
	"github.com/goliatone/go-formfill/pkg/model"
)

// Fallbacks used when no dataset is available.
const (
	FallbackRegionCode    = "SP"
	FallbackRegionName    = "São Paulo"
	FallbackRegionIBGE    = "35"
	FallbackCityName      = "São Paulo"
	FallbackMunicipalCode = "3550308"
)

func randomCity(src Source) geo.City {
	if src.Lookup != nil {
		if city, ok := src.Lookup.RandomCity(src.Rand); ok {
			return city
		}
	}
	return geo.City{
		Name:          FallbackCityName,
		RegionCode:    FallbackRegionCode,
		MunicipalCode: FallbackMunicipalCode,
	}
}

func randomRegion(src Source) geo.Region {
	if src.Lookup != nil {
		if region, ok := src.Lookup.RandomRegion(src.Rand); ok {
			return region
		}
	}
	return geo.Region{
		Name:          FallbackRegionName,
		RegionCode:    FallbackRegionCode,
		MunicipalCode: FallbackRegionIBGE,
	}
}

func cityName(src Source, _ model.Constraints) string {
	return randomCity(src).Name
}

func cityAndRegion(src Source, _ model.Constraints) string {
	city := randomCity(src)
	region := city.RegionCode
	if region == "" {
		region = FallbackRegionCode
	}
	return city.Name + " - " + region
}

func regionName(src Source, _ model.Constraints) string {
	return randomRegion(src).Name
}

func regionCode(src Source, _ model.Constraints) string {
	return randomRegion(src).RegionCode
}

func regionMunicipalCode(src Source, _ model.Constraints) string {
	return randomRegion(src).MunicipalCode
}

func municipalCode(src Source, _ model.Constraints) string {
	return randomCity(src).MunicipalCode
}

func areaCode(src Source, _ model.Constraints) string {
	if src.Lookup != nil {
		if codes := src.Lookup.AreaCodes(); len(codes) > 0 {
			return src.Faker.RandomString(codes)
		}
	}
	return src.Faker.RandomString(DefaultAreaCodes)
}

// postalCode picks 8 digits inside a random city's range, or any 8 digits
// when the city carries no usable range.
func postalCode(src Source, _ model.Constraints) string {
	city := randomCity(src)
	start, errStart := strconv.Atoi(textnorm.Digits(city.PostalRangeStart))
	end, errEnd := strconv.Atoi(textnorm.Digits(city.PostalRangeEnd))
	if errStart != nil || errEnd != nil || end < start {
		return fmt.Sprintf("%08d", src.Rand.Intn(100000000))
	}
	return fmt.Sprintf("%08d", start+src.Rand.Intn(end-start+1))
}
