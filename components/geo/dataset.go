package geo

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfill/internal/textnorm"
)

// City is a municipality with its IBGE code, area code and primary postal
// range (8-digit CEP bounds, inclusive).
type City struct {
	Name             string `json:"name" yaml:"name"`
	RegionCode       string `json:"uf" yaml:"uf"`
	MunicipalCode    string `json:"ibge" yaml:"ibge"`
	AreaCode         string `json:"ddd" yaml:"ddd"`
	PostalRangeStart string `json:"cepStart" yaml:"cep_start"`
	PostalRangeEnd   string `json:"cepEnd" yaml:"cep_end"`
}

// Region is a federative unit (state).
type Region struct {
	Name          string `json:"name" yaml:"name"`
	RegionCode    string `json:"uf" yaml:"uf"`
	MunicipalCode string `json:"ibge" yaml:"ibge"`
}

// Lookup is the query contract the synthesizer and actions depend on. The
// production implementation is *Dataset; tests may substitute a stub.
type Lookup interface {
	FindCity(query string) (City, bool)
	FindRegion(query string) (Region, bool)
	RandomCity(r *rand.Rand) (City, bool)
	RandomRegion(r *rand.Rand) (Region, bool)
	AreaCodes() []string
}

// Dataset is an immutable, indexed collection of cities and regions.
type Dataset struct {
	cities    []City
	regions   []Region
	cityKeys  []string
	areaCodes []string
	postal    []postalRange
}

type postalRange struct {
	start, end int
	index      int
}

var _ Lookup = (*Dataset)(nil)

// NewDataset copies and indexes the supplied entities. Cities are sorted by
// name so lookups and searches are deterministic.
func NewDataset(regions []Region, cities []City) *Dataset {
	d := &Dataset{
		regions: append([]Region(nil), regions...),
		cities:  append([]City(nil), cities...),
	}
	sort.SliceStable(d.cities, func(i, j int) bool {
		return textnorm.Fold(d.cities[i].Name) < textnorm.Fold(d.cities[j].Name)
	})
	sort.SliceStable(d.regions, func(i, j int) bool {
		return d.regions[i].RegionCode < d.regions[j].RegionCode
	})

	d.cityKeys = make([]string, len(d.cities))
	seen := make(map[string]struct{})
	for idx, city := range d.cities {
		d.cityKeys[idx] = textnorm.Fold(city.Name)
		if code := strings.TrimSpace(city.AreaCode); code != "" {
			if _, ok := seen[code]; !ok {
				seen[code] = struct{}{}
				d.areaCodes = append(d.areaCodes, code)
			}
		}
		start, errStart := strconv.Atoi(textnorm.Digits(city.PostalRangeStart))
		end, errEnd := strconv.Atoi(textnorm.Digits(city.PostalRangeEnd))
		if errStart == nil && errEnd == nil && start <= end {
			d.postal = append(d.postal, postalRange{start: start, end: end, index: idx})
		}
	}
	sort.Strings(d.areaCodes)
	return d
}

// Empty reports whether the dataset holds no entities.
func (d *Dataset) Empty() bool {
	return d == nil || (len(d.cities) == 0 && len(d.regions) == 0)
}

// Cities returns a copy of the cities sorted by name.
func (d *Dataset) Cities() []City {
	if d == nil {
		return nil
	}
	return append([]City(nil), d.cities...)
}

// Regions returns a copy of the regions sorted by code.
func (d *Dataset) Regions() []Region {
	if d == nil {
		return nil
	}
	return append([]Region(nil), d.regions...)
}

// AreaCodes returns the distinct area codes present in the dataset.
func (d *Dataset) AreaCodes() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.areaCodes...)
}

// FindCity resolves a name fragment, a 7-digit municipal code or an 8-digit
// postal code. Name matches prefer exact, then prefix, then substring.
func (d *Dataset) FindCity(query string) (City, bool) {
	if d == nil || len(d.cities) == 0 {
		return City{}, false
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return City{}, false
	}

	if isNumericQuery(query) {
		digits := textnorm.Digits(query)
		if len(digits) == 8 {
			if city, ok := d.cityByPostalCode(digits); ok {
				return city, true
			}
		}
		for _, city := range d.cities {
			if city.MunicipalCode == digits {
				return city, true
			}
		}
		return City{}, false
	}

	if idx := bestNameMatch(d.cityKeys, textnorm.Fold(query)); idx >= 0 {
		return d.cities[idx], true
	}
	return City{}, false
}

// FindRegion resolves a 2-letter code, a numeric IBGE code or a name fragment.
func (d *Dataset) FindRegion(query string) (Region, bool) {
	if d == nil || len(d.regions) == 0 {
		return Region{}, false
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Region{}, false
	}

	if isNumericQuery(query) {
		digits := textnorm.Digits(query)
		for _, region := range d.regions {
			if region.MunicipalCode == digits {
				return region, true
			}
		}
		return Region{}, false
	}

	if len(query) == 2 {
		for _, region := range d.regions {
			if strings.EqualFold(region.RegionCode, query) {
				return region, true
			}
		}
	}

	keys := make([]string, len(d.regions))
	for idx, region := range d.regions {
		keys[idx] = textnorm.Fold(region.Name)
	}
	if idx := bestNameMatch(keys, textnorm.Fold(query)); idx >= 0 {
		return d.regions[idx], true
	}
	return Region{}, false
}

// RandomCity returns a uniformly chosen city.
func (d *Dataset) RandomCity(r *rand.Rand) (City, bool) {
	if d == nil || len(d.cities) == 0 || r == nil {
		return City{}, false
	}
	return d.cities[r.Intn(len(d.cities))], true
}

// RandomRegion returns a uniformly chosen region.
func (d *Dataset) RandomRegion(r *rand.Rand) (Region, bool) {
	if d == nil || len(d.regions) == 0 || r == nil {
		return Region{}, false
	}
	return d.regions[r.Intn(len(d.regions))], true
}

func (d *Dataset) cityByPostalCode(digits string) (City, bool) {
	value, err := strconv.Atoi(digits)
	if err != nil {
		return City{}, false
	}
	for _, rng := range d.postal {
		if value >= rng.start && value <= rng.end {
			return d.cities[rng.index], true
		}
	}
	return City{}, false
}

func isNumericQuery(query string) bool {
	hasDigit := false
	for _, ch := range query {
		switch {
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case ch == '-' || ch == '.' || ch == ' ':
		default:
			return false
		}
	}
	return hasDigit
}

// bestNameMatch returns the index of the best key for q: an exact match, else
// the first prefix match, else the first substring match, else -1.
func bestNameMatch(keys []string, q string) int {
	if q == "" {
		return -1
	}
	prefix, contains := -1, -1
	for idx, key := range keys {
		switch {
		case key == q:
			return idx
		case prefix < 0 && strings.HasPrefix(key, q):
			prefix = idx
		case contains < 0 && strings.Contains(key, q):
			contains = idx
		}
	}
	if prefix >= 0 {
		return prefix
	}
	return contains
}
