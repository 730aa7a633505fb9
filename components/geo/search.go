package geo

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formfill/internal/textnorm"
)

// Option is a select-friendly value/label pair.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type rankedMatch struct {
	key      string
	index    int
	isPrefix bool
}

// SearchCities returns cities whose folded name contains query, prefix
// matches first, then alphabetical.
func SearchCities(d *Dataset, query string, limit int, opts Options) []City {
	limit = clampLimit(limit, opts)
	if limit == 0 || d == nil {
		return nil
	}

	query = textnorm.Fold(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			return firstN(d.Cities(), limit)
		}
		return nil
	}

	matches := rank(d.cityKeys, query)
	out := make([]City, 0, len(matches))
	for _, m := range matches {
		out = append(out, d.cities[m.index])
	}
	return firstN(out, limit)
}

// SearchCities is SearchCities over d with an explicit limit and no cap.
func (d *Dataset) SearchCities(query string, limit int) []City {
	return SearchCities(d, query, limit, Options{DefaultLimit: limit})
}

// SearchRegions returns regions whose folded name or code contains query.
func SearchRegions(d *Dataset, query string, limit int, opts Options) []Region {
	limit = clampLimit(limit, opts)
	if limit == 0 || d == nil {
		return nil
	}

	query = textnorm.Fold(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			return firstN(d.Regions(), limit)
		}
		return nil
	}

	keys := make([]string, len(d.regions))
	for idx, region := range d.regions {
		keys[idx] = strings.ToLower(region.RegionCode) + " " + textnorm.Fold(region.Name)
	}
	matches := rank(keys, query)
	out := make([]Region, 0, len(matches))
	for _, m := range matches {
		out = append(out, d.regions[m.index])
	}
	return firstN(out, limit)
}

// CityOptions converts cities into options keyed by IBGE code.
func CityOptions(cities []City) []Option {
	out := make([]Option, 0, len(cities))
	for _, city := range cities {
		out = append(out, Option{
			Value: city.MunicipalCode,
			Label: city.Name + " - " + city.RegionCode,
		})
	}
	return out
}

// RegionOptions converts regions into options keyed by UF.
func RegionOptions(regions []Region) []Option {
	out := make([]Option, 0, len(regions))
	for _, region := range regions {
		out = append(out, Option{Value: region.RegionCode, Label: region.Name})
	}
	return out
}

func rank(keys []string, query string) []rankedMatch {
	matches := make([]rankedMatch, 0, 16)
	for idx, key := range keys {
		if !strings.Contains(key, query) {
			continue
		}
		matches = append(matches, rankedMatch{
			key:      key,
			index:    idx,
			isPrefix: strings.HasPrefix(key, query),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].key < matches[j].key
	})
	return matches
}

func firstN[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return append([]T(nil), items[:limit]...)
}
