package geo

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDefault(t *testing.T) *Dataset {
	t.Helper()
	dataset, err := DefaultDataset()
	if err != nil {
		t.Fatalf("load default dataset: %v", err)
	}
	return dataset
}

func TestDefaultDataset_HasAllRegions(t *testing.T) {
	dataset := mustDefault(t)
	if got := len(dataset.Regions()); got != 27 {
		t.Fatalf("expected 27 regions, got %d", got)
	}
	if dataset.Empty() {
		t.Fatalf("expected non-empty dataset")
	}
}

func TestFindCity(t *testing.T) {
	dataset := mustDefault(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "exact accented", query: "São Paulo", want: "3550308"},
		{name: "accent insensitive", query: "sao paulo", want: "3550308"},
		{name: "prefix", query: "campin", want: "3509502"},
		{name: "substring", query: "landia", want: "3170206"},
		{name: "municipal code", query: "3304557", want: "3304557"},
		{name: "postal code with punctuation", query: "24.020-000", want: "3303302"},
		{name: "postal code digits", query: "01310100", want: "3550308"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, ok := dataset.FindCity(tt.query)
			if !ok {
				t.Fatalf("expected match for %q", tt.query)
			}
			if city.MunicipalCode != tt.want {
				t.Fatalf("expected %s, got %s (%s)", tt.want, city.MunicipalCode, city.Name)
			}
		})
	}
}

func TestFindCity_Miss(t *testing.T) {
	dataset := mustDefault(t)
	for _, query := range []string{"", "   ", "atlantis", "99999999", "1234567"} {
		if city, ok := dataset.FindCity(query); ok {
			t.Fatalf("expected miss for %q, got %#v", query, city)
		}
	}
}

func TestFindRegion(t *testing.T) {
	dataset := mustDefault(t)

	tests := []struct {
		query string
		want  string
	}{
		{query: "sp", want: "SP"},
		{query: "RJ", want: "RJ"},
		{query: "35", want: "SP"},
		{query: "paraiba", want: "PB"},
		{query: "Rio Grande do Sul", want: "RS"},
		{query: "espirito", want: "ES"},
	}
	for _, tt := range tests {
		region, ok := dataset.FindRegion(tt.query)
		if !ok {
			t.Fatalf("expected match for %q", tt.query)
		}
		if region.RegionCode != tt.want {
			t.Fatalf("query %q: expected %s, got %s", tt.query, tt.want, region.RegionCode)
		}
	}
}

func TestAreaCodes_SortedDistinct(t *testing.T) {
	dataset := NewDataset(nil, []City{
		{Name: "B", AreaCode: "21"},
		{Name: "A", AreaCode: "11"},
		{Name: "C", AreaCode: "21"},
		{Name: "D"},
	})
	if diff := cmp.Diff([]string{"11", "21"}, dataset.AreaCodes()); diff != "" {
		t.Fatalf("area codes mismatch (-want +got):\n%s", diff)
	}
}

func TestNilAndEmptyDataset_NeverPanic(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, dataset := range []*Dataset{nil, NewDataset(nil, nil)} {
		if !dataset.Empty() {
			t.Fatalf("expected empty dataset")
		}
		if _, ok := dataset.FindCity("São Paulo"); ok {
			t.Fatalf("expected city miss")
		}
		if _, ok := dataset.FindRegion("SP"); ok {
			t.Fatalf("expected region miss")
		}
		if _, ok := dataset.RandomCity(r); ok {
			t.Fatalf("expected no random city")
		}
		if _, ok := dataset.RandomRegion(r); ok {
			t.Fatalf("expected no random region")
		}
		if got := dataset.AreaCodes(); len(got) != 0 {
			t.Fatalf("expected no area codes, got %v", got)
		}
	}
}

func TestRandomCity_Deterministic(t *testing.T) {
	dataset := mustDefault(t)
	a, _ := dataset.RandomCity(rand.New(rand.NewSource(42)))
	b, _ := dataset.RandomCity(rand.New(rand.NewSource(42)))
	if a != b {
		t.Fatalf("expected same city for same seed, got %q and %q", a.Name, b.Name)
	}
}

func TestLoad_CustomYAML(t *testing.T) {
	doc := `
regions:
  - {name: Acre, uf: AC, ibge: "12"}
cities:
  - {name: Rio Branco, uf: AC, ibge: "1200401", ddd: "68", cep_start: "69900000", cep_end: "69923999"}
`
	dataset, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []City{{
		Name:             "Rio Branco",
		RegionCode:       "AC",
		MunicipalCode:    "1200401",
		AreaCode:         "68",
		PostalRangeStart: "69900000",
		PostalRangeEnd:   "69923999",
	}}
	if diff := cmp.Diff(want, dataset.Cities()); diff != "" {
		t.Fatalf("cities mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	dataset, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !dataset.Empty() {
		t.Fatalf("expected empty dataset")
	}
}

func TestLoad_RejectsNamelessCity(t *testing.T) {
	_, err := Load(strings.NewReader("cities:\n  - {uf: SP}\n"))
	if err == nil {
		t.Fatalf("expected error for city without name")
	}
}

func TestSearchCities_PrefixFirst(t *testing.T) {
	dataset := NewDataset(nil, []City{
		{Name: "Arapiraca"},
		{Name: "Piracicaba"},
		{Name: "Pirassununga"},
	})
	got := SearchCities(dataset, "pira", 0, DefaultOptions())
	names := make([]string, 0, len(got))
	for _, city := range got {
		names = append(names, city.Name)
	}
	want := []string{"Piracicaba", "Pirassununga", "Arapiraca"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("search order mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchCities_EmptyQueryModes(t *testing.T) {
	dataset := mustDefault(t)
	if got := SearchCities(dataset, "", 5, DefaultOptions()); got != nil {
		t.Fatalf("expected nil for empty query, got %d results", len(got))
	}
	opts := NewOptions(WithEmptySearchMode(EmptySearchTop))
	if got := SearchCities(dataset, "", 5, opts); len(got) != 5 {
		t.Fatalf("expected 5 results in top mode, got %d", len(got))
	}
}
