package geo

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/brazil.yaml
var dataFS embed.FS

const defaultDataPath = "data/brazil.yaml"

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
	defaultErr     error
)

type document struct {
	Regions []Region `yaml:"regions"`
	Cities  []City   `yaml:"cities"`
}

// DefaultDataset returns the embedded dataset, parsing it on first use.
func DefaultDataset() (*Dataset, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDataPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		dataset, err := Load(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultDataset = dataset
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultDataset, nil
}

// Load parses a YAML document with top-level regions and cities lists.
func Load(r io.Reader) (*Dataset, error) {
	if r == nil {
		return nil, fmt.Errorf("geo: missing reader")
	}
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return NewDataset(nil, nil), nil
		}
		return nil, fmt.Errorf("geo: decode dataset: %w", err)
	}
	for idx, city := range doc.Cities {
		if strings.TrimSpace(city.Name) == "" {
			return nil, fmt.Errorf("geo: city %d has no name", idx)
		}
	}
	for idx, region := range doc.Regions {
		if strings.TrimSpace(region.RegionCode) == "" {
			return nil, fmt.Errorf("geo: region %d has no uf", idx)
		}
	}
	return NewDataset(doc.Regions, doc.Cities), nil
}

// LoadFile reads a YAML dataset from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geo: open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}
