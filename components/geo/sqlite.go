package geo

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Schema is the table layout LoadSQLite expects. It is exported so callers
// can provision a database for the full national dataset.
const Schema = `
CREATE TABLE IF NOT EXISTS regions (
	uf   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	ibge TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cities (
	ibge      TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	uf        TEXT NOT NULL,
	ddd       TEXT NOT NULL DEFAULT '',
	cep_start TEXT NOT NULL DEFAULT '',
	cep_end   TEXT NOT NULL DEFAULT ''
);`

// OpenSQLite opens a SQLite database file and loads the dataset from it.
func OpenSQLite(ctx context.Context, path string) (*Dataset, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("geo: open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()
	return LoadSQLite(ctx, db)
}

// LoadSQLite reads the regions and cities tables described by Schema.
func LoadSQLite(ctx context.Context, db *sql.DB) (*Dataset, error) {
	if db == nil {
		return nil, fmt.Errorf("geo: missing database")
	}

	regions, err := queryRegions(ctx, db)
	if err != nil {
		return nil, err
	}
	cities, err := queryCities(ctx, db)
	if err != nil {
		return nil, err
	}
	return NewDataset(regions, cities), nil
}

func queryRegions(ctx context.Context, db *sql.DB) ([]Region, error) {
	rows, err := db.QueryContext(ctx, `SELECT uf, name, ibge FROM regions`)
	if err != nil {
		return nil, fmt.Errorf("geo: query regions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Region
	for rows.Next() {
		var region Region
		if err := rows.Scan(&region.RegionCode, &region.Name, &region.MunicipalCode); err != nil {
			return nil, fmt.Errorf("geo: scan region: %w", err)
		}
		out = append(out, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geo: iterate regions: %w", err)
	}
	return out, nil
}

func queryCities(ctx context.Context, db *sql.DB) ([]City, error) {
	rows, err := db.QueryContext(ctx, `SELECT ibge, name, uf, ddd, cep_start, cep_end FROM cities`)
	if err != nil {
		return nil, fmt.Errorf("geo: query cities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []City
	for rows.Next() {
		var city City
		if err := rows.Scan(&city.MunicipalCode, &city.Name, &city.RegionCode, &city.AreaCode, &city.PostalRangeStart, &city.PostalRangeEnd); err != nil {
			return nil, fmt.Errorf("geo: scan city: %w", err)
		}
		out = append(out, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geo: iterate cities: %w", err)
	}
	return out, nil
}
