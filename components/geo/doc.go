// Package geo provides the read-only Brazilian reference dataset (federative
// units and cities with IBGE codes, area codes and postal ranges), lookup
// helpers used by the value synthesizer, and a small net/http handler that
// returns JSON options for form inputs.
//
// The default dataset is loaded once from the embedded data/brazil.yaml.
// Callers needing the full national list can load their own YAML with Load or
// read a SQLite database with LoadSQLite. Every lookup on an empty or nil
// Dataset reports not-found instead of failing, so dependent generators can
// fall back to fixed defaults.
package geo
