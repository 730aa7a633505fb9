// Package synth turns a semantic kind plus the field constraints into a
// candidate string value.
//
// A Synthesizer is a registry of Kind -> Generator entries backed by one
// seeded random source, a locale.Formatter and a geo.Lookup. Every generator
// the package ships is registered by New; callers can override any of them
// with Register. Synthesize reports false for KindNone and for kinds with no
// generator.
package synth
