// Package checksum generates and validates Brazilian document numbers whose
// trailing digits are derived from the leading ones: CPF (individual tax id),
// CNPJ (company tax id) and CNH (driving licence), plus the two licence plate
// layouts. Generators draw from an injected *rand.Rand so callers control
// determinism; none of them can fail.
package checksum
