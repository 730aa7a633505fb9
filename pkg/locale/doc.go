// Package locale renders numbers, money, percentages, dates and times the way
// pt-BR forms expect them ("1.234,56", "31/12/1999") and produces the machine
// readable variants native date/time/number inputs require. Random values come
// from a Formatter that owns its RNG and clock.
package locale
