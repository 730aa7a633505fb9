// Package orchestrator fills a whole form: for every empty control it
// classifies the field, synthesizes a value, adapts the value to the control
// (select options, checkboxes, numeric and date inputs, maxlength) and
// commits it through pkg/dom. Controls that already hold a value are never
// touched.
package orchestrator
