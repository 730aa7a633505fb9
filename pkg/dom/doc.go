// Package dom defines the control interface the fill engine writes through
// and the helpers that enforce how values reach a control.
//
// Three hosts implement Control: htmldoc (a parsed static document), rodpage
// (a live browser page) and domtest (in-memory fakes). Every write goes
// through Commit so hosts observe the same sequence: the value is set, then an
// input event and a change event are dispatched, both bubbling and
// cancelable. Insert adds selection splicing on top of Commit for the
// single-field actions.
package dom
