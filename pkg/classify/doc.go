// Package classify infers the semantic kind of a form field from its
// descriptor.
//
// Classification runs an ordered rule table: the first matching rule wins and
// table order is the only tie breaker. Rules look at the control tag, its
// native input type and substrings of the lowercased name token. Callers can
// add rules with Register; built-in rules keep their relative order.
package classify
