// Package model defines the descriptors the fill pipeline passes between
// stages. A FieldDescriptor is a read-only snapshot of a single form control
// (tag, native type, lowercased name token, numeric constraints) and Kind is
// the closed set of semantic kinds the classifier can assign. Descriptors are
// built by pkg/dom from live controls and by pkg/openapi from request schemas,
// so classifier rules never need to know which host produced them.
package model
