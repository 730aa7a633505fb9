// Package openapi turns an OpenAPI request body schema into a synthetic JSON
// payload. Properties are described as form fields, classified by name and
// filled with the same generators that fill HTML forms.
package openapi
