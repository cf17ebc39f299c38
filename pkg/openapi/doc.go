// Package openapi extracts form schemas from OpenAPI 3 documents. Each
// operation's JSON request body becomes a draft-4 schema.Node ready for
// form.Compile.
package openapi
