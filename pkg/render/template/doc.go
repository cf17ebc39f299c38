// Package template defines the template engine contract renderers depend on.
// The gotemplate subpackage provides a pongo2 implementation.
package template
