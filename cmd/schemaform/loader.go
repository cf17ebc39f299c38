package main

import (
	"time"

	schemaform "github.com/goliatone/go-schemaform"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const fetchTimeout = 15 * time.Second

func newLoader() schema.Loader {
	return schemaform.NewLoader(schema.WithHTTPFallback(fetchTimeout))
}
