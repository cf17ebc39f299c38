// Package orchestrator wires the loader → OpenAPI extraction → form compiler →
// renderer pipeline behind a single Generate call.
package orchestrator
