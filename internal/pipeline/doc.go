// Package pipeline implements the list-view data pipeline shared by every
// collection view in the app: foreign-key enrichment, search/facet/date
// filtering, stable sorting, and bucket aggregation.
//
// Every stage is a pure function over in-memory slices. Inputs are never
// mutated; each call allocates fresh output, so callers can re-run any stage
// on every keystroke against the same snapshot.
package pipeline
