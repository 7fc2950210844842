// Package catalog holds the book catalog: the ordered title corpus, the
// short-summary table and the vector index aligned with the corpus.
//
// A Catalog is an immutable snapshot. It is built once from storage with
// Load, from the built-in seed with DefaultBooks, or from a JSON file with
// ReadFile, and is only read afterwards.
//
// The Indexer is the offline job that embeds short summaries and persists the
// catalog. It is the only parallel part of the package: batches of summaries
// are embedded on an ants worker pool with retry and progress reporting.
package catalog
