// Package server exposes the library over a JSON HTTP API.
//
// Routes:
//
//	GET  /healthz                       status, book count, cache counters
//	GET  /api/v1/books
//	GET  /api/v1/books/summary?title=...
//	POST /api/v1/recommendations        {"query": "..."}
//	POST /api/v1/math/{operation}       {"base", "exponent", "n", "log"}
//	GET  /api/v1/math/history?limit=N
//
// Errors are always rendered as {"error": {"code": ..., "message": ...}}.
package server
