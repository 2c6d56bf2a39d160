// Package suggest routes trigger queries to registered candidate sources.
//
// A Dispatcher maps a trigger symbol to a Source. Sources may be in-memory,
// SQLite-backed, remote (HTTP) or file-backed. Lookups never fail from the
// caller's point of view: errors are logged and surface as no candidates.
package suggest
