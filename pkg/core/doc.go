// Package core implements the dialect-independent half of Morgan: tagged
// column values, schema-bound models and records, a fluent query builder that
// renders one parameterized SQL statement per chain, and the mapper that
// hydrates raw driver rows back into records. Execution goes through the
// Connection capability; pkg/sqlite provides the one supported backend.
package core
