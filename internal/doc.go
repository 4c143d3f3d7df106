// Package internal documents the eventlane server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, and routing
// - domain: business logic and domain models
// - stats: the statistics microservice and its HTTP client
// - storage: database access and repositories (Postgres)
// - auth, audit, config, metrics, sanitize: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
