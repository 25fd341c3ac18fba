// Package store persists the current-state Location record per vehicle.
//
// Backends are pluggable and selected by configuration: MongoDB is the
// default document store, Redis keeps one JSON document per vehicle key,
// and the in-memory backend serves tests and dependency-free development.
// Every backend guarantees atomicity of a single document write but no
// transaction across a find+save pair.
package store
