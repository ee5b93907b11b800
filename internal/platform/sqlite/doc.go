// Package sqlite implements the store interfaces on an embedded SQLite
// database through gorm. It backs single-node deployments and the
// property tests; the schema is created with AutoMigrate rather than goose.
package sqlite
