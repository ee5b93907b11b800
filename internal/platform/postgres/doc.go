// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. Driver errors are translated into the store
// package's sentinel errors by MapError.
package postgres
