// Package store defines the persistence contracts the task service depends on.
// Implementations live under internal/platform (postgres and sqlite); the
// service layer only ever sees the interfaces and sentinel errors declared here.
package store
