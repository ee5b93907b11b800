// Package service contains the application use cases. TaskService is the only
// component with behavior: it scopes every operation to the calling user,
// delegates storage to a store.TaskStore, and translates storage outcomes into
// ErrTaskNotFound or an opaque ErrInternal.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete storage implementation.
package service
