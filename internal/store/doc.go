// Package store defines the persistence interfaces consumed by the
// application core, along with the common error types shared by all store
// implementations. Concrete implementations live under internal/platform.
package store
