// Package api contains the HTTP handlers, request/response models, and
// error mapping for the service's REST surface. Handlers depend on narrow
// consumer interfaces and translate internal errors into sanitized JSON
// responses.
package api
