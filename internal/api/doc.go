// Package api implements the HTTP handlers for the names and results
// endpoints, the request and response models, and the mapping from domain
// and store errors to status codes and client-safe messages.
package api
