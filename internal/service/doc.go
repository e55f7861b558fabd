// Package service implements the server's use cases on top of the store
// interfaces: drawing names for a run, recording finished runs, and seeding
// the name pool. Handlers depend on the interfaces declared here.
package service
