// Package events carries notifications about finished quiz runs from the
// session controller to local listeners such as the run history.
//
// The primary components are:
// - Event: an envelope with a type and a JSON payload
// - Handler: interface for components that react to events
// - Emitter: interface for components that publish events
//
// Listeners decode the payload into their own types, so neither side imports
// the other.
package events
