// Package domain contains the core entities, value objects, and sentinel
// errors of the recall quiz. It does not depend on any storage or transport
// package.
package domain
