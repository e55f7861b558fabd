// Package quiz implements the recall sprint session: a pure transition
// function over State and Event that yields Effects, and a Controller that
// owns a single session, executes those effects and publishes snapshots.
//
// A session moves through four stages:
//
//	welcome -> memorize -> recall -> result -> welcome
//
// Every asynchronous completion (fetched names, timer expiry, result sync)
// carries the epoch it was issued under. Transition drops any completion
// whose epoch no longer matches the session, so late responses from an
// abandoned run never leak into the next one.
package quiz
