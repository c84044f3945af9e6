// Package eventstore defines the storage contract the circulation ledger is
// built on: append-only storable events, a filter builder that selects the
// "dynamic event stream" for one item or holder, and the optimistic
// concurrency condition (expected max sequence number under the same filter)
// that serializes mutations per stream.
//
// Engines implementing this contract live in the subpackages postgresengine
// (production) and memoryengine (tests).
package eventstore
