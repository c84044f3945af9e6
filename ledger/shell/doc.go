// Package shell provides conversion functions between domain events and
// storable events for the circulation ledger.
//
// This package implements the "imperative shell" pattern, handling the
// translation between the functional core (domain events) and the external
// storage layer (storable events). It manages event serialization,
// deserialization, metadata handling and retry policy for the event sourcing
// system.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
