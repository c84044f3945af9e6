// Package registeritem implements the Register Item command use case.
//
// Registering adds a catalog item to the inventory with a fixed number of
// copies. Registration is idempotent for an identical copy count and a
// conflict for a differing one, so replayed requests are harmless.
package registeritem
