// Package queueposition implements the Queue Position query use case.
//
// This feature reports where a reservation stands in an item's FIFO queue:
// its 1-based rank while waiting, or its terminal status once promoted,
// fulfilled or canceled. It follows the Query-Project pattern without any
// command processing or event generation.
package queueposition
