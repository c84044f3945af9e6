// Package notify is the outbound port for promoted reservations.
//
// When a return or a cancellation promotes the next waiting reservation, the
// holder must be told to come claim the earmarked copy. The ledger only
// records the Promoted state; notifying the holder and enforcing a claim
// deadline is the job of an external collaborator reached through the
// PromotionNotifier interface. A Step Functions implementation and a
// log-only implementation are provided.
package notify
