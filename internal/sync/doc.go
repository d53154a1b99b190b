// Package sync provides the controller that keeps the in-memory task
// collection reconciled against the task store.
//
// Every mutating operation appears atomic to the caller: either the local
// collection and the store end in agreement, or the collection is rolled
// back to its exact pre-operation state and the failure is surfaced.
//
// The protocol per operation:
//
//   - Create: validate, call the store, insert the echoed record locally.
//     There is no tentative local insert — the store assigns the ID, so
//     there is nothing to reconcile against before it answers.
//   - Update / toggle: snapshot the current record, apply the mutation
//     locally (optimistic), call the store; on failure restore the
//     snapshot, on success reconcile with whatever the store echoes back
//     (it refreshes UpdatedAt).
//   - Delete: remove locally, call the store; on failure reinsert the
//     prior record exactly as it was.
//
// Rollback always restores the captured snapshot rather than refetching,
// since a refetch could itself fail.
//
// Operations that target the same task ID are serialized FIFO through a
// per-ID mutex, so a second mutation always observes the first's
// committed or rolled-back state before composing its payload.
// Operations on distinct IDs proceed independently.
package sync
