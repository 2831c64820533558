// Package abilities is the deterministic ability library: pure functions
// from a State snapshot to a partial update, plus the executor that runs
// them without ever letting a fault escape into the workflow.
//
// Conventions, shared with the rest of the engine:
//
//   - every function returns an update that includes a key named exactly
//     after the ability, so the engine can merge results uniformly;
//   - shared sub-objects are written under stable keys (structured_request,
//     flags, decision, answers, retrieved_data) and never replaced by an
//     unrelated ability;
//   - functions must not mutate their input; the executor hands them a
//     snapshot, and list-appending functions guard against duplicate
//     entries so replays stay idempotent.
package abilities
