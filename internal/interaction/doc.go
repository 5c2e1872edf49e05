// Package interaction models one unit of change applied to a versioned
// resource: create, update, delete or retrieve.
//
// An Interaction couples a verb, the identity of the target resource, an
// optional payload, the time the change is considered to have happened, and a
// pipeline stage tag.
//
// # Identity and time live in exactly one place
//
// When a payload is attached, the interaction's key and timestamp ARE the
// payload's: Key() extracts from the resource and SetKey applies onto it,
// When() reads meta.lastUpdated and SetWhen writes it. Without a payload the
// two values are held locally. The storage is a two-variant binding
// (local or resource) and every accessor switches on it, so there is never a
// second copy to reconcile. Local values are not carried onto a payload that
// is attached later.
//
// # Ownership
//
// An interaction owns its payload. Factories and SetResource clone the
// resource they are given; writes through the interaction never reach the
// caller's copy. Resource() hands out the owned value.
//
// # Concurrency
//
// An Interaction is a single-owner value and is not safe for concurrent use.
package interaction
