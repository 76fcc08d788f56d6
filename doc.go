// Package gofilter provides conditional predicate composition and
// pagination primitives for read-only record queries.
//
// Overview
//
// A search starts from Criteria: a set of optional filters. Only the filters
// that are present become predicates (see BuildPredicates), and predicates
// always compose conjunctively. The resulting Query is executed by a
// RecordStore, which is the only component that talks to storage.
//
// gofilter implements two pagination strategies:
//   - Offset: LIMIT/OFFSET with a separate count query. The cost grows with
//     page depth because skipped rows are still read, so it suits shallow
//     pagination or admin screens.
//   - Keyset: the last seen id becomes an implicit predicate (id < last for
//     descending order). No rows are skipped, which makes it the preferred
//     mode for deep pagination.
//
// Key concepts
//   - Service: validates input, builds predicates, orchestrates pagination.
//   - Pager: applies sort, cursor and limit (with optional lookahead) to a Query.
//   - RecordStore: executes queries. MemoryStore is the in-memory reference
//     implementation; see the gormstore package for SQL databases.
package gofilter
