// Package instance holds the typed, read-only description of an allocation
// problem: producers with finite stock, regions acting both as export scopes
// and as minimum-fulfillment scopes, and requesters with the set of producers
// they accept.
//
// What:
//
//   - Producer:  ID in 1..N, home Region, remaining Capacity (≥ 0).
//   - Region:    ID in 1..M, ExportQuota (units allowed to leave the region),
//     MinFulfillment (units that must reach requesters living in the region).
//   - Requester: ID in 1..T, home Region, Wants (acceptable producer IDs,
//     possibly empty, duplicates collapse).
//   - Instance:  the validated, ID-indexed collection of the three.
//
// Loading:
//
//   - Parse reads the line-oriented record stream:
//
//     N M T
//     producerId regionId capacity          (N lines)
//     regionId exportQuota minFulfillment   (M lines)
//     requesterId regionId producerId...    (T lines)
//
//     Blank lines are skipped and anything after the last requester line is
//     ignored. Every structural problem is reported as ErrMalformed, wrapped in
//     a *ParseError that carries the offending line.
//
//   - DecodeYAML reads the same data from a YAML document (producers, regions,
//     requesters lists); EncodeYAML and WriteText render an instance back.
//
// Invariants enforced by New (and therefore by every decoder):
//
//   - IDs are unique and cover exactly 1..len of their kind.
//   - Capacities, quotas and minimums are non-negative.
//   - Every referenced region and producer is declared.
//
// An *Instance is immutable after construction and safe for concurrent reads.
package instance
