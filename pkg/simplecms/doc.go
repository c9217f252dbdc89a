// Package simplecms provides a schema-driven content store with an
// append-only version ledger.
//
// Content types are defined at runtime as an ordered set of typed fields.
// Entry attribute values are stored generically, one FieldValue per entry
// and field, holding a tagged Value that maps onto exactly one typed storage
// slot. Every create, update, publish and restore appends an immutable
// ContentVersion carrying the entry's total field map, so any version can be
// compared with another or restored.
//
// The Service interface orchestrates these operations. Each mutation is
// checked by an AccessGuard before it starts and then runs as one
// transaction through a Repository; implementations are provided under
// repo/memory and repo/postgres.
//
// Value Strategy
//
// Values are resolved to JSON-native forms for snapshots and API output:
// text as string, numbers as float64, booleans as bool, dates as RFC 3339
// strings, media as the opaque id, references as the id or {id, type}, and
// unrecognized field types as decoded JSON. Fields with settings
// {"multiple": true} hold lists.
package simplecms
