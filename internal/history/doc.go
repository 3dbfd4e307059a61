// Package history persists a record of every harvest run in SQLite.
//
// Each run stores its identifier, mode, format, output directory, timing,
// and tally, plus one outcome row per input in input order. The database is
// a convenience log rather than state the pipeline depends on: a failure to
// record is reported but never fails the harvest. Schema changes bump
// schemaVersion; an old database must be deleted to adopt a new schema.
package history
