// Package document defines the persisted configuration document of a server
// instance and its independently nullable sections.
//
// A ServerConfig is keyed by ServerName. Each section is optional: a nil
// pointer (or an empty keyed collection) means the section is absent. The
// AuditTrail is append-only and is never touched by section clears.
//
// Clone produces a fully independent copy; stores and the orchestrator use it
// so that no two callers ever share mutable state.
package document
