// Package audit produces the entries of a document's audit trail.
//
// An entry is a single line of the form
//
//	<RFC3339 UTC timestamp> <acting user id> <action description>
//
// Action descriptions are rendered from text/template templates keyed by
// Action, with the sprig function library available. Entries are only ever
// appended; nothing in this package edits or removes an existing entry.
package audit
