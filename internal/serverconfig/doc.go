// Package serverconfig implements the configuration operations of a server.
//
// Every mutating operation runs the same protocol against one document:
//
//  1. validate the request and payload
//  2. resolve and authorize the acting user
//  3. take the server's write lock
//  4. load the latest document, or start an empty one
//  5. provision prerequisites and apply the section update
//  6. append one audit entry
//  7. save with the loaded revision
//
// Steps 4 to 7 are repeated when the store reports a revision conflict, so
// the saved document always reflects the latest stored state plus exactly
// one audit entry for this call. An update that changes nothing is reported
// as api.OutcomeNoOp and writes nothing.
//
// Read operations take the server's read lock and collapse concurrent loads
// of the same document; every caller receives its own copy.
//
// Each call emits CallStart and CallEnd trace events to the configured sink.
package serverconfig
