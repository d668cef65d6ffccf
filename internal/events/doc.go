// Package events carries call-level trace events out of the configuration
// service.
//
// Every operation emits a CallStart event when it is entered and a CallEnd
// event when it returns. Events are delivered synchronously to a Sink. The
// sinks in this package log them, count them as Prometheus metrics, append
// them to a JSON lines file, or record them in memory for tests. MultiSink
// fans one event out to several sinks.
//
// These events are independent of the audit trail stored in each
// configuration document.
package events
