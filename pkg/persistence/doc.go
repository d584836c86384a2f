// Package persistence stores codec session snapshots as JSON.
//
// A snapshot holds the negotiated clock and serial format plus the cached
// register values of a session, so a configuration staged on one run can be
// restored into a powered-down session on the next and flushed on power-up.
package persistence
