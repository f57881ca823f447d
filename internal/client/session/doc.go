// Package session holds the client's view of who is logged in.
//
// A Store carries two facts: the current user (or none) and whether the
// startup session check has finished. Readers get snapshots, can subscribe
// to changes and can wait for readiness. Writes go through the Writer that
// New hands out alongside the Store, so only the code given the Writer
// (the auth service) can change the session.
//
// CheckComplete moves from false to true exactly once; Ready returns a
// channel closed at that moment.
package session
