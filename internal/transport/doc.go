// Package transport is the single HTTP boundary of the client. It wraps the
// three collaborating services behind one request helper that normalizes
// every failure, remote or network-level, into *ClientError, and exposes one
// typed method per remote operation.
//
// The package has no side effects beyond the network call itself: liveness
// reporting, caching, and notifications are owned by the callers, which keeps
// the transport testable against a plain httptest server.
package transport
