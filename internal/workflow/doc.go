// Package workflow sequences the multi-service user actions. Each submission
// is an explicit state machine (Idle -> Submitting -> Succeeded | Failed):
// local preconditions are checked before any network call, the orchestrator
// call strictly precedes the dependent cache refreshes, and every terminal
// state restores the submit control it disabled.
//
// The coordinator owns all translation of request outcomes into shared state:
// cache replacement, liveness reporting, and notifications. The transport
// stays side-effect free and the presenter only ever receives render-ready
// data.
package workflow
