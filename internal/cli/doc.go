// Package cli provides the interactive libradesk terminal client.
//
// It wires configuration, the HTTP transport, the shared client state
// (cache, liveness monitor, notification center), and a REPL that dispatches
// commands to the workflow coordinator through an explicit command table.
// The App type is the presentation collaborator: it renders projected lists,
// status dots, notifications, and busy markers, and owns no coordination
// logic of its own.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
