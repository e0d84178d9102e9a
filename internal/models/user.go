package models

// User is a record of the user registry service. IDs are assigned by the
// server; the client never invents or reuses them.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
