package models

import "time"

// Transaction statuses as reported by the ledger service.
const (
	TxStatusIssued   = "issued"
	TxStatusReturned = "returned"
)

// Transaction is a record of the transaction ledger. UserID and BookID are
// foreign references and are not validated locally. ReturnedAt is present
// exactly when Status is "returned".
type Transaction struct {
	ID         int        `json:"id"`
	UserID     int        `json:"user_id"`
	BookID     int        `json:"book_id"`
	Status     string     `json:"status"`
	IssuedAt   time.Time  `json:"issued_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Returned reports whether the transaction has been closed by a return.
func (t Transaction) Returned() bool {
	return t.Status == TxStatusReturned
}
