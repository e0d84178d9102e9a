// Package view derives render-ready data from cached snapshots. Everything
// here is a pure function: identical input always yields identical output,
// and nothing reaches for the network or the clock.
package view

import (
	"fmt"

	"libradesk/internal/models"
)

const timeLayout = "2006-01-02 15:04"

// Status glyphs shown next to a transaction.
const (
	GlyphReturned = "✓"
	GlyphIssued   = "⏳"
)

// Option is one selectable entry of a dropdown-style list.
type Option struct {
	ID       int
	Label    string
	Disabled bool
}

// TransactionRow is one display row of the ledger, in source order.
type TransactionRow struct {
	ID         int
	UserID     int
	BookID     int
	Status     string
	Glyph      string
	IssuedAt   string
	ReturnedAt string
}

// UserOptions projects the user snapshot into a selectable list.
func UserOptions(users []models.User) []Option {
	opts := make([]Option, 0, len(users))
	for _, u := range users {
		opts = append(opts, Option{
			ID:    u.ID,
			Label: fmt.Sprintf("%s (ID: %d)", u.Username, u.ID),
		})
	}
	return opts
}

// IssueBookOptions projects the book snapshot into the issuance list. Books
// with no copies stay visible but are flagged non-selectable so the user sees
// why a title cannot be issued.
func IssueBookOptions(books []models.Book) []Option {
	opts := make([]Option, 0, len(books))
	for _, b := range books {
		label := fmt.Sprintf("%s by %s (%d available)", b.Title, b.Author, b.AvailableCopies)
		if !b.InStock() {
			label += " - OUT OF STOCK"
		}
		opts = append(opts, Option{
			ID:       b.ID,
			Label:    label,
			Disabled: !b.InStock(),
		})
	}
	return opts
}

// ReturnBookOptions projects the book snapshot into the return list. Returns
// do not depend on remaining stock, so every book is selectable.
func ReturnBookOptions(books []models.Book) []Option {
	opts := make([]Option, 0, len(books))
	for _, b := range books {
		opts = append(opts, Option{
			ID:    b.ID,
			Label: fmt.Sprintf("%s by %s", b.Title, b.Author),
		})
	}
	return opts
}

// TransactionRows projects the ledger snapshot into display rows, preserving
// the order in which the service returned them.
func TransactionRows(txs []models.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		row := TransactionRow{
			ID:         tx.ID,
			UserID:     tx.UserID,
			BookID:     tx.BookID,
			Status:     tx.Status,
			Glyph:      GlyphIssued,
			IssuedAt:   tx.IssuedAt.Format(timeLayout),
			ReturnedAt: "Not returned",
		}
		if tx.Returned() {
			row.Glyph = GlyphReturned
		}
		if tx.ReturnedAt != nil {
			row.ReturnedAt = tx.ReturnedAt.Format(timeLayout)
		}
		rows = append(rows, row)
	}
	return rows
}
