package models

// Book is a record of the book catalog service.
// AvailableCopies is never negative; a book with zero copies stays in the
// catalog but cannot be issued.
type Book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	AvailableCopies int    `json:"available_copies"`
}

// InStock reports whether the book can be selected for issuance.
func (b Book) InStock() bool {
	return b.AvailableCopies > 0
}
