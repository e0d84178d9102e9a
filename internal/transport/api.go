package transport

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"libradesk/internal/models"
)

// One typed method per remote operation. Decoding failures surface as
// *ClientError like any other transport problem.

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	raw, err := c.Request(ctx, ServiceUsers, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &users); err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("decoding users: %v", err)}
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	raw, err := c.Request(ctx, ServiceUsers, http.MethodPost, "/users", payload)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &user); err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("decoding created user: %v", err)}
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	_, err := c.Request(ctx, ServiceUsers, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
	return err
}

func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	raw, err := c.Request(ctx, ServiceBooks, http.MethodGet, "/books", nil)
	if err != nil {
		return nil, err
	}
	var books []models.Book
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &books); err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("decoding books: %v", err)}
	}
	return books, nil
}

func (c *Client) CreateBook(ctx context.Context, title, author string, availableCopies int) (*models.Book, error) {
	payload := struct {
		Title           string `json:"title"`
		Author          string `json:"author"`
		AvailableCopies int    `json:"available_copies"`
	}{Title: title, Author: author, AvailableCopies: availableCopies}

	raw, err := c.Request(ctx, ServiceBooks, http.MethodPost, "/books", payload)
	if err != nil {
		return nil, err
	}
	var book models.Book
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &book); err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("decoding created book: %v", err)}
	}
	return &book, nil
}

func (c *Client) DeleteBook(ctx context.Context, id int) error {
	_, err := c.Request(ctx, ServiceBooks, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil)
	return err
}

func (c *Client) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	raw, err := c.Request(ctx, ServiceTransactions, http.MethodGet, "/transactions", nil)
	if err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &txs); err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("decoding transactions: %v", err)}
	}
	return txs, nil
}

// IssueBook asks the orchestrator to issue a book to a user. The raw workflow
// result is returned as received so the presenter can display it verbatim.
func (c *Client) IssueBook(ctx context.Context, userID, bookID int) ([]byte, error) {
	payload := struct {
		UserID int `json:"user_id"`
		BookID int `json:"book_id"`
	}{UserID: userID, BookID: bookID}

	return c.Request(ctx, ServiceSystem, http.MethodPost, "/issue-book", payload)
}

// ReturnBook asks the orchestrator to close an open transaction.
func (c *Client) ReturnBook(ctx context.Context, transactionID, bookID int) ([]byte, error) {
	payload := struct {
		TransactionID int `json:"transaction_id"`
		BookID        int `json:"book_id"`
	}{TransactionID: transactionID, BookID: bookID}

	return c.Request(ctx, ServiceSystem, http.MethodPost, "/return-book", payload)
}
