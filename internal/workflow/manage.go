package workflow

import (
	"context"
	"fmt"
	"strings"

	"libradesk/internal/notify"
)

// Management commands against the registry and catalog services. They follow
// the same shape as the two orchestrator workflows: local validation first,
// per-form busy gate, and a refresh of the authoritative collection after
// success instead of a local mutation.

func (c *Coordinator) AddUser(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		c.failValidation(ctx, FormAddUser, "Please enter username and password!")
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if !c.begin(FormAddUser) {
		return ErrBusy
	}
	defer c.finish(FormAddUser)

	c.setState(ctx, FormAddUser, StateSubmitting)

	user, err := c.api.CreateUser(ctx, strings.TrimSpace(username), password)
	if err != nil {
		c.setState(ctx, FormAddUser, StateFailed)
		c.notifier.Notify(fmt.Sprintf("Failed to add user: %v", err), notify.SeverityError)
		return fmt.Errorf("adding user: %w", err)
	}

	c.setState(ctx, FormAddUser, StateSucceeded)
	c.log.Info(ctx, "user created", "id", user.ID, "username", user.Username)
	c.presenter.ResetForm(FormAddUser)
	_ = c.RefreshUsers(ctx)
	c.notifier.Notify("User added successfully!", notify.SeveritySuccess)
	return nil
}

func (c *Coordinator) AddBook(ctx context.Context, title, author string, availableCopies int) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" || availableCopies < 0 {
		c.failValidation(ctx, FormAddBook, "Please enter title, author and a non-negative copy count!")
		return fmt.Errorf("%w: title, author and copies are required", ErrValidation)
	}

	if !c.begin(FormAddBook) {
		return ErrBusy
	}
	defer c.finish(FormAddBook)

	c.setState(ctx, FormAddBook, StateSubmitting)

	book, err := c.api.CreateBook(ctx, strings.TrimSpace(title), strings.TrimSpace(author), availableCopies)
	if err != nil {
		c.setState(ctx, FormAddBook, StateFailed)
		c.notifier.Notify(fmt.Sprintf("Failed to add book: %v", err), notify.SeverityError)
		return fmt.Errorf("adding book: %w", err)
	}

	c.setState(ctx, FormAddBook, StateSucceeded)
	c.log.Info(ctx, "book created", "id", book.ID, "title", book.Title)
	c.presenter.ResetForm(FormAddBook)
	_ = c.RefreshBooks(ctx)
	c.notifier.Notify("Book added successfully!", notify.SeveritySuccess)
	return nil
}

func (c *Coordinator) RemoveUser(ctx context.Context, id int) error {
	if id <= 0 {
		c.notifier.Notify("Invalid user ID!", notify.SeverityError)
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}

	if err := c.api.DeleteUser(ctx, id); err != nil {
		c.notifier.Notify(fmt.Sprintf("Failed to delete user: %v", err), notify.SeverityError)
		return fmt.Errorf("deleting user %d: %w", id, err)
	}

	c.notifier.Notify("User deleted successfully!", notify.SeveritySuccess)
	_ = c.RefreshUsers(ctx)
	return nil
}

func (c *Coordinator) RemoveBook(ctx context.Context, id int) error {
	if id <= 0 {
		c.notifier.Notify("Invalid book ID!", notify.SeverityError)
		return fmt.Errorf("%w: book id is required", ErrValidation)
	}

	if err := c.api.DeleteBook(ctx, id); err != nil {
		c.notifier.Notify(fmt.Sprintf("Failed to delete book: %v", err), notify.SeverityError)
		return fmt.Errorf("deleting book %d: %w", id, err)
	}

	c.notifier.Notify("Book deleted successfully!", notify.SeveritySuccess)
	_ = c.RefreshBooks(ctx)
	return nil
}
