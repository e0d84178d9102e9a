package workflow

import (
	"context"
	"fmt"
	"sync"

	"libradesk/internal/notify"
	"libradesk/internal/transport"
	"libradesk/internal/view"
)

// RefreshUsers fetches the user registry and replaces the cached snapshot.
// On failure the previous snapshot stays rendered and an error notification
// is shown.
func (c *Coordinator) RefreshUsers(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	c.monitor.Report(transport.ServiceUsers, err)
	if err != nil {
		c.notifier.Notify(fmt.Sprintf("Failed to load users: %v", err), notify.SeverityError)
		return fmt.Errorf("refreshing users: %w", err)
	}

	c.cache.ReplaceUsers(users)
	c.presenter.RenderUsers(view.UserOptions(users))
	return nil
}

// RefreshBooks fetches the catalog and replaces the cached snapshot. Both
// book projections are re-rendered together so the issuance and return lists
// never disagree about the catalog.
func (c *Coordinator) RefreshBooks(ctx context.Context) error {
	books, err := c.api.ListBooks(ctx)
	c.monitor.Report(transport.ServiceBooks, err)
	if err != nil {
		c.notifier.Notify(fmt.Sprintf("Failed to load books: %v", err), notify.SeverityError)
		return fmt.Errorf("refreshing books: %w", err)
	}

	c.cache.ReplaceBooks(books)
	c.presenter.RenderBooks(view.IssueBookOptions(books), view.ReturnBookOptions(books))
	return nil
}

// RefreshTransactions fetches the ledger and replaces the cached snapshot.
// The ledger has no status dot of its own, so no liveness state is reported.
func (c *Coordinator) RefreshTransactions(ctx context.Context) error {
	txs, err := c.api.ListTransactions(ctx)
	if err != nil {
		c.notifier.Notify(fmt.Sprintf("Failed to load transactions: %v", err), notify.SeverityError)
		return fmt.Errorf("refreshing transactions: %w", err)
	}

	c.cache.ReplaceTransactions(txs)
	c.presenter.RenderTransactions(view.TransactionRows(txs))
	return nil
}

// Bootstrap loads all three collections in parallel at startup and shows one
// summary notification, superseding the per-collection errors so the user
// sees a single connectivity verdict.
func (c *Coordinator) Bootstrap(ctx context.Context) {
	var wg sync.WaitGroup
	var usersErr, booksErr, txErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		usersErr = c.RefreshUsers(ctx)
	}()
	go func() {
		defer wg.Done()
		booksErr = c.RefreshBooks(ctx)
	}()
	go func() {
		defer wg.Done()
		txErr = c.RefreshTransactions(ctx)
	}()
	wg.Wait()

	if usersErr != nil || booksErr != nil || txErr != nil {
		c.notifier.Notify("Some services may be unavailable", notify.SeverityError)
		return
	}
	c.notifier.Notify("System connected successfully!", notify.SeveritySuccess)
}
