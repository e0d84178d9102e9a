package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"libradesk/internal/cache"
	"libradesk/internal/liveness"
	"libradesk/internal/logging"
	"libradesk/internal/notify"
	"libradesk/internal/transport"
)

var (
	// ErrValidation marks failures of local preconditions; no network call
	// was made.
	ErrValidation = errors.New("validation failed")

	// ErrBusy is returned when a form already has a submission in flight.
	// There is no request-level idempotency key, so this gate is the only
	// duplicate-submission protection.
	ErrBusy = errors.New("submission already in flight")
)

// Coordinator owns the shared client state and sequences every remote
// operation. It is the sole writer of the cache, the liveness monitor, and
// the notification center.
type Coordinator struct {
	api       API
	cache     *cache.Store
	monitor   *liveness.Monitor
	notifier  *notify.Center
	presenter Presenter
	log       logging.Logger

	mu     sync.Mutex
	busy   map[Form]bool
	states map[Form]State
}

func NewCoordinator(api API, store *cache.Store, monitor *liveness.Monitor, notifier *notify.Center, presenter Presenter, log logging.Logger) *Coordinator {
	return &Coordinator{
		api:       api,
		cache:     store,
		monitor:   monitor,
		notifier:  notifier,
		presenter: presenter,
		log:       log.With("component", "workflow"),
		busy:      make(map[Form]bool),
		states:    make(map[Form]State),
	}
}

// Issue runs the issue-book workflow for the selected user and book.
func (c *Coordinator) Issue(ctx context.Context, userID, bookID int) error {
	if userID <= 0 || bookID <= 0 {
		c.failValidation(ctx, FormIssue, "Please select both user and book!")
		return fmt.Errorf("%w: user and book are required", ErrValidation)
	}

	return c.submit(ctx, FormIssue,
		func(ctx context.Context) ([]byte, error) { return c.api.IssueBook(ctx, userID, bookID) },
		"Book issued successfully!",
		"Failed to issue book")
}

// Return runs the return-book workflow for the given transaction and book.
func (c *Coordinator) Return(ctx context.Context, transactionID, bookID int) error {
	if transactionID <= 0 || bookID <= 0 {
		c.failValidation(ctx, FormReturn, "Please enter transaction ID and select a book!")
		return fmt.Errorf("%w: transaction and book are required", ErrValidation)
	}

	return c.submit(ctx, FormReturn,
		func(ctx context.Context) ([]byte, error) { return c.api.ReturnBook(ctx, transactionID, bookID) },
		"Book returned successfully!",
		"Failed to return book")
}

// StateOf returns the last observed state of the given form's workflow.
func (c *Coordinator) StateOf(form Form) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[form]
}

// submit drives one orchestrator-backed workflow invocation through the state
// machine. Preconditions have already been checked by the caller.
func (c *Coordinator) submit(ctx context.Context, form Form, call func(context.Context) ([]byte, error), successText, failureText string) error {
	if !c.begin(form) {
		return ErrBusy
	}
	defer c.finish(form)

	c.setState(ctx, form, StateSubmitting)

	result, err := call(ctx)
	c.monitor.Report(transport.ServiceSystem, err)

	switch {
	case err != nil:
		c.setState(ctx, form, StateFailed)
		c.presenter.ShowWorkflowResult([]byte(fmt.Sprintf("%s: %v", failureText, err)))
		c.notifier.Notify(fmt.Sprintf("%s: %v", failureText, err), notify.SeverityError)
		return fmt.Errorf("%s: %w", form, err)

	default:
		c.setState(ctx, form, StateSucceeded)
		c.presenter.ShowWorkflowResult(result)
		c.refreshAfterWorkflow(ctx)
		c.notifier.Notify(successText, notify.SeveritySuccess)
		c.presenter.ResetForm(form)
		return nil
	}
}

// refreshAfterWorkflow re-fetches the two collections the workflow changed.
// Both refreshes are best-effort and unordered: the workflow has already
// succeeded, so a failed refresh only leaves a stale snapshot behind.
func (c *Coordinator) refreshAfterWorkflow(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = c.RefreshBooks(ctx)
	}()
	go func() {
		defer wg.Done()
		_ = c.RefreshTransactions(ctx)
	}()
	wg.Wait()
}

func (c *Coordinator) failValidation(ctx context.Context, form Form, text string) {
	c.setState(ctx, form, StateFailed)
	c.notifier.Notify(text, notify.SeverityError)
}

// begin claims the form's submit control. It returns false when a submission
// is already in flight.
func (c *Coordinator) begin(form Form) bool {
	c.mu.Lock()
	if c.busy[form] {
		c.mu.Unlock()
		return false
	}
	c.busy[form] = true
	c.mu.Unlock()

	c.presenter.SetFormBusy(form, true)
	return true
}

func (c *Coordinator) finish(form Form) {
	c.mu.Lock()
	c.busy[form] = false
	c.mu.Unlock()

	c.presenter.SetFormBusy(form, false)
}

func (c *Coordinator) setState(ctx context.Context, form Form, st State) {
	c.mu.Lock()
	prev := c.states[form]
	c.states[form] = st
	c.mu.Unlock()

	c.log.Debug(ctx, "workflow transition", "form", string(form), "from", prev.String(), "to", st.String())
}
