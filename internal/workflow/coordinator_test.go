package workflow

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libradesk/internal/cache"
	"libradesk/internal/liveness"
	"libradesk/internal/logging"
	"libradesk/internal/models"
	"libradesk/internal/notify"
	"libradesk/internal/transport"
	"libradesk/internal/view"
)

type fakeAPI struct {
	mu sync.Mutex

	users    []models.User
	usersErr error
	books    []models.Book
	booksErr error
	txs      []models.Transaction
	txsErr   error

	issueErr   error
	issueBlock chan struct{} // when non-nil, IssueBook waits for a close
	returnErr  error

	createUserErr error
	createBookErr error
	deleteUserErr error
	deleteBookErr error

	calls map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	f.called("ListUsers")
	return f.users, f.usersErr
}

func (f *fakeAPI) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	f.called("CreateUser")
	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	return &models.User{ID: 1, Username: username}, nil
}

func (f *fakeAPI) DeleteUser(ctx context.Context, id int) error {
	f.called("DeleteUser")
	return f.deleteUserErr
}

func (f *fakeAPI) ListBooks(ctx context.Context) ([]models.Book, error) {
	f.called("ListBooks")
	return f.books, f.booksErr
}

func (f *fakeAPI) CreateBook(ctx context.Context, title, author string, copies int) (*models.Book, error) {
	f.called("CreateBook")
	if f.createBookErr != nil {
		return nil, f.createBookErr
	}
	return &models.Book{ID: 1, Title: title, Author: author, AvailableCopies: copies}, nil
}

func (f *fakeAPI) DeleteBook(ctx context.Context, id int) error {
	f.called("DeleteBook")
	return f.deleteBookErr
}

func (f *fakeAPI) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	f.called("ListTransactions")
	return f.txs, f.txsErr
}

func (f *fakeAPI) IssueBook(ctx context.Context, userID, bookID int) ([]byte, error) {
	f.called("IssueBook")
	if f.issueBlock != nil {
		<-f.issueBlock
	}
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	return []byte(`{"message":"issue success"}`), nil
}

func (f *fakeAPI) ReturnBook(ctx context.Context, transactionID, bookID int) ([]byte, error) {
	f.called("ReturnBook")
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	return []byte(`{"message":"return success"}`), nil
}

type fakePresenter struct {
	mu sync.Mutex

	userRenders [][]view.Option
	bookRenders int
	txRenders   int
	results     [][]byte
	busyEvents  []string
	resets      []Form
}

func (p *fakePresenter) RenderUsers(opts []view.Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userRenders = append(p.userRenders, opts)
}

func (p *fakePresenter) RenderBooks(issueOpts, returnOpts []view.Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bookRenders++
}

func (p *fakePresenter) RenderTransactions(rows []view.TransactionRow) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txRenders++
}

func (p *fakePresenter) ShowWorkflowResult(result []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, result)
}

func (p *fakePresenter) SetFormBusy(form Form, busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if busy {
		p.busyEvents = append(p.busyEvents, string(form)+":busy")
	} else {
		p.busyEvents = append(p.busyEvents, string(form)+":free")
	}
}

func (p *fakePresenter) ResetForm(form Form) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets = append(p.resets, form)
}

type fixture struct {
	api       *fakeAPI
	store     *cache.Store
	monitor   *liveness.Monitor
	notifier  *notify.Center
	presenter *fakePresenter
	coord     *Coordinator

	mu            sync.Mutex
	notifications []notify.Message
}

func newFixture() *fixture {
	f := &fixture{
		api:       newFakeAPI(),
		store:     cache.New(),
		monitor:   liveness.NewMonitor(nil),
		presenter: &fakePresenter{},
	}
	// a long TTL keeps auto-dismiss timers from firing mid-test
	f.notifier = notify.NewCenter(time.Hour, func(m *notify.Message) {
		if m == nil {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.notifications = append(f.notifications, *m)
	})
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.coord = NewCoordinator(f.api, f.store, f.monitor, f.notifier, f.presenter, log)
	return f
}

func (f *fixture) notified() []notify.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notify.Message, len(f.notifications))
	copy(out, f.notifications)
	return out
}

func TestIssue_MissingSelectionMakesNoNetworkCalls(t *testing.T) {
	tests := []struct {
		name   string
		userID int
		bookID int
	}{
		{"no user", 0, 5},
		{"no book", 3, 0},
		{"neither", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			err := f.coord.Issue(context.Background(), tc.userID, tc.bookID)
			require.ErrorIs(t, err, ErrValidation)

			assert.Equal(t, 0, f.api.networkCalls())
			assert.Equal(t, StateFailed, f.coord.StateOf(FormIssue))

			msgs := f.notified()
			require.Len(t, msgs, 1)
			assert.Equal(t, notify.SeverityError, msgs[0].Severity)
			assert.Equal(t, "Please select both user and book!", msgs[0].Text)
		})
	}
}

func TestIssue_SuccessRefreshesBooksAndTransactions(t *testing.T) {
	f := newFixture()
	f.api.books = []models.Book{{ID: 5, Title: "Dune", Author: "Frank Herbert", AvailableCopies: 2}}
	f.api.txs = []models.Transaction{{ID: 1, UserID: 3, BookID: 5, Status: models.TxStatusIssued}}

	err := f.coord.Issue(context.Background(), 3, 5)
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, f.coord.StateOf(FormIssue))
	assert.Equal(t, 1, f.api.count("IssueBook"))
	assert.Equal(t, 1, f.api.count("ListBooks"))
	assert.Equal(t, 1, f.api.count("ListTransactions"))
	assert.Equal(t, 0, f.api.count("ListUsers"), "issue must not refresh users")

	assert.Equal(t, liveness.StateOnline, f.monitor.State(transport.ServiceSystem))
	assert.Len(t, f.store.Books(), 1)
	assert.Len(t, f.store.Transactions(), 1)

	msgs := f.notified()
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	assert.Equal(t, notify.SeveritySuccess, last.Severity)
	assert.Equal(t, "Book issued successfully!", last.Text)

	assert.Equal(t, []Form{FormIssue}, f.presenter.resets)
	assert.Equal(t, []string{"issue:busy", "issue:free"}, f.presenter.busyEvents)
}

func TestIssue_RefreshFailuresDoNotFailTheWorkflow(t *testing.T) {
	f := newFixture()
	f.api.booksErr = &transport.ClientError{Message: "connection refused"}
	f.api.txsErr = &transport.ClientError{Message: "connection refused"}

	err := f.coord.Issue(context.Background(), 3, 5)
	require.NoError(t, err, "refresh failures must not surface as workflow failures")

	// both refreshes were still attempted
	assert.Equal(t, 1, f.api.count("ListBooks"))
	assert.Equal(t, 1, f.api.count("ListTransactions"))
	assert.Equal(t, StateSucceeded, f.coord.StateOf(FormIssue))
}

func TestIssue_RemoteRejectionIsTerminalFailure(t *testing.T) {
	f := newFixture()
	f.api.issueErr = &transport.ClientError{Status: 409, Message: "no copies left"}

	err := f.coord.Issue(context.Background(), 3, 5)
	require.Error(t, err)

	assert.Equal(t, StateFailed, f.coord.StateOf(FormIssue))
	assert.Equal(t, liveness.StateOffline, f.monitor.State(transport.ServiceSystem))

	// refresh only follows success
	assert.Equal(t, 0, f.api.count("ListBooks"))
	assert.Equal(t, 0, f.api.count("ListTransactions"))

	msgs := f.notified()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.SeverityError, msgs[0].Severity)
	assert.Contains(t, msgs[0].Text, "no copies left")

	// form stays populated for correction
	assert.Empty(t, f.presenter.resets)
	// the submit control is restored
	assert.Equal(t, []string{"issue:busy", "issue:free"}, f.presenter.busyEvents)
}

func TestIssue_FailureDoesNotTouchOtherServices(t *testing.T) {
	f := newFixture()
	f.monitor.Report(transport.ServiceUsers, nil)
	f.monitor.Report(transport.ServiceBooks, nil)
	f.api.issueErr = &transport.ClientError{Status: 503, Message: "unavailable"}

	_ = f.coord.Issue(context.Background(), 3, 5)

	assert.Equal(t, liveness.StateOffline, f.monitor.State(transport.ServiceSystem))
	assert.Equal(t, liveness.StateOnline, f.monitor.State(transport.ServiceUsers))
	assert.Equal(t, liveness.StateOnline, f.monitor.State(transport.ServiceBooks))
}

func TestIssue_DuplicateSubmissionRejectedWhileInFlight(t *testing.T) {
	f := newFixture()
	f.api.issueBlock = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- f.coord.Issue(context.Background(), 3, 5)
	}()

	// wait until the first submission reaches the orchestrator call
	require.Eventually(t, func() bool {
		return f.api.count("IssueBook") == 1
	}, time.Second, time.Millisecond)

	err := f.coord.Issue(context.Background(), 3, 5)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, f.api.count("IssueBook"), "second submission must not reach the network")

	close(f.api.issueBlock)
	require.NoError(t, <-firstDone)

	// the gate reopens once the first submission settles
	err = f.coord.Issue(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, f.api.count("IssueBook"))
}

func TestReturn_MissingSelectionMakesNoNetworkCalls(t *testing.T) {
	f := newFixture()

	err := f.coord.Return(context.Background(), 0, 5)
	require.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 0, f.api.networkCalls())
	msgs := f.notified()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Please enter transaction ID and select a book!", msgs[0].Text)
}

func TestReturn_SuccessMirrorsIssueShape(t *testing.T) {
	f := newFixture()

	err := f.coord.Return(context.Background(), 11, 5)
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, f.coord.StateOf(FormReturn))
	assert.Equal(t, 1, f.api.count("ReturnBook"))
	assert.Equal(t, 1, f.api.count("ListBooks"))
	assert.Equal(t, 1, f.api.count("ListTransactions"))
	assert.Equal(t, liveness.StateOnline, f.monitor.State(transport.ServiceSystem))
	assert.Equal(t, []Form{FormReturn}, f.presenter.resets)
}

func TestRefreshUsers_FailureKeepsLastKnownGoodSnapshot(t *testing.T) {
	f := newFixture()
	f.api.users = []models.User{{ID: 1, Username: "alice"}}

	require.NoError(t, f.coord.RefreshUsers(context.Background()))
	require.Len(t, f.store.Users(), 1)
	assert.Equal(t, liveness.StateOnline, f.monitor.State(transport.ServiceUsers))

	// the service goes down; two refreshes in a row fail
	f.api.usersErr = &transport.ClientError{Message: "connection refused"}
	require.Error(t, f.coord.RefreshUsers(context.Background()))
	require.Error(t, f.coord.RefreshUsers(context.Background()))

	assert.Equal(t, liveness.StateOffline, f.monitor.State(transport.ServiceUsers))
	assert.Equal(t, []models.User{{ID: 1, Username: "alice"}}, f.store.Users(),
		"stale snapshot must survive failed refreshes")
}

func TestRefreshBooks_RendersBothProjections(t *testing.T) {
	f := newFixture()
	f.api.books = []models.Book{{ID: 5, Title: "Solaris", Author: "Stanislaw Lem", AvailableCopies: 0}}

	require.NoError(t, f.coord.RefreshBooks(context.Background()))
	assert.Equal(t, 1, f.presenter.bookRenders)
	assert.Len(t, f.store.Books(), 1)
}

func TestBootstrap_SummaryNotification(t *testing.T) {
	t.Run("all services reachable", func(t *testing.T) {
		f := newFixture()
		f.coord.Bootstrap(context.Background())

		msgs := f.notified()
		require.NotEmpty(t, msgs)
		assert.Equal(t, "System connected successfully!", msgs[len(msgs)-1].Text)
	})

	t.Run("one service down", func(t *testing.T) {
		f := newFixture()
		f.api.booksErr = &transport.ClientError{Message: "connection refused"}

		f.coord.Bootstrap(context.Background())

		msgs := f.notified()
		require.NotEmpty(t, msgs)
		last := msgs[len(msgs)-1]
		assert.Equal(t, "Some services may be unavailable", last.Text)
		assert.Equal(t, notify.SeverityError, last.Severity)
	})
}
