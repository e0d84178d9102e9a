package workflow

import (
	"context"

	"libradesk/internal/models"
	"libradesk/internal/view"
)

// Form identifies one submit control of the presentation layer. The busy gate
// is per form: while a form is Submitting, another submission from the same
// form is rejected before any network call.
type Form string

const (
	FormIssue   Form = "issue"
	FormReturn  Form = "return"
	FormAddUser Form = "add-user"
	FormAddBook Form = "add-book"
)

// State of one workflow invocation.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// API is the remote surface the coordinator drives. *transport.Client
// satisfies it; tests substitute a fake.
type API interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
	ListBooks(ctx context.Context) ([]models.Book, error)
	CreateBook(ctx context.Context, title, author string, availableCopies int) (*models.Book, error)
	DeleteBook(ctx context.Context, id int) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	IssueBook(ctx context.Context, userID, bookID int) ([]byte, error)
	ReturnBook(ctx context.Context, transactionID, bookID int) ([]byte, error)
}

// Presenter is the rendering surface the coordinator hands instructions to.
// Status dots and notifications reach the presentation layer through the
// liveness monitor and notification center change callbacks instead, so this
// interface covers only what the coordinator pushes directly.
type Presenter interface {
	RenderUsers(opts []view.Option)
	RenderBooks(issueOpts, returnOpts []view.Option)
	RenderTransactions(rows []view.TransactionRow)
	ShowWorkflowResult(result []byte)
	SetFormBusy(form Form, busy bool)
	ResetForm(form Form)
}
