package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"libradesk/internal/cache"
	"libradesk/internal/config"
	"libradesk/internal/liveness"
	"libradesk/internal/logging"
	"libradesk/internal/notify"
	"libradesk/internal/transport"
	"libradesk/internal/view"
	"libradesk/internal/workflow"
)

// coordinator is the command surface the REPL drives. The real
// *workflow.Coordinator satisfies it; tests provide a stub.
type coordinator interface {
	Bootstrap(ctx context.Context)
	RefreshUsers(ctx context.Context) error
	RefreshBooks(ctx context.Context) error
	RefreshTransactions(ctx context.Context) error
	Issue(ctx context.Context, userID, bookID int) error
	Return(ctx context.Context, transactionID, bookID int) error
	AddUser(ctx context.Context, username, password string) error
	AddBook(ctx context.Context, title, author string, availableCopies int) error
	RemoveUser(ctx context.Context, id int) error
	RemoveBook(ctx context.Context, id int) error
}

// App is the interactive client and the presentation collaborator of the
// coordination core.
type App struct {
	config   *config.Config
	coord    coordinator
	store    *cache.Store
	monitor  *liveness.Monitor
	notifier *notify.Center
	watcher  *liveness.Watcher
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu         sync.Mutex
	dots       map[transport.Service]liveness.State
	userOpts   []view.Option
	issueOpts  []view.Option
	returnOpts []view.Option
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	a := &App{
		config: cfg,
		store:  cache.New(),
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		dots:   make(map[transport.Service]liveness.State),
	}

	client := transport.NewClient(transport.Endpoints{
		Users:        cfg.UsersAddr,
		Books:        cfg.BooksAddr,
		Orchestrator: cfg.OrchestratorAddr,
		Transactions: cfg.TransactionsAddr,
	}, log)

	a.monitor = liveness.NewMonitor(a.SetStatusDot)
	a.notifier = notify.NewCenter(cfg.NotificationTTL, a.showNotification)
	a.coord = workflow.NewCoordinator(client, a.store, a.monitor, a.notifier, a, log)
	a.watcher = liveness.NewWatcher(client, a.monitor, cfg.OnlineCheckInterval, log)

	return a
}

// Run loads the initial data, starts the background liveness watcher, and
// blocks in the REPL until the user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "libradesk (type 'help' for commands)")

	a.coord.Bootstrap(ctx)

	go a.watcher.Run(ctx)

	a.repl(ctx)
}

// statusLine summarizes the status dots for the REPL prompt.
func (a *App) statusLine() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	line := ""
	for _, svc := range []transport.Service{transport.ServiceUsers, transport.ServiceBooks, transport.ServiceSystem} {
		state, ok := a.dots[svc]
		if !ok {
			state = liveness.StateUnknown
		}
		if line != "" {
			line += " "
		}
		line += fmt.Sprintf("%s=%s", svc, state)
	}
	return line
}
