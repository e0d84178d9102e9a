package cli

import (
	"fmt"

	"libradesk/internal/liveness"
	"libradesk/internal/notify"
	"libradesk/internal/transport"
	"libradesk/internal/view"
	"libradesk/internal/workflow"
)

// The workflow.Presenter implementation. Rendering is append-only terminal
// output; the latest selectable option lists are kept so the interactive
// issue/return prompts can show them again without refetching.

func (a *App) RenderUsers(opts []view.Option) {
	a.mu.Lock()
	a.userOpts = opts
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Users (%d):\n", len(opts))
	for _, o := range opts {
		fmt.Fprintf(a.out, "  [%d] %s\n", o.ID, o.Label)
	}
}

func (a *App) RenderBooks(issueOpts, returnOpts []view.Option) {
	a.mu.Lock()
	a.issueOpts = issueOpts
	a.returnOpts = returnOpts
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Books (%d):\n", len(issueOpts))
	for _, o := range issueOpts {
		marker := " "
		if o.Disabled {
			marker = "x"
		}
		fmt.Fprintf(a.out, " %s[%d] %s\n", marker, o.ID, o.Label)
	}
}

func (a *App) RenderTransactions(rows []view.TransactionRow) {
	fmt.Fprintf(a.out, "Transactions (%d):\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(a.out, "  #%d %s %s  user=%d book=%d  issued=%s  returned=%s\n",
			r.ID, r.Glyph, r.Status, r.UserID, r.BookID, r.IssuedAt, r.ReturnedAt)
	}
}

func (a *App) ShowWorkflowResult(result []byte) {
	fmt.Fprintf(a.out, "orchestrator> %s\n", result)
}

func (a *App) SetFormBusy(form workflow.Form, busy bool) {
	if busy {
		fmt.Fprintf(a.out, "Processing %s...\n", form)
	}
}

// ResetForm is part of the presenter contract; the REPL keeps no persistent
// form state between prompts, so there is nothing to clear.
func (a *App) ResetForm(form workflow.Form) {}

// SetStatusDot is wired as the liveness monitor's change callback.
func (a *App) SetStatusDot(svc transport.Service, state liveness.State) {
	a.mu.Lock()
	a.dots[svc] = state
	a.mu.Unlock()

	fmt.Fprintf(a.out, "[status] %s: %s\n", svc, state)
}

// showNotification is wired as the notification center's change callback.
// Dismissals are silent: a terminal cannot take back printed text.
func (a *App) showNotification(m *notify.Message) {
	if m == nil {
		return
	}
	fmt.Fprintf(a.out, "[%s] %s\n", m.Severity, m.Text)
}
