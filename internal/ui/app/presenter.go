package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	bookdomain "questbook/internal/modules/book/domain"
)

// ─── presenter messages ───────────────────────────────────────────────────────

// ViewOpenedMsg is delivered when the view tracker opens a browse view.
type ViewOpenedMsg struct {
	User string
	View bookdomain.View
}

// ViewClosedMsg is delivered when the tracker deregisters a user's view.
type ViewClosedMsg struct {
	User string
}

// BookOpenedMsg is delivered when the tracker hands a rendered book to the
// presentation host.
type BookOpenedMsg struct {
	User string
	Book bookdomain.Book
}

// ─── presenter ───────────────────────────────────────────────────────────────

// Presenter is the Bubble Tea presentation host. The tracker drives it from
// the service side; Attach connects it to the running program. Before Attach
// (or in headless command runs) every call is a no-op.
type Presenter struct {
	mu      sync.Mutex
	program *tea.Program
}

func NewPresenter() *Presenter {
	return &Presenter{}
}

// Attach connects the presenter to a running program.
func (p *Presenter) Attach(program *tea.Program) {
	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
}

func (p *Presenter) OpenView(_ context.Context, user string, view bookdomain.View) error {
	p.send(ViewOpenedMsg{User: user, View: view})
	return nil
}

func (p *Presenter) CloseView(_ context.Context, user string) error {
	p.send(ViewClosedMsg{User: user})
	return nil
}

func (p *Presenter) OpenBook(_ context.Context, user string, book bookdomain.Book) error {
	p.send(BookOpenedMsg{User: user, Book: book})
	return nil
}

func (p *Presenter) send(msg tea.Msg) {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}
