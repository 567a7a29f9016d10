package tui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/paginate"
)

// catalog serves generated products and users.
type catalog struct {
	total int
	calls atomic.Int32
	fail  atomic.Bool
}

func (c *catalog) products(_ context.Context, cur paginate.PageCursor) (directory.Page[directory.Product], error) {
	c.calls.Add(1)
	if c.fail.Load() {
		return directory.Page[directory.Product]{}, errors.New("network down")
	}
	page := directory.Page[directory.Product]{Items: []directory.Product{}, Total: c.total, Skip: cur.Skip(), Limit: cur.PageSize}
	for i := cur.Skip(); i < cur.Skip()+cur.PageSize && i < c.total; i++ {
		page.Items = append(page.Items, directory.Product{
			ID: i + 1, Title: fmt.Sprintf("Product %d", i+1), Category: "beauty", Price: 9.99,
		})
	}
	return page, nil
}

func (c *catalog) users(_ context.Context, cur paginate.PageCursor) (directory.Page[directory.User], error) {
	c.calls.Add(1)
	if c.fail.Load() {
		return directory.Page[directory.User]{}, errors.New("network down")
	}
	page := directory.Page[directory.User]{Items: []directory.User{}, Total: c.total, Skip: cur.Skip(), Limit: cur.PageSize}
	for i := cur.Skip(); i < cur.Skip()+cur.PageSize && i < c.total; i++ {
		page.Items = append(page.Items, directory.User{
			ID: i + 1, FirstName: fmt.Sprintf("User%d", i+1), LastName: "Test", CompanyName: "Acme",
		})
	}
	return page, nil
}

// runCmd executes cmd and any batched commands, returning the messages that
// arrive promptly. Timer-driven commands (cursor blink) are abandoned.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// settle runs cmd and feeds every page result back through update until no
// fetch is pending.
func settle(update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		for _, msg := range runCmd(next) {
			if _, ok := msg.(pageLoadedMsg); ok {
				pending = append(pending, update(msg))
			}
		}
	}
}

// settleApp is settle for the app model.
func settleApp(m AppModel, cmd tea.Cmd) AppModel {
	settle(func(msg tea.Msg) tea.Cmd {
		updated, next := m.Update(msg)
		m = updated.(AppModel)
		return next
	}, cmd)
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}
