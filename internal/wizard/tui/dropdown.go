package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/paginate"
	"github.com/talentdesk/applywizard/internal/selection"
)

// DefaultVisibleRows is the height of an open dropdown's list window.
const DefaultVisibleRows = 6

// Rows above the first list row inside a dropdown view: trigger line and the
// panel's top border.
const dropdownListTop = 2

// pageLoadedMsg carries the result of a page fetch back to the dropdown that
// issued it. page holds a directory.Page of the dropdown's entity type.
type pageLoadedMsg struct {
	dropdownID string
	ticket     paginate.Ticket
	page       any
	err        error
}

// dropdownKeyMap defines key bindings for an open dropdown
type dropdownKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dropdownKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close}
}

// FullHelp returns keybindings for the expanded help view
func (k dropdownKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select, k.Close}}
}

func newDropdownKeyMap() dropdownKeyMap {
	return dropdownKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// DropdownOptions configures a Dropdown.
type DropdownOptions[T any] struct {
	ID          string
	Placeholder string
	Multi       bool
	Label       func(T) string // Primary row text
	Detail      func(T) string // Secondary row text
	ChipLabel   func(T) string // Multi-select chip text (defaults to Label)
	VisibleRows int

	// ShowErrors renders the last fetch failure in the footer row.
	ShowErrors bool
	// ResetOnClose drops loaded pages whenever the dropdown closes.
	ResetOnClose bool
}

type chipSpan struct {
	x  int // Column of the remove mark, relative to the dropdown
	id int
}

// Dropdown is a selection field backed by a paginated loader. The list
// window ends in a sentinel row; whenever the sentinel is inside the window
// the next page is requested.
type Dropdown[T selection.Keyed] struct {
	opts     DropdownOptions[T]
	loader   *paginate.Loader[T]
	registry *PointerRegistry

	single selection.Single[T]
	multi  selection.Multi[T]

	open    bool
	focused bool
	cursor  int // -1 is the trigger row
	offset  int
	width   int
	changed bool

	spinner spinner.Model
	keys    dropdownKeyMap
}

// NewDropdown creates a closed dropdown.
func NewDropdown[T selection.Keyed](loader *paginate.Loader[T], registry *PointerRegistry, opts DropdownOptions[T]) *Dropdown[T] {
	if opts.VisibleRows <= 0 {
		opts.VisibleRows = DefaultVisibleRows
	}
	if opts.ChipLabel == nil {
		opts.ChipLabel = opts.Label
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &Dropdown[T]{
		opts:     opts,
		loader:   loader,
		registry: registry,
		cursor:   -1,
		width:    DefaultDropdownWidth,
		spinner:  s,
		keys:     newDropdownKeyMap(),
	}
}

// ID returns the dropdown identifier used for messages and pointer regions.
func (d *Dropdown[T]) ID() string { return d.opts.ID }

// IsOpen reports whether the list is shown.
func (d *Dropdown[T]) IsOpen() bool { return d.open }

// Loader exposes the backing loader.
func (d *Dropdown[T]) Loader() *paginate.Loader[T] { return d.loader }

// Keys returns the bindings active while open.
func (d *Dropdown[T]) Keys() help.KeyMap { return d.keys }

// SetWidth sets the rendered width.
func (d *Dropdown[T]) SetWidth(w int) {
	if w > 10 {
		d.width = w
	}
}

// Focus marks the trigger as focused.
func (d *Dropdown[T]) Focus() { d.focused = true }

// Blur removes focus. Focus leaving the dropdown closes it.
func (d *Dropdown[T]) Blur() {
	d.focused = false
	d.Close()
}

// Focused reports whether the trigger has focus.
func (d *Dropdown[T]) Focused() bool { return d.focused }

// TakeChanged reports whether the selection changed since the last call.
func (d *Dropdown[T]) TakeChanged() bool {
	c := d.changed
	d.changed = false
	return c
}

// Selected returns the single selection, or nil.
func (d *Dropdown[T]) Selected() *T { return d.single.Ptr() }

// SelectedItems returns the multi selection in insertion order.
func (d *Dropdown[T]) SelectedItems() []T { return d.multi.Items() }

// SetSelected replaces the single selection.
func (d *Dropdown[T]) SetSelected(v *T) { d.single = selection.NewSingle(v) }

// SetSelectedItems replaces the multi selection.
func (d *Dropdown[T]) SetSelectedItems(items []T) { d.multi = selection.NewMulti(items) }

// Open shows the list. The first open fetches page 0.
func (d *Dropdown[T]) Open() tea.Cmd {
	if d.open {
		return nil
	}
	d.open = true
	d.cursor = -1
	d.registry.Register(d.opts.ID, Region{})

	if t, ok := d.loader.Open(true); ok {
		return d.fetchCmd(t)
	}
	return d.maybeLoadMore()
}

// Close hides the list. Loaded pages are kept unless ResetOnClose is set.
func (d *Dropdown[T]) Close() {
	if !d.open {
		return
	}
	d.open = false
	d.loader.Open(false)
	d.registry.Unregister(d.opts.ID)

	if d.opts.ResetOnClose {
		d.loader.Reset()
		d.offset = 0
	}
}

// Toggle opens a closed dropdown and closes an open one.
func (d *Dropdown[T]) Toggle() tea.Cmd {
	if d.open {
		d.Close()
		return nil
	}
	return d.Open()
}

func (d *Dropdown[T]) fetchCmd(t paginate.Ticket) tea.Cmd {
	loader, id := d.loader, d.opts.ID
	fetch := func() tea.Msg {
		page, err := loader.Fetch(context.Background(), t)
		return pageLoadedMsg{dropdownID: id, ticket: t, page: page, err: err}
	}
	return tea.Batch(fetch, d.spinner.Tick)
}

// sentinelVisible reports whether the row after the last item lies inside
// the list window.
func (d *Dropdown[T]) sentinelVisible() bool {
	return d.open && d.offset+d.opts.VisibleRows > d.loader.Len()
}

// maybeLoadMore requests the next page when the sentinel is visible.
func (d *Dropdown[T]) maybeLoadMore() tea.Cmd {
	if !d.sentinelVisible() {
		return nil
	}
	t, ok := d.loader.Begin()
	if !ok {
		return nil
	}
	return d.fetchCmd(t)
}

// rowCount includes the sentinel/footer row.
func (d *Dropdown[T]) rowCount() int {
	return d.loader.Len() + 1
}

func (d *Dropdown[T]) maxOffset() int {
	m := d.rowCount() - d.opts.VisibleRows
	if m < 0 {
		return 0
	}
	return m
}

func (d *Dropdown[T]) clampOffset() {
	if d.offset > d.maxOffset() {
		d.offset = d.maxOffset()
	}
	if d.offset < 0 {
		d.offset = 0
	}
}

// moveCursor moves by delta and scrolls so the row below the cursor stays
// visible, which brings the sentinel in as the cursor reaches the last item.
func (d *Dropdown[T]) moveCursor(delta int) tea.Cmd {
	n := d.loader.Len()
	d.cursor += delta
	if d.cursor < -1 {
		d.cursor = -1
	}
	if d.cursor > n-1 {
		d.cursor = n - 1
	}

	if d.cursor >= 0 {
		if d.cursor < d.offset {
			d.offset = d.cursor
		}
		if d.cursor+1 >= d.offset+d.opts.VisibleRows {
			d.offset = d.cursor + 2 - d.opts.VisibleRows
		}
	} else {
		d.offset = 0
	}
	d.clampOffset()
	return d.maybeLoadMore()
}

// Scroll moves the window without moving the cursor (pointer wheel).
func (d *Dropdown[T]) Scroll(delta int) tea.Cmd {
	if !d.open {
		return nil
	}
	d.offset += delta
	d.clampOffset()
	return d.maybeLoadMore()
}

// activate applies the item at index i.
func (d *Dropdown[T]) activate(i int) {
	items := d.loader.State().Items
	if i < 0 || i >= len(items) {
		return
	}
	item := items[i]
	d.changed = true

	if d.opts.Multi {
		d.multi.Toggle(item)
		return
	}
	d.single.Select(item)
	d.Close()
}

// RemoveChip drops a multi-select entity without opening or closing.
func (d *Dropdown[T]) RemoveChip(id int) bool {
	if d.multi.Remove(id) {
		d.changed = true
		return true
	}
	return false
}

// Update handles keys (when focused), page results and spinner ticks.
func (d *Dropdown[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.dropdownID != d.opts.ID {
			return nil
		}
		return d.applyPage(msg)

	case spinner.TickMsg:
		if !d.loader.State().IsLoading {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !d.focused {
			return nil
		}
		return d.handleKey(msg)
	}
	return nil
}

func (d *Dropdown[T]) applyPage(msg pageLoadedMsg) tea.Cmd {
	if msg.err != nil {
		d.loader.Fail(msg.ticket, msg.err)
		return nil
	}
	page, ok := msg.page.(directory.Page[T])
	if !ok {
		d.loader.Fail(msg.ticket, fmt.Errorf("unexpected page type %T", msg.page))
		return nil
	}
	if !d.loader.Complete(msg.ticket, page) {
		return nil
	}
	// The list grew; the sentinel may still be in view.
	return d.maybeLoadMore()
}

func (d *Dropdown[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !d.open {
		switch msg.String() {
		case "enter", " ":
			return d.Open()
		case "backspace":
			if d.opts.Multi {
				items := d.multi.Items()
				if len(items) > 0 {
					d.RemoveChip(items[len(items)-1].Key())
				}
			}
		}
		return nil
	}

	switch {
	case key.Matches(msg, d.keys.Close):
		d.Close()
		return nil
	case msg.String() == "pgdown":
		return d.moveCursor(d.opts.VisibleRows)
	case msg.String() == "pgup":
		return d.moveCursor(-d.opts.VisibleRows)
	case key.Matches(msg, d.keys.Up):
		return d.moveCursor(-1)
	case key.Matches(msg, d.keys.Down):
		return d.moveCursor(1)
	case key.Matches(msg, d.keys.Select):
		if d.cursor < 0 {
			// Enter on the trigger row closes.
			d.Close()
			return nil
		}
		d.activate(d.cursor)
	}
	return nil
}

// HandleMouse processes a pointer event at (x, y) relative to the dropdown's
// top-left cell.
func (d *Dropdown[T]) HandleMouse(msg tea.MouseMsg, x, y int) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return d.Scroll(-1)
	case tea.MouseButtonWheelDown:
		return d.Scroll(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	if y == 0 {
		if d.opts.Multi {
			for _, c := range d.chipSpans() {
				if x == c.x {
					d.RemoveChip(c.id)
					return nil
				}
			}
		}
		return d.Toggle()
	}

	if !d.open {
		return nil
	}
	row := y - dropdownListTop
	if row >= 0 && row < d.opts.VisibleRows {
		idx := d.offset + row
		if idx < d.loader.Len() {
			d.cursor = idx
			d.activate(idx)
		}
	}
	return nil
}

// triggerInnerWidth is the text area between "[ " and " ▾ ]".
func (d *Dropdown[T]) triggerInnerWidth() int {
	return d.width - 6
}

// triggerText builds the trigger content and the chip remove positions.
func (d *Dropdown[T]) triggerText() (string, []chipSpan) {
	inner := d.triggerInnerWidth()

	if !d.opts.Multi {
		if v, ok := d.single.Value(); ok {
			text := d.opts.Label(v)
			if d.opts.Detail != nil {
				text += " · " + d.opts.Detail(v)
			}
			return ansi.Truncate(text, inner, "…"), nil
		}
		return "", nil
	}

	items := d.multi.Items()
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	var spans []chipSpan
	used := 0
	for i, item := range items {
		sep := ""
		if i > 0 {
			sep = "  "
		}
		chip := sep + d.opts.ChipLabel(item) + " ×"

		// Leave room for the overflow counter unless this is the last chip.
		reserve := 0
		if left := len(items) - i - 1; left > 0 {
			reserve = ansi.StringWidth(fmt.Sprintf("  +%d more", left))
		}
		if used+ansi.StringWidth(chip)+reserve > inner {
			more := fmt.Sprintf("+%d more", len(items)-i)
			if used > 0 {
				more = "  " + more
			}
			if used+ansi.StringWidth(more) <= inner {
				b.WriteString(more)
			}
			break
		}
		b.WriteString(chip)
		used += ansi.StringWidth(chip)
		// "[ " precedes the inner text; the mark is the chip's last cell.
		spans = append(spans, chipSpan{x: 2 + used - 1, id: item.Key()})
	}
	return b.String(), spans
}

func (d *Dropdown[T]) chipSpans() []chipSpan {
	_, spans := d.triggerText()
	return spans
}

func (d *Dropdown[T]) renderTrigger() string {
	text, _ := d.triggerText()
	inner := d.triggerInnerWidth()

	style := lipgloss.NewStyle()
	if text == "" {
		text = d.opts.Placeholder
		style = style.Foreground(SubtleColor)
	} else if d.opts.Multi {
		style = ChipStyle
	}

	pad := inner - ansi.StringWidth(text)
	if pad < 0 {
		pad = 0
	}

	arrow := "▾"
	if d.open {
		arrow = "▴"
	}

	bracket := lipgloss.NewStyle().Foreground(SubtleColor)
	if d.focused {
		bracket = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	}
	return bracket.Render("[ ") + style.Render(text) + strings.Repeat(" ", pad) + bracket.Render(" "+arrow+" ]")
}

func (d *Dropdown[T]) renderRow(i int, item T, rowWidth int) string {
	marker := "  "
	selected := false
	if d.opts.Multi {
		selected = d.multi.Contains(item.Key())
	} else {
		selected = d.single.IsSelected(item.Key())
	}
	if selected {
		marker = "✓ "
	}

	label := d.opts.Label(item)
	detail := ""
	if d.opts.Detail != nil {
		detail = d.opts.Detail(item)
	}

	prefix := "  "
	if i == d.cursor {
		prefix = "❯ "
	}

	text := ansi.Truncate(prefix+marker+label, rowWidth, "…")
	if detail != "" && ansi.StringWidth(text)+2 < rowWidth {
		text += "  " + DetailStyle.Render(ansi.Truncate(detail, rowWidth-ansi.StringWidth(text)-2, "…"))
	}

	switch {
	case i == d.cursor:
		return CursorRowStyle.Render(text)
	case selected:
		return SelectedListItemStyle.Render(text)
	default:
		return text
	}
}

func (d *Dropdown[T]) renderFooter() string {
	state := d.loader.State()
	switch {
	case state.IsLoading:
		return d.spinner.View() + " Loading..."
	case !state.HasMore && len(state.Items) > 0:
		return DetailStyle.Render(fmt.Sprintf("All %d items loaded", state.Total))
	case !state.HasMore:
		return DetailStyle.Render("No options available")
	case d.opts.ShowErrors && d.loader.LastError() != nil:
		return lipgloss.NewStyle().Foreground(WarningColor).
			Render("Couldn't load more: " + directory.ShortMessage(d.loader.LastError()))
	default:
		return ""
	}
}

// View renders the trigger and, when open, the list window.
func (d *Dropdown[T]) View() string {
	trigger := d.renderTrigger()
	if !d.open {
		return trigger
	}

	rowWidth := d.width - 4
	items := d.loader.State().Items

	var rows []string
	for i := d.offset; i < d.offset+d.opts.VisibleRows && i <= len(items); i++ {
		if i == len(items) {
			rows = append(rows, d.renderFooter())
			continue
		}
		rows = append(rows, d.renderRow(i, items[i], rowWidth))
	}

	panel := DropdownPanelStyle.Width(d.width - 2).Render(strings.Join(rows, "\n"))
	return trigger + "\n" + panel
}
