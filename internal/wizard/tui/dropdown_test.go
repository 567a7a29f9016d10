package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/paginate"
)

func newProductDropdown(src *catalog, reset bool) (*Dropdown[directory.Product], *PointerRegistry) {
	reg := NewPointerRegistry()
	dd := NewDropdown(paginate.New(src.products, paginate.WithName("products")), reg, DropdownOptions[directory.Product]{
		ID:           "experience",
		Placeholder:  "Select experience level...",
		Label:        func(p directory.Product) string { return p.Title },
		ResetOnClose: reset,
	})
	dd.Focus()
	return dd, reg
}

func newUserDropdown(src *catalog) *Dropdown[directory.User] {
	dd := NewDropdown(paginate.New(src.users, paginate.WithName("users")), NewPointerRegistry(), DropdownOptions[directory.User]{
		ID:        "departments",
		Multi:     true,
		Label:     func(u directory.User) string { return u.FullName() },
		ChipLabel: func(u directory.User) string { return u.FirstName },
	})
	dd.Focus()
	return dd
}

func TestDropdown_OpenFetchesFirstPage(t *testing.T) {
	src := &catalog{total: 25}
	dd, reg := newProductDropdown(src, false)

	assert.Contains(t, dd.View(), "Select experience level...")

	settle(dd.Update, dd.Open())

	assert.True(t, dd.IsOpen())
	assert.True(t, reg.Registered("experience"))
	assert.Equal(t, 10, dd.Loader().Len())
	assert.Equal(t, int32(1), src.calls.Load(), "sentinel is below the window; no second page")
	assert.Contains(t, dd.View(), "Product 1")
}

func TestDropdown_CloseKeepsPagesAndUnregisters(t *testing.T) {
	src := &catalog{total: 25}
	dd, reg := newProductDropdown(src, false)
	settle(dd.Update, dd.Open())

	dd.Close()
	assert.False(t, reg.Registered("experience"))
	assert.Equal(t, 10, dd.Loader().Len())

	settle(dd.Update, dd.Open())
	assert.Equal(t, int32(1), src.calls.Load(), "reopening resumes from the cache")
}

func TestDropdown_ResetOnCloseRefetches(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, true)
	settle(dd.Update, dd.Open())

	dd.Close()
	assert.Equal(t, 0, dd.Loader().Len())

	settle(dd.Update, dd.Open())
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, 10, dd.Loader().Len())
}

func TestDropdown_SentinelRequestsNextPage(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, false)
	settle(dd.Update, dd.Open())

	// Rows 0..8 keep the sentinel out of the six-row window.
	for i := 0; i < 9; i++ {
		settle(dd.Update, dd.Update(keyPress("down")))
	}
	assert.Equal(t, 10, dd.Loader().Len())

	// The last item brings the sentinel into view.
	settle(dd.Update, dd.Update(keyPress("down")))
	assert.Equal(t, 20, dd.Loader().Len())
	assert.Equal(t, int32(2), src.calls.Load())

	for i := 0; i < 10; i++ {
		settle(dd.Update, dd.Update(keyPress("down")))
	}
	state := dd.Loader().State()
	assert.Len(t, state.Items, 25)
	assert.False(t, state.HasMore)

	// Exhausted: further scrolling never fetches.
	settle(dd.Update, dd.Scroll(5))
	assert.Equal(t, int32(3), src.calls.Load())
	assert.Contains(t, dd.View(), "All 25 items loaded")
}

func TestDropdown_WheelScrollTriggersLoad(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, false)
	settle(dd.Update, dd.Open())

	settle(dd.Update, dd.Scroll(5))
	assert.Equal(t, 20, dd.Loader().Len())
}

func TestDropdown_FailedPageIsNotRetriedAutomatically(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, false)
	src.fail.Store(true)

	settle(dd.Update, dd.Open())

	state := dd.Loader().State()
	assert.Empty(t, state.Items)
	assert.False(t, state.IsLoading)
	assert.True(t, state.HasMore)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.NotContains(t, dd.View(), "network down", "errors stay hidden unless enabled")

	// The next trigger retries the same page.
	src.fail.Store(false)
	settle(dd.Update, dd.Scroll(1))
	assert.Equal(t, 10, dd.Loader().Len())
}

func TestDropdown_ShowErrors(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, false)
	dd.opts.ShowErrors = true
	src.fail.Store(true)

	settle(dd.Update, dd.Open())

	assert.Contains(t, dd.View(), "Couldn't load more")
}

func TestDropdown_SingleSelectTogglesAndCloses(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, false)
	settle(dd.Update, dd.Open())

	dd.Update(keyPress("down"))
	dd.Update(keyPress("enter"))

	require.NotNil(t, dd.Selected())
	assert.Equal(t, 1, dd.Selected().ID)
	assert.False(t, dd.IsOpen())
	assert.True(t, dd.TakeChanged())
	assert.False(t, dd.TakeChanged())
	assert.Contains(t, dd.View(), "Product 1")

	// Choosing the selected item again clears it.
	settle(dd.Update, dd.Open())
	dd.Update(keyPress("down"))
	dd.Update(keyPress("enter"))
	assert.Nil(t, dd.Selected())
	assert.False(t, dd.IsOpen())
}

func TestDropdown_EnterOnTriggerRowCloses(t *testing.T) {
	src := &catalog{total: 5}
	dd, _ := newProductDropdown(src, false)
	settle(dd.Update, dd.Open())

	dd.Update(keyPress("enter"))

	assert.False(t, dd.IsOpen())
	assert.Nil(t, dd.Selected())
}

func TestDropdown_EscCloses(t *testing.T) {
	src := &catalog{total: 5}
	dd, reg := newProductDropdown(src, false)
	settle(dd.Update, dd.Open())

	dd.Update(keyPress("esc"))

	assert.False(t, dd.IsOpen())
	assert.Equal(t, 0, reg.Len())
}

func TestDropdown_BlurCloses(t *testing.T) {
	src := &catalog{total: 5}
	dd, _ := newProductDropdown(src, false)
	settle(dd.Update, dd.Open())

	dd.Blur()

	assert.False(t, dd.IsOpen())
	assert.False(t, dd.Focused())
}

func TestDropdown_MultiSelectStaysOpen(t *testing.T) {
	src := &catalog{total: 5}
	dd := newUserDropdown(src)
	settle(dd.Update, dd.Open())

	dd.Update(keyPress("down"))
	dd.Update(keyPress("enter"))
	dd.Update(keyPress("down"))
	dd.Update(keyPress("enter"))

	assert.True(t, dd.IsOpen())
	items := dd.SelectedItems()
	require.Len(t, items, 2)
	assert.Equal(t, []int{1, 2}, []int{items[0].ID, items[1].ID})

	// Toggling an existing item removes it.
	dd.Update(keyPress("enter"))
	assert.Len(t, dd.SelectedItems(), 1)

	assert.Contains(t, dd.View(), "All 5 items loaded")
}

func TestDropdown_BackspaceRemovesLastChip(t *testing.T) {
	dd := newUserDropdown(&catalog{total: 5})
	dd.SetSelectedItems([]directory.User{{ID: 1, FirstName: "Emily"}, {ID: 2, FirstName: "Michael"}})

	dd.Update(keyPress("backspace"))

	require.Len(t, dd.SelectedItems(), 1)
	assert.Equal(t, "Emily", dd.SelectedItems()[0].FirstName)
	assert.False(t, dd.IsOpen())
}

func TestDropdown_ChipClickRemovesWithoutOpening(t *testing.T) {
	dd := newUserDropdown(&catalog{total: 5})
	dd.SetSelectedItems([]directory.User{{ID: 1, FirstName: "Emily"}, {ID: 2, FirstName: "Michael"}})

	spans := dd.chipSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, 2, spans[1].id)

	cmd := dd.HandleMouse(leftClick(spans[1].x, 0), spans[1].x, 0)

	assert.Nil(t, cmd)
	assert.False(t, dd.IsOpen())
	require.Len(t, dd.SelectedItems(), 1)
	assert.Equal(t, 1, dd.SelectedItems()[0].ID)
}

func TestDropdown_ChipOverflow(t *testing.T) {
	dd := newUserDropdown(&catalog{total: 5})
	dd.SetWidth(30)
	var users []directory.User
	for i := 1; i <= 6; i++ {
		users = append(users, directory.User{ID: i, FirstName: strings.Repeat("N", 6)})
	}
	dd.SetSelectedItems(users)

	text, spans := dd.triggerText()

	assert.Contains(t, text, "more")
	assert.Less(t, len(spans), 6)
	assert.LessOrEqual(t, len([]rune(text)), dd.triggerInnerWidth())
}

func TestDropdown_ClickRowSelects(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, false)

	settle(dd.Update, dd.HandleMouse(leftClick(3, 0), 3, 0))
	require.True(t, dd.IsOpen())

	// Third visible row.
	dd.HandleMouse(leftClick(5, dropdownListTop+2), 5, dropdownListTop+2)

	require.NotNil(t, dd.Selected())
	assert.Equal(t, 3, dd.Selected().ID)
	assert.False(t, dd.IsOpen())
}

func TestDropdown_StalePageAfterResetIsDropped(t *testing.T) {
	src := &catalog{total: 25}
	dd, _ := newProductDropdown(src, true)

	cmd := dd.Open()
	msgs := runCmd(cmd)
	dd.Close() // resets: the in-flight page belongs to the old generation

	for _, msg := range msgs {
		dd.Update(msg)
	}
	assert.Equal(t, 0, dd.Loader().Len())
}
